// Package health contributes a liveness endpoint at /health.
package health

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/plugboard-dev/plugboard/internal/di"
	"github.com/plugboard-dev/plugboard/internal/extension"
)

// HandlerID is the injector id of the health handler.
const HandlerID = "handler.health"

// Module implements the app.Module interface for this package.
type Module struct{}

// Handler answers health checks. Logger is injected.
type Handler struct {
	Logger *slog.Logger `inject:"logger"`
}

// ServeHTTP writes OK.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Logger != nil {
		h.Logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// Register binds the handler and contributes its route and a startup hook
// that logs the number of extension points.
func (m *Module) Register(reg *extension.Registry, inj *di.Injector) error {
	di.SetType[Handler](inj, HandlerID)
	if err := reg.ExtensionPoint("url.handlers").AddExtension(`^/health$`, HandlerID); err != nil {
		return fmt.Errorf("adding /health route: %w", err)
	}

	err := reg.ExtensionPoint("app.started").AddExtension(func() {
		logger, _ := inj.FindInstance("logger", nil).(*slog.Logger)
		if logger == nil {
			logger = slog.Default()
		}
		logger.Info("Host started.", "extension_points", len(reg.Names()))
	})
	if err != nil {
		return fmt.Errorf("adding startup hook: %w", err)
	}
	return nil
}
