// Package hello contributes a greeting page at /hello. The greeting text is
// injected, so a plugin can rebind "greeting" to change it.
package hello

import (
	"fmt"
	"html"
	"net/http"

	"github.com/plugboard-dev/plugboard/internal/di"
	"github.com/plugboard-dev/plugboard/internal/extension"
)

// Injector ids bound by this module.
const (
	HandlerID  = "handler.hello"
	GreetingID = "greeting"
)

// DefaultGreeting is used unless something else binds GreetingID first.
const DefaultGreeting = "Hello World"

// Module implements the app.Module interface for this package.
type Module struct{}

// Handler renders the greeting. Greeting is filled by the injector.
type Handler struct {
	Greeting any `inject:"greeting"`
}

// ServeHTTP writes the greeting, addressed to ?name= when present.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	greeting := fmt.Sprint(h.Greeting)
	if h.Greeting == nil {
		greeting = DefaultGreeting
	}
	if name := r.URL.Query().Get("name"); name != "" {
		greeting += ", " + name
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "<h1>%s</h1>\n", html.EscapeString(greeting))
}

// Register binds the handler and contributes its route. The handler is
// contributed by id and built when url.handlers is tracked.
func (m *Module) Register(reg *extension.Registry, inj *di.Injector) error {
	if !inj.Has(GreetingID) {
		inj.SetSingleton(GreetingID, DefaultGreeting)
	}
	di.SetType[Handler](inj, HandlerID)
	if err := reg.ExtensionPoint("url.handlers").AddExtension(`(?i)^/hello`, HandlerID); err != nil {
		return fmt.Errorf("adding /hello route: %w", err)
	}
	return nil
}
