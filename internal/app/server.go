package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/plugboard-dev/plugboard/internal/router"
)

const shutdownTimeout = 5 * time.Second

// Handler returns the router over the url.handlers contributions, creating
// it on first use. Once created the router owns the routes.
func (a *App) Handler() (*router.Router, error) {
	if a.router != nil {
		return a.router, nil
	}
	r, err := router.New(a.registry, router.DefaultPoint, a.logger)
	if err != nil {
		return nil, err
	}
	a.router = r
	return r, nil
}

// Serve starts the app and serves HTTP on addr until ctx is cancelled, then
// shuts the server down gracefully.
func (a *App) Serve(ctx context.Context, addr string) error {
	h, err := a.Handler()
	if err != nil {
		return err
	}
	if err := a.Start(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server starting.", "address", addr, "routes", h.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		// ListenAndServe returns ErrServerClosed only after Shutdown.
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("Server shut down gracefully.")
	return nil
}
