package app

import (
	"fmt"

	"github.com/plugboard-dev/plugboard/internal/extension"
)

// StartedPoint collects hooks run once the app has started. Contributions
// are func() values; hooks contributed after Start run immediately.
const StartedPoint = "app.started"

// Start tracks StartedPoint, running every stored hook in contribution order.
// A second call does nothing.
func (a *App) Start() error {
	if a.started {
		return nil
	}
	a.started = true

	ep := a.registry.ExtensionPoint(StartedPoint)
	err := ep.Track(extension.Callbacks{
		OnAdd:             a.runHook,
		DiscardExtensions: true,
	})
	if err != nil {
		return fmt.Errorf("running %s hooks: %w", StartedPoint, err)
	}
	a.logger.Debug("App started.")
	return nil
}

func (a *App) runHook(c extension.Contribution) error {
	hook, ok := c.Value().(func())
	if !ok || c.IsTuple() {
		return fmt.Errorf("%s hook must be a func(), got %s", StartedPoint, c)
	}
	hook()
	return nil
}
