package plugin

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/plugboard-dev/plugboard/internal/di"
	"github.com/plugboard-dev/plugboard/internal/extension"
	"github.com/plugboard-dev/plugboard/internal/logging"
)

// Install binds the plugin's singletons and aliases in inj, then adds each
// contribution to its extension point in manifest order. If a contribution
// fails, the ones already added are removed again and the error is returned.
// Injector bindings are left in place.
func Install(reg *extension.Registry, inj *di.Injector, p *Plugin) (*Installed, error) {
	m := p.Manifest

	for _, id := range sortedKeys(m.Singletons) {
		inj.SetSingleton(id, m.Singletons[id])
	}
	for _, id := range sortedKeys(m.Aliases) {
		if !inj.Has(id) {
			return nil, fmt.Errorf("plugin %s: alias source %q is not bound", m.Name, id)
		}
		inj.MakeAlias(id, m.Aliases[id]...)
	}

	inst := &Installed{Plugin: p}
	for i, c := range m.Contributions {
		if err := reg.ExtensionPoint(c.Point).AddExtension(c.Args...); err != nil {
			rollbackErr := Uninstall(reg, inst)
			return nil, errors.Join(
				fmt.Errorf("plugin %s: contribution %d to %s: %w", m.Name, i, c.Point, err),
				rollbackErr,
			)
		}
		inst.Contributions = append(inst.Contributions, Contributed{
			Point: c.Point,
			Key:   keyOf(c.Args),
		})
	}
	return inst, nil
}

// Uninstall removes an installed plugin's contributions in reverse order.
// Every contribution is attempted; the errors are joined.
func Uninstall(reg *extension.Registry, inst *Installed) error {
	var errs []error
	for i := len(inst.Contributions) - 1; i >= 0; i-- {
		c := inst.Contributions[i]
		ep, ok := reg.Lookup(c.Point)
		if !ok {
			continue
		}
		if _, err := ep.RemoveExtension(c.Key); err != nil {
			errs = append(errs, fmt.Errorf("removing %v from %s: %w", c.Key, c.Point, err))
		}
	}
	inst.Contributions = nil
	return errors.Join(errs...)
}

// LoadAll discovers the plugins under dir and installs those compatible with
// hostVersion. Invalid manifests, incompatible plugins and failed installs
// are logged and skipped. It stops early if ctx is cancelled.
func LoadAll(ctx context.Context, dir, hostVersion string, reg *extension.Registry, inj *di.Injector) ([]*Installed, error) {
	logger := logging.FromContext(ctx)

	plugins, err := Discover(dir)
	if err != nil {
		logger.Warn("Some plugin manifests were skipped.", "dir", dir, "error", err)
	}

	var installed []*Installed
	for _, p := range plugins {
		if err := ctx.Err(); err != nil {
			return installed, err
		}

		if err := CheckCompatible(hostVersion, p.Manifest.Requires); err != nil {
			logger.Warn("Skipping plugin.", "plugin", p.Name(), "version", p.Version(), "error", err)
			continue
		}

		inst, err := Install(reg, inj, p)
		if err != nil {
			logger.Error("Plugin install failed.", "plugin", p.Name(), "error", err)
			continue
		}
		logger.Debug("Plugin installed.", "plugin", p.Name(), "version", p.Version(),
			"contributions", len(inst.Contributions))
		installed = append(installed, inst)
	}
	return installed, nil
}

// keyOf returns the key RemoveExtension matches on: the first argument.
func keyOf(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
