package extension

import (
	"fmt"
)

// ExtensionPoint is a named slot that collects contributions and forwards them
// to at most one tracker. It is only created through a Registry.
type ExtensionPoint struct {
	registry   *Registry
	name       string
	extensions []Contribution
	api        *tracker
}

// Name returns the point's name.
func (ep *ExtensionPoint) Name() string { return ep.name }

// Len returns the number of contributions the point currently stores.
func (ep *ExtensionPoint) Len() int { return len(ep.extensions) }

// Contributions returns a copy of the stored contributions in order.
func (ep *ExtensionPoint) Contributions() []Contribution {
	out := make([]Contribution, len(ep.extensions))
	copy(out, ep.extensions)
	return out
}

// Tracked reports whether a tracker is attached.
func (ep *ExtensionPoint) Tracked() bool { return ep.api != nil }

// Retaining reports whether later additions are kept in the point's store.
func (ep *ExtensionPoint) Retaining() bool {
	return ep.api == nil || ep.api.allowRemoveAll
}

// Disconnected reports whether Disconnect has been called.
func (ep *ExtensionPoint) Disconnected() bool { return ep.registry == nil }

// AddExtension contributes args to the point. One argument is stored as a
// Single, any other arity as a Tuple.
//
// With no tracker attached the contribution is stored until one is. With a
// tracker it is resolved and passed to OnAddExtension; the resolved value is
// stored unless the tracker disallows remove-all.
func (ep *ExtensionPoint) AddExtension(args ...any) error {
	if ep.registry == nil {
		return ErrDisconnected
	}
	c := contributionOf(args)
	if ep.api != nil {
		var err error
		c, err = ep.applyAdd(c)
		if err != nil {
			return err
		}
		if ep.registry == nil {
			return ErrDisconnected
		}
	}
	if ep.Retaining() {
		ep.extensions = append(ep.extensions, c)
	}
	return nil
}

// RemoveExtension tells the tracker, if it handles removals, that key is
// gone, then drops the first stored contribution whose key equals key.
// Keys match as contributed, so an id that resolution replaced still removes
// its entry; the tracker is then handed the resolved value it was given on
// add. It reports whether a stored contribution was dropped.
func (ep *ExtensionPoint) RemoveExtension(key any) (bool, error) {
	if ep.registry == nil {
		return false, ErrDisconnected
	}
	idx := -1
	removed := Single(key)
	for i, c := range ep.extensions {
		if identical(c.Key(), key) {
			idx = i
			removed = Single(c.Value())
			break
		}
	}
	if ep.api != nil && ep.api.remove != nil {
		if err := ep.applyRemove(removed); err != nil {
			return false, err
		}
		if ep.registry == nil {
			return false, ErrDisconnected
		}
	}
	if idx < 0 || idx >= len(ep.extensions) || !identical(ep.extensions[idx].Key(), key) {
		return false, nil
	}
	ep.extensions = append(ep.extensions[:idx], ep.extensions[idx+1:]...)
	return true, nil
}

// Track attaches api as the point's tracker and replays stored contributions
// to it in order. Each stored contribution is replaced by its resolved form.
//
// api may be a func(Contribution), a func(Contribution) error, an AddFunc,
// a Callbacks value, or any Adder, optionally also implementing Remover and
// RemoveAllPolicy. Anything else is rejected with a *TrackerError.
//
// A failing callback stops the replay and the tracker stays attached. A
// tracker that allows remove-all keeps the store, with the contributions
// already replayed in resolved form; any other tracker has the store
// discarded whether or not the replay finished. A tracker that disconnects
// the point during replay ends it with ErrDisconnected.
func (ep *ExtensionPoint) Track(api any) error {
	if ep.registry == nil {
		return ErrDisconnected
	}
	tr, ok := normalizeTracker(api)
	if !ok {
		err := newTrackerError(ep, api)
		if ep.registry.Verbose {
			ep.registry.logger.Warn(err.Message, "point", ep.name)
		}
		return err
	}

	ep.api = tr
	replay := ep.Contributions()
	var err error
	for i, c := range replay {
		var resolved Contribution
		resolved, err = ep.applyAdd(c)
		if ep.registry == nil {
			return ErrDisconnected
		}
		if err != nil {
			break
		}
		// Callbacks may have removed entries from the store.
		if i < len(ep.extensions) && identical(ep.extensions[i].Key(), c.Key()) {
			ep.extensions[i] = resolved
		}
	}

	if ep.api == tr && !tr.allowRemoveAll {
		ep.extensions = nil
	}
	return err
}

// RemoveAll passes every stored contribution to the tracker's removal
// callback, if it has one, then empties the store.
func (ep *ExtensionPoint) RemoveAll() error {
	if ep.registry == nil {
		return ErrDisconnected
	}
	if ep.api != nil && ep.api.remove != nil {
		for _, c := range ep.Contributions() {
			if err := ep.applyRemove(c); err != nil {
				return err
			}
			if ep.registry == nil {
				return ErrDisconnected
			}
		}
	}
	ep.extensions = nil
	return nil
}

// Disconnect removes the point from its registry. The next reference to the
// same name yields a fresh, empty point. The disconnected point rejects all
// further operations with ErrDisconnected.
func (ep *ExtensionPoint) Disconnect() {
	if ep.registry == nil {
		return
	}
	if cur, ok := ep.registry.points[ep.name]; ok && cur == ep {
		delete(ep.registry.points, ep.name)
	}
	ep.registry.logger.Debug("Extension point disconnected.", "point", ep.name)
	ep.registry = nil
	ep.api = nil
	ep.extensions = nil
}

func (ep *ExtensionPoint) applyAdd(c Contribution) (Contribution, error) {
	c = ep.registry.resolveContribution(c)
	if err := ep.invoke(ep.name+".onAddExtension", ep.api.add, c); err != nil {
		return c, err
	}
	return c, nil
}

func (ep *ExtensionPoint) applyRemove(c Contribution) error {
	return ep.invoke(ep.name+".onRemoveExtension", ep.api.remove, c)
}

// invoke runs a tracker callback. Errors and panics are logged and returned
// as *CallbackError.
func (ep *ExtensionPoint) invoke(method string, fn func(Contribution) error, c Contribution) (err error) {
	logger := ep.registry.logger
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", e)
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
		if err != nil {
			logger.Error("Exception thrown while invoking tracker callback.",
				"method", method, "arguments", c.String(), "error", err)
			err = &CallbackError{Method: method, Contribution: c, Err: err}
		}
	}()
	return fn(c)
}
