package extension

// Adder receives contributions as they are added to an extension point.
type Adder interface {
	OnAddExtension(Contribution) error
}

// Remover is implemented by trackers that want to hear about removals.
type Remover interface {
	OnRemoveExtension(Contribution) error
}

// RemoveAllPolicy is implemented by trackers that decide whether the extension
// point keeps its own copy of the contributions. When AllowRemoveAll returns
// false the point discards its store after replay and the tracker becomes the
// only holder of the data. Trackers without this method default to true.
type RemoveAllPolicy interface {
	AllowRemoveAll() bool
}

// AddFunc adapts a plain function to a tracker.
type AddFunc func(Contribution) error

// OnAddExtension calls f(c).
func (f AddFunc) OnAddExtension(c Contribution) error { return f(c) }

// Callbacks is a tracker assembled from functions. OnAdd is required.
type Callbacks struct {
	OnAdd    func(Contribution) error
	OnRemove func(Contribution) error
	// DiscardExtensions makes AllowRemoveAll report false. The zero value
	// keeps the point's store, like trackers that state no policy.
	DiscardExtensions bool
}

// tracker is the normalized form of every accepted tracker value.
type tracker struct {
	add            func(Contribution) error
	remove         func(Contribution) error
	allowRemoveAll bool
}

// normalizeTracker turns the accepted tracker shapes into a tracker. It
// returns false for anything that does not carry an add callback.
func normalizeTracker(api any) (*tracker, bool) {
	switch t := api.(type) {
	case nil:
		return nil, false
	case func(Contribution):
		if t == nil {
			return nil, false
		}
		return &tracker{
			add:            func(c Contribution) error { t(c); return nil },
			allowRemoveAll: true,
		}, true
	case func(Contribution) error:
		if t == nil {
			return nil, false
		}
		return &tracker{add: t, allowRemoveAll: true}, true
	case AddFunc:
		if t == nil {
			return nil, false
		}
		return &tracker{add: t, allowRemoveAll: true}, true
	case Callbacks:
		return normalizeCallbacks(&t)
	case *Callbacks:
		return normalizeCallbacks(t)
	case Adder:
		tr := &tracker{add: t.OnAddExtension, allowRemoveAll: true}
		if r, ok := api.(Remover); ok {
			tr.remove = r.OnRemoveExtension
		}
		if p, ok := api.(RemoveAllPolicy); ok {
			tr.allowRemoveAll = p.AllowRemoveAll()
		}
		return tr, true
	}
	return nil, false
}

func normalizeCallbacks(cb *Callbacks) (*tracker, bool) {
	if cb == nil || cb.OnAdd == nil {
		return nil, false
	}
	return &tracker{
		add:            cb.OnAdd,
		remove:         cb.OnRemove,
		allowRemoveAll: !cb.DiscardExtensions,
	}, true
}
