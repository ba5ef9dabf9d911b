package extension

import (
	"log/slog"
	"sort"
	"sync"
)

// Registry holds every extension point, keyed by name. Points are created on
// first reference and live until they are disconnected.
type Registry struct {
	points  map[string]*ExtensionPoint
	logger  *slog.Logger
	resolve func(Contribution) Contribution

	// Verbose logs rejected trackers before Track reports them.
	Verbose bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for callback failures and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithVerbose sets Registry.Verbose.
func WithVerbose(v bool) Option {
	return func(r *Registry) { r.Verbose = v }
}

// WithResolver installs a function applied to every contribution before a
// tracker sees it. Whatever it returns is what the point stores, which lets
// producers contribute configuration and consumers receive live objects.
func WithResolver(fn func(Contribution) Contribution) Option {
	return func(r *Registry) { r.resolve = fn }
}

// NewRegistry returns an empty registry. Verbose defaults to true.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		points:  make(map[string]*ExtensionPoint),
		logger:  slog.Default(),
		Verbose: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetResolver replaces the contribution resolver. Pass nil to restore identity.
func (r *Registry) SetResolver(fn func(Contribution) Contribution) {
	r.resolve = fn
}

// ExtensionPoint finds, or creates, the extension point with the given name.
func (r *Registry) ExtensionPoint(name string) *ExtensionPoint {
	if ep, ok := r.points[name]; ok {
		return ep
	}
	ep := &ExtensionPoint{registry: r, name: name}
	r.points[name] = ep
	r.logger.Debug("Extension point created.", "point", name)
	return ep
}

// RegisterExtensionPoint is shorthand for ExtensionPoint(name).Track(api).
// The point is returned even when Track fails.
func (r *Registry) RegisterExtensionPoint(name string, api any) (*ExtensionPoint, error) {
	ep := r.ExtensionPoint(name)
	return ep, ep.Track(api)
}

// Names returns the names of all live extension points, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.points))
	for name := range r.points {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named point without creating it.
func (r *Registry) Lookup(name string) (*ExtensionPoint, bool) {
	ep, ok := r.points[name]
	return ep, ok
}

func (r *Registry) resolveContribution(c Contribution) Contribution {
	if r.resolve == nil {
		return c
	}
	return r.resolve(c)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Point is shorthand for Default().ExtensionPoint(name).
func Point(name string) *ExtensionPoint {
	return Default().ExtensionPoint(name)
}
