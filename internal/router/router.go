// Package router dispatches HTTP requests to handlers contributed to an
// extension point. Each contribution is a (pattern, handler) pair; the first
// pattern matching the request path, in contribution order, wins.
package router

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"regexp"
	"sync"

	"github.com/plugboard-dev/plugboard/internal/extension"
)

// DefaultPoint is the extension point routers track unless told otherwise.
const DefaultPoint = "url.handlers"

// Router is an http.Handler over the handlers contributed to one extension
// point. It is safe to serve requests while contributions change.
type Router struct {
	point  string
	logger *slog.Logger

	mu       sync.RWMutex
	handlers []any // maintained by list
	list     *extension.ListTracker
	patterns map[string]*regexp.Regexp
}

// New tracks point on reg and returns a router over its contributions.
// Contributions already stored on the point are replayed immediately.
func New(reg *extension.Registry, point string, logger *slog.Logger) (*Router, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{
		point:    point,
		logger:   logger,
		patterns: make(map[string]*regexp.Regexp),
	}
	r.list = extension.NewListTracker(&r.handlers)

	if err := reg.ExtensionPoint(point).Track(r); err != nil {
		return nil, fmt.Errorf("tracking %s: %w", point, err)
	}
	return r, nil
}

// OnAddExtension checks the entry and appends it to the handler list.
func (r *Router) OnAddExtension(c extension.Contribution) error {
	if c.Len() != 2 {
		return fmt.Errorf("route needs a pattern and a handler, got %d arguments", c.Len())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.compile(c.Arg(0)); err != nil {
		return err
	}
	if _, err := asHandler(c.Arg(1)); err != nil {
		return err
	}
	return r.list.OnAddExtension(c)
}

// OnRemoveExtension drops the entry whose pattern equals c's key.
func (r *Router) OnRemoveExtension(c extension.Contribution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list.OnRemoveExtension(c)
}

// AllowRemoveAll follows the list tracker: the router owns the routes.
func (r *Router) AllowRemoveAll() bool { return r.list.AllowRemoveAll() }

// Len returns the number of routes.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Route returns the handler of the first route matching path.
func (r *Router) Route(path string) (http.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.handlers {
		args, ok := entry.([]any)
		if !ok || len(args) != 2 {
			continue
		}
		re, err := r.lookup(args[0])
		if err != nil || !re.MatchString(path) {
			continue
		}
		h, err := asHandler(args[1])
		if err != nil {
			continue
		}
		return h, true
	}
	return nil, false
}

// ServeHTTP dispatches to the matching route or answers 404.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h, ok := r.Route(req.URL.Path)
	if !ok {
		r.logger.Debug("No route.", "point", r.point, "path", req.URL.Path)
		NotFound(w, req)
		return
	}
	h.ServeHTTP(w, req)
}

// NotFound writes the 404 page naming the requested path.
func NotFound(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, "<h1>404 Not found</h1>\n<h3>%s</h3>\n", html.EscapeString(req.URL.Path))
}

// compile caches string patterns. Callers hold mu.
func (r *Router) compile(pattern any) (*regexp.Regexp, error) {
	switch p := pattern.(type) {
	case *regexp.Regexp:
		if p == nil {
			return nil, fmt.Errorf("route pattern is a nil regexp")
		}
		return p, nil
	case string:
		if re, ok := r.patterns[p]; ok {
			return re, nil
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling route pattern %q: %w", p, err)
		}
		r.patterns[p] = re
		return re, nil
	default:
		return nil, fmt.Errorf("route pattern must be a string or *regexp.Regexp, got %T", pattern)
	}
}

// lookup is compile for readers: string patterns were cached when added.
func (r *Router) lookup(pattern any) (*regexp.Regexp, error) {
	switch p := pattern.(type) {
	case *regexp.Regexp:
		return p, nil
	case string:
		if re, ok := r.patterns[p]; ok {
			return re, nil
		}
	}
	return nil, fmt.Errorf("unknown route pattern %v", pattern)
}

func asHandler(v any) (http.Handler, error) {
	switch h := v.(type) {
	case http.Handler:
		return h, nil
	case func(http.ResponseWriter, *http.Request):
		return http.HandlerFunc(h), nil
	case string:
		return nil, fmt.Errorf("route handler %q is not bound in the injector", h)
	default:
		return nil, fmt.Errorf("route handler must be an http.Handler or handler func, got %T", v)
	}
}
