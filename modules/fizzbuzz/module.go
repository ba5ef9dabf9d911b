// Package fizzbuzz contributes a FizzBuzz page at /fizzbuzz.
package fizzbuzz

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/plugboard-dev/plugboard/internal/di"
	"github.com/plugboard-dev/plugboard/internal/extension"
)

const (
	defaultLimit = 15
	maxLimit     = 1000
)

// Module implements the app.Module interface for this package.
type Module struct{}

// Sequence returns the FizzBuzz words for 1..n.
func Sequence(n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		switch {
		case i%15 == 0:
			out = append(out, "FizzBuzz")
		case i%3 == 0:
			out = append(out, "Fizz")
		case i%5 == 0:
			out = append(out, "Buzz")
		default:
			out = append(out, strconv.Itoa(i))
		}
	}
	return out
}

// Handle serves the sequence up to ?n= (default 15, at most 1000).
func Handle(w http.ResponseWriter, r *http.Request) {
	n := defaultLimit
	if s := r.URL.Query().Get("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 || v > maxLimit {
			http.Error(w, fmt.Sprintf("n must be an integer between 0 and %d", maxLimit), http.StatusBadRequest)
			return
		}
		n = v
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "<h1>FizzBuzz</h1>")
	fmt.Fprintf(w, "<p>%s</p>\n", strings.Join(Sequence(n), " "))
}

// Register contributes the route.
func (m *Module) Register(reg *extension.Registry, _ *di.Injector) error {
	return reg.ExtensionPoint("url.handlers").AddExtension(`(?i)^/fizzbuzz`, Handle)
}
