package hello

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/plugboard-dev/plugboard/internal/di"
	"github.com/plugboard-dev/plugboard/internal/extension"
)

func TestRegister(t *testing.T) {
	inj := di.New()
	reg := extension.NewRegistry(extension.WithVerbose(false))
	if err := (&Module{}).Register(reg, inj); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	h, ok := inj.FindInstance(HandlerID, nil).(*Handler)
	if !ok {
		t.Fatalf("FindInstance(%s) is not *Handler", HandlerID)
	}
	if h.Greeting != DefaultGreeting {
		t.Errorf("Greeting = %v, want %q", h.Greeting, DefaultGreeting)
	}

	ep, _ := reg.Lookup("url.handlers")
	c := ep.Contributions()[0]
	if c.Arg(1) != HandlerID {
		t.Errorf("contributed handler = %v, want %s", c.Arg(1), HandlerID)
	}
}

func TestRegisterKeepsExistingGreeting(t *testing.T) {
	inj := di.New()
	inj.SetSingleton(GreetingID, "Hola")
	if err := (&Module{}).Register(extension.NewRegistry(), inj); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if got := inj.FindInstance(GreetingID, nil); got != "Hola" {
		t.Errorf("greeting = %v, want Hola", got)
	}
}

func TestHandler(t *testing.T) {
	tests := []struct {
		greeting any
		query    string
		want     string
	}{
		{"Hi", "", "<h1>Hi</h1>"},
		{"Hi", "?name=%3Cb%3E", "<h1>Hi, &lt;b&gt;</h1>"},
		{nil, "", "<h1>" + DefaultGreeting + "</h1>"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		(&Handler{Greeting: tt.greeting}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello"+tt.query, nil))
		if !strings.Contains(rec.Body.String(), tt.want) {
			t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.want)
		}
	}
}

func TestRegisterReportsRejectedRoute(t *testing.T) {
	reg := extension.NewRegistry(extension.WithVerbose(false))
	_, _ = reg.RegisterExtensionPoint("url.handlers", func(extension.Contribution) error {
		return errors.New("router closed")
	})

	err := (&Module{}).Register(reg, di.New())
	var cbErr *extension.CallbackError
	if !errors.As(err, &cbErr) {
		t.Fatalf("Register error = %v, want a CallbackError", err)
	}
}
