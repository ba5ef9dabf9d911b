package fizzbuzz

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSequence(t *testing.T) {
	want := []string{"1", "2", "Fizz", "4", "Buzz", "Fizz", "7", "8", "Fizz", "Buzz", "11", "Fizz", "13", "14", "FizzBuzz"}
	if diff := cmp.Diff(want, Sequence(15)); diff != "" {
		t.Errorf("Sequence(15) mismatch (-want +got):\n%s", diff)
	}
	if got := Sequence(0); len(got) != 0 {
		t.Errorf("Sequence(0) = %v, want empty", got)
	}
}

func TestHandle(t *testing.T) {
	tests := []struct {
		query string
		code  int
		body  string
	}{
		{"", http.StatusOK, "FizzBuzz</p>"},
		{"?n=5", http.StatusOK, "Fizz 4 Buzz</p>"},
		{"?n=abc", http.StatusBadRequest, "n must be"},
		{"?n=5000", http.StatusBadRequest, "n must be"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Handle(rec, httptest.NewRequest(http.MethodGet, "/fizzbuzz"+tt.query, nil))
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
			if !strings.Contains(rec.Body.String(), tt.body) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.body)
			}
		})
	}
}
