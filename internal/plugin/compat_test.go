package plugin

import (
	"errors"
	"testing"
)

func TestCheckCompatible(t *testing.T) {
	tests := []struct {
		host       string
		constraint string
		wantErr    bool
		incompat   bool
	}{
		{"1.2.0", ">= 1.0.0", false, false},
		{"v1.2.0", "^1.0.0", false, false},
		{"0.9.0", ">= 1.0.0", true, true},
		{"2.0.0", "~1.2", true, true},
		{"1.0.0", "", false, false},
		{DevVersion, ">= 99.0.0", false, false},
		{"1.0.0", "not a constraint", true, false},
		{"garbage", ">= 1.0.0", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.host+" "+tt.constraint, func(t *testing.T) {
			err := CheckCompatible(tt.host, tt.constraint)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckCompatible(%q, %q) error = %v, wantErr %v", tt.host, tt.constraint, err, tt.wantErr)
			}
			if got := errors.Is(err, ErrIncompatible); got != tt.incompat {
				t.Errorf("errors.Is(err, ErrIncompatible) = %v, want %v", got, tt.incompat)
			}
		})
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.1", -1},
		{"v1.0.0", "1.0.0", 0},
		{"2.0.0", "1.9.9", 1},
		{"1.0.0-beta", "1.0.0", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			got, err := CompareVersions(tt.a, tt.b)
			if err != nil {
				t.Fatalf("CompareVersions(%q, %q) error: %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareVersions_Invalid(t *testing.T) {
	if _, err := CompareVersions("x", "1.0.0"); err == nil {
		t.Error("expected error for invalid version")
	}
}
