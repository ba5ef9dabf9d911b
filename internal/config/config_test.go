package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	Load()

	s := Current()
	if s.Listen != ":8080" {
		t.Errorf("Listen = %q, want %q", s.Listen, ":8080")
	}
	if s.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", s.LogLevel, "info")
	}
	if !s.Verbose {
		t.Error("Verbose = false, want true")
	}
	want := filepath.Join(home, ".plugboard", "plugins")
	if s.PluginsDir != want {
		t.Errorf("PluginsDir = %q, want %q", s.PluginsDir, want)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PLUGBOARD_LOG_LEVEL", "debug")
	t.Setenv("PLUGBOARD_VERBOSE", "false")
	viper.Reset()
	Load()

	s := Current()
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", s.LogLevel, "debug")
	}
	if s.Verbose {
		t.Error("Verbose = true, want false from env")
	}
}

func TestSetWritesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	Load()

	if err := Set(KeyListen, ":9090"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := os.Stat(FilePath()); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	viper.Reset()
	Load()
	if got := Get(KeyListen); got != ":9090" {
		t.Errorf("Get(listen) = %q, want %q", got, ":9090")
	}
}
