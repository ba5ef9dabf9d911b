//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plugboard-dev/plugboard/internal/app"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME for the run
	PluginsDir string // scanned for plugin manifests
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them so nothing touches the real ~/.plugboard.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		PluginsDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	return env
}

// writeManifest creates <pluginsDir>/<name>/plugin.yaml.
func writeManifest(t *testing.T, pluginsDir, name, content string) string {
	t.Helper()
	dir := filepath.Join(pluginsDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	path := filepath.Join(dir, "plugin.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// newApp builds a host over env's plugins directory, capturing its log.
func newApp(t *testing.T, env *testEnv, version string, modules ...app.Module) (*app.App, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	a, err := app.New(context.Background(), &logs, &app.Config{
		PluginsDir: env.PluginsDir,
		LogLevel:   "debug",
		Verbose:    true,
		Version:    version,
	}, modules...)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	return a, &logs
}

// get fetches url and returns the status code and body.
func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body of %s: %v", url, err)
	}
	return resp.StatusCode, string(body)
}

// assertResponse fails unless GET url answers code with a body containing substr.
func assertResponse(t *testing.T, url string, code int, substr string) {
	t.Helper()
	gotCode, body := get(t, url)
	if gotCode != code {
		t.Errorf("GET %s status = %d, want %d", url, gotCode, code)
	}
	if !strings.Contains(body, substr) {
		t.Errorf("GET %s body = %q, want it to contain %q", url, body, substr)
	}
}
