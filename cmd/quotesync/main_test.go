package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-sync/internal/app"
)

// cliEnv points every command at a fresh sqlite file and a stub remote.
type cliEnv struct {
	configDir string
	pushes    atomic.Int32
}

func newCLIEnv(t *testing.T, remote []map[string]any) *cliEnv {
	t.Helper()

	env := &cliEnv{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			env.pushes.Add(1)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(remote)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	env.configDir = dir

	base := fmt.Sprintf(`app:
  environment: test
log:
  level: error
  format: json
storage:
  driver: sqlite
  sqlite_path: %s
services:
  quote:
    base_url: %s
client:
  retry:
    max_attempts: 1
`, filepath.Join(dir, "quotes.db"), srv.URL)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(base), 0o600))

	return env
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config-dir", e.configDir, "--profile", "test"}, args...))

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestCLI_AddAndList(t *testing.T) {
	env := newCLIEnv(t, nil)

	out, stderr, err := env.run(t, "add", "Stay hungry", "--category", "Life")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "local_"))
	assert.Contains(t, stderr, "[success] Quote added")

	_, _, err = env.run(t, "add", "Ship it", "-c", "Work")
	require.NoError(t, err)

	out, _, err = env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Stay hungry")
	assert.Contains(t, out, "Ship it")

	out, _, err = env.run(t, "list", "--category", "life")
	require.NoError(t, err)
	assert.Contains(t, out, "Stay hungry")
	assert.NotContains(t, out, "Ship it")
}

func TestCLI_AddValidation(t *testing.T) {
	env := newCLIEnv(t, nil)

	_, _, err := env.run(t, "add", "text")
	require.Error(t, err, "category flag is required")

	_, _, err = env.run(t, "add", "   ", "--category", "x")
	require.Error(t, err)
}

func TestCLI_FilterPersists(t *testing.T) {
	env := newCLIEnv(t, nil)

	_, _, err := env.run(t, "add", "A", "-c", "Life")
	require.NoError(t, err)
	_, _, err = env.run(t, "add", "B", "-c", "Work")
	require.NoError(t, err)

	out, _, err := env.run(t, "filter", "work")
	require.NoError(t, err)
	assert.Equal(t, "filter: work\n", out)

	out, _, err = env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "B")
	assert.NotContains(t, out, "\tA\n")

	out, _, err = env.run(t, "filter")
	require.NoError(t, err)
	assert.Contains(t, out, "filter: work")
	assert.Contains(t, out, "  Life\n")
	assert.Contains(t, out, "  Work\n")
}

func TestCLI_Sync(t *testing.T) {
	env := newCLIEnv(t, []map[string]any{
		{"id": 1, "title": "From the server", "category": "Remote"},
	})

	_, _, err := env.run(t, "add", "Mine", "-c", "Life")
	require.NoError(t, err)

	out, _, err := env.run(t, "sync")
	require.NoError(t, err)
	assert.Equal(t, "synced: 1 added, 0 updated\n", out)
	assert.EqualValues(t, 1, env.pushes.Load())

	out, _, err = env.run(t, "-q", "sync", "--json")
	require.NoError(t, err)

	var report app.SyncReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEqual(t, app.StatusFailed, report.Status)
	assert.Zero(t, report.Added, "server quote is already present")

	out, _, err = env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "server_1")
}

func TestCLI_SyncServerUnavailable(t *testing.T) {
	env := newCLIEnv(t, []map[string]any{})

	out, stderr, err := env.run(t, "sync")
	require.NoError(t, err)
	assert.Equal(t, "remote unavailable: local collection unchanged\n", out)
	assert.Contains(t, stderr, "[warning]")
}

func TestCLI_ExportImport(t *testing.T) {
	src := newCLIEnv(t, nil)

	_, _, err := src.run(t, "add", "Portable", "-c", "Travel")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "quotes.toml")

	_, _, err = src.run(t, "export", "-o", file)
	require.NoError(t, err)

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[[quotes]]")

	dst := newCLIEnv(t, nil)

	out, _, err := dst.run(t, "import", file)
	require.NoError(t, err)
	assert.Equal(t, "imported 1, skipped 0\n", out)

	out, _, err = dst.run(t, "export", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"text": "Portable"`)
}

func TestCLI_ImportErrors(t *testing.T) {
	env := newCLIEnv(t, nil)

	_, _, err := env.run(t, "import", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, _, err = env.run(t, "import", "quotes.yaml", "--format", "yaml")
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"text":"not a list"}`), 0o600))

	_, stderr, err := env.run(t, "import", bad)
	require.Error(t, err)
	assert.Contains(t, stderr, "[error] Invalid file format")
}

func TestCLI_InvalidConfig(t *testing.T) {
	env := newCLIEnv(t, nil)

	_, _, err := env.run(t, "--log-level", "loud", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestFormatOrExt(t *testing.T) {
	tests := []struct {
		format string
		path   string
		want   string
	}{
		{format: "toml", path: "out.json", want: "toml"},
		{path: "out.TOML", want: "toml"},
		{path: "out.json", want: "json"},
		{path: "out.txt", want: ""},
		{path: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.format+"|"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, formatOrExt(tt.format, tt.path))
		})
	}
}

func TestBearerAuth(t *testing.T) {
	assert.Nil(t, bearerAuth(""))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	bearerAuth("secret")(req)
	assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
}
