package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestResolve_Defaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "counter")
	require.NoError(t, os.Mkdir(dir, 0o755))

	cfg, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "counter", cfg.AppName)
	assert.Equal(t, "counter", cfg.Title)
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, DefaultHeight, cfg.Height)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.Watch)
	assert.Empty(t, cfg.ScenePath)
	assert.Empty(t, cfg.ModulePath)
}

func TestResolve_AppNameFromModule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/acme/dashboard/v2\n\ngo 1.24\n")

	cfg, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "example.com/acme/dashboard/v2", cfg.ModulePath)
	assert.Equal(t, "dashboard", cfg.AppName)
}

func TestResolve_File(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
app:
  name: Counter
window:
  title: Counter Demo
  width: 320
  height: 200
  debug: true
scene: scenes/counter.yaml
log_level: debug
watch: false
inspect: 127.0.0.1:9999
`)

	cfg, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "Counter", cfg.AppName)
	assert.Equal(t, "Counter Demo", cfg.Title)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
	assert.True(t, cfg.Debug)
	assert.Equal(t, filepath.Join(dir, "scenes", "counter.yaml"), cfg.ScenePath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "127.0.0.1:9999", cfg.InspectAddr)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown field", "colour: red\n", "failed to parse"},
		{"bad yaml", "window: [\n", "failed to parse"},
		{"negative size", "window:\n  width: -1\n", "must not be negative"},
		{"bad level", "log_level: loud\n", "invalid log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName, tt.content)
			_, err := Resolve(dir)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadOptional_Empty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "")
	cfg, err := LoadOptional(dir)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindProjectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	lone := t.TempDir()
	got, err = FindProjectRoot(lone)
	require.NoError(t, err)
	// No marker anywhere above a temp dir is not guaranteed, so only check
	// that a path was returned.
	assert.NotEmpty(t, got)
}
