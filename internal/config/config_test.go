package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vango-refs/internal/errors"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(New(), t.TempDir(), "")
	require.NoError(t, err)

	require.Equal(t, DefaultLogLevel, cfg.Log.Level)
	require.Equal(t, DefaultLogFormat, cfg.Log.Format)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
	require.Equal(t, DefaultAddr, cfg.Serve.Addr)
	require.False(t, cfg.Trace.Enabled)
	require.Equal(t, "stdout", cfg.Trace.Exporter)
	require.Empty(t, cfg.Path())
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	content := "fixture: trees/home.yaml\nlog:\n  level: debug\n  format: json\nserve:\n  addr: :9000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vango-refs.yaml"), []byte(content), 0o644))

	cfg, err := Load(New(), dir, "")
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, ":9000", cfg.Serve.Addr)
	require.Equal(t, filepath.Join(dir, "vango-refs.yaml"), cfg.Path())
	require.Equal(t, filepath.Join(dir, "trees", "home.yaml"), cfg.FixturePath())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VANGO_REFS_LOG_LEVEL", "warn")
	t.Setenv("VANGO_REFS_SERVE_ADDR", "0.0.0.0:1234")

	cfg, err := Load(New(), t.TempDir(), "")
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "0.0.0.0:1234", cfg.Serve.Addr)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(New(), ".", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var ve *errors.VangoError
	require.True(t, stderrors.As(err, &ve))
	require.Equal(t, "R020", ve.Code)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "log:\n  level: loud\n"},
		{"bad format", "log:\n  format: xml\n"},
		{"empty namespace", "metrics:\n  enabled: true\n  namespace: \"\"\n"},
		{"bad exporter", "trace:\n  exporter: jaeger\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(New(), ".", path)
			var ve *errors.VangoError
			require.True(t, stderrors.As(err, &ve), "error = %v", err)
			require.Equal(t, "R021", ve.Code)
		})
	}
}

func TestLogger(t *testing.T) {
	var b strings.Builder

	cfg := Defaults()
	cfg.Log.Format = "json"
	cfg.Log.Level = "debug"
	cfg.Logger(&b).Debug("hello", "k", "v")
	require.Contains(t, b.String(), `"msg":"hello"`)

	b.Reset()
	cfg.Log.Format = "text"
	cfg.Log.Level = "error"
	cfg.Logger(&b).Info("hidden")
	require.Empty(t, b.String())
}

func TestFixturePath(t *testing.T) {
	cfg := Defaults()
	require.Empty(t, cfg.FixturePath())

	cfg.Fixture = "/abs/tree.yaml"
	cfg.configPath = "/etc/vango-refs.yaml"
	require.Equal(t, "/abs/tree.yaml", cfg.FixturePath())
}
