package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultRebar, cfg.Rebar)
	assert.Equal(t, DefaultErl, cfg.Erl)
	assert.Equal(t, DefaultExtraPath, cfg.ExtraPath)
	assert.Equal(t, DefaultSentinelSuite, cfg.SentinelSuite)
	assert.Zero(t, cfg.Timeout)
	assert.Len(t, cfg.PathsToIgnore, len(DefaultPathsToIgnore))

	// The defaults slice must not be shared
	cfg.PathsToIgnore[0] = "changed"
	assert.NotEqual(t, "changed", DefaultPathsToIgnore[0])
}

func TestConfig_ApplyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "erlt.yaml")
	content := `rebar: /opt/rebar/rebar
erl: /opt/otp/bin/erl
extra_path: /opt/otp/bin
timeout: 90s
history_limit: 5
ignore:
  - priv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := New()
	require.NoError(t, cfg.ApplyFile(path))

	assert.Equal(t, "/opt/rebar/rebar", cfg.Rebar)
	assert.Equal(t, "/opt/otp/bin/erl", cfg.Erl)
	assert.Equal(t, "/opt/otp/bin", cfg.ExtraPath)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Contains(t, cfg.PathsToIgnore, "priv")
	assert.Equal(t, DefaultSentinelSuite, cfg.SentinelSuite)
}

func TestConfig_ApplyFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		err := New().ApplyFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad timeout", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("timeout: soon\n"), 0644))
		err := New().ApplyFile(path)
		assert.ErrorContains(t, err, "invalid timeout")
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rebar: [unterminated\n"), 0644))
		assert.Error(t, New().ApplyFile(path))
	})
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		"ERLT_REBAR":          "rebar3",
		"ERLT_TIMEOUT":        "2m",
		"ERLT_SENTINEL_SUITE": "nothing_here",
		"ERLT_HISTORY_LIMIT":  "7",
	}
	cfg := New()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "rebar3", cfg.Rebar)
	assert.Equal(t, DefaultErl, cfg.Erl)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, "nothing_here", cfg.SentinelSuite)
	assert.Equal(t, 7, cfg.HistoryLimit)

	err := New().ApplyEnv(func(k string) string {
		if k == "ERLT_TIMEOUT" {
			return "forever"
		}
		return ""
	})
	assert.ErrorContains(t, err, "ERLT_TIMEOUT")
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "erlt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rebar: from-file\nerl: from-file\ntimeout: 10s\n"), 0644))

	t.Setenv("ERLT_ERL", "from-env")
	t.Setenv("ERLT_REBAR", "")
	t.Setenv("ERLT_TIMEOUT", "")

	cfg, err := Load(Flags{ConfigFile: path, Timeout: 30 * time.Second})
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Rebar)
	assert.Equal(t, "from-env", cfg.Erl)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, path, cfg.Flags.ConfigFile)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(Flags{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestConfig_GetHistoryPath(t *testing.T) {
	cfg := New()
	got := cfg.GetHistoryPath("/project")
	assert.Equal(t, filepath.Join("/project", DefaultHistoryDir, DefaultHistoryFile), got)
}
