package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"data_dir":          "/srv/marketfeed",
		"log_level":         "warn",
		"provider_attempts": 3,
		"provider_interval": "2s",
		"avatar_size":       64,
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "/srv/marketfeed", cfg.DataDir)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, uint64(3), cfg.ProviderAttempts)
		assert.Equal(t, 2*time.Second, cfg.ProviderInterval)
		assert.Equal(t, 64, cfg.AvatarSize)
		assert.Equal(t, int64(20<<20), cfg.MaxMediaBytes, "missing key keeps default")
	})

	t.Run("flags override json", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", pathFlag, "-l", "debug"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)
		parseFlags(cfg)

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "/srv/marketfeed", cfg.DataDir)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{DataDir: "defaults", ProviderInterval: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "defaults", cfg.DataDir)
		assert.Equal(t, 42*time.Second, cfg.ProviderInterval)
	})

	t.Run("non-positive interval → panics", func(t *testing.T) {
		for i, v := range []any{0, "0s", "-1s"} {
			path := writeTempJSON(t, dir, fmt.Sprintf("interval%d.json", i), map[string]any{"provider_interval": v})
			os.Args = []string{"testbin", "-c", path}

			cfg := &Config{}
			cfg.LoadDefaults()
			require.Panics(t, func() { parseJson(cfg) }, "provider_interval=%v", v)
		}
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
