package config

import (
	"path/filepath"
	"time"
)

const (
	dbFileName    = "marketfeed.db"
	tokenFileName = "federated.token"
)

// Config holds runtime settings for the MarketFeed CLI.
//
// Fields:
//   - DataDir: directory with the local database and the provider token.
//   - LogLevel: debug, info, warn or error.
//   - TokenFile: file the sign-in widget drops its token into. Empty means
//     federated.token inside DataDir.
//   - ProviderAttempts, ProviderInterval: bound the wait for the sign-in
//     widget.
//   - AvatarSize: side of the square avatar thumbnail, in pixels.
//   - MaxMediaBytes: largest accepted attachment.
type Config struct {
	DataDir          string
	LogLevel         string
	TokenFile        string
	ProviderAttempts uint64
	ProviderInterval time.Duration
	AvatarSize       int
	MaxMediaBytes    int64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = ".marketfeed"
	c.LogLevel = "info"
	c.TokenFile = ""
	c.ProviderAttempts = 10
	c.ProviderInterval = 500 * time.Millisecond
	c.AvatarSize = 128
	c.MaxMediaBytes = 20 << 20
}

// DBPath is the SQLite file inside DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, dbFileName)
}

// TokenPath resolves TokenFile, falling back to a file inside DataDir.
func (c *Config) TokenPath() string {
	if c.TokenFile != "" {
		return c.TokenFile
	}
	return filepath.Join(c.DataDir, tokenFileName)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
