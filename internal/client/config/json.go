package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/marketfeed/internal/flagx"
	"github.com/dmitrijs2005/marketfeed/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "500ms" or as integer nanoseconds.
type JsonConfig struct {
	DataDir          string          `json:"data_dir"`
	LogLevel         string          `json:"log_level"`
	TokenFile        string          `json:"token_file"`
	ProviderAttempts uint64          `json:"provider_attempts"`
	ProviderInterval *timex.Duration `json:"provider_interval"`
	AvatarSize       int             `json:"avatar_size"`
	MaxMediaBytes    int64           `json:"max_media_bytes"`
}

// parseJson overlays Config with values loaded from the JSON file given by
// -c or -config. Missing keys and zero values leave the current value
// alone, except provider_interval, which must be positive when present.
// Panics on read, unmarshal or validation errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.ProviderAttempts != 0 {
		cfg.ProviderAttempts = jc.ProviderAttempts
	}
	if jc.ProviderInterval != nil {
		if jc.ProviderInterval.Duration <= 0 {
			panic(fmt.Errorf("provider_interval must be positive, got %s", jc.ProviderInterval.Duration))
		}
		cfg.ProviderInterval = jc.ProviderInterval.Duration
	}
	if jc.AvatarSize != 0 {
		cfg.AvatarSize = jc.AvatarSize
	}
	if jc.MaxMediaBytes != 0 {
		cfg.MaxMediaBytes = jc.MaxMediaBytes
	}
}
