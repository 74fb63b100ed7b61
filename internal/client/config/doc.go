// Package config loads runtime configuration for the MarketFeed CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory (database and token file)
//	-l string   log level: debug, info, warn, error
//	-t string   federated token file
//	-r uint     sign-in widget readiness attempts
//	-i int      sign-in widget readiness interval (milliseconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "500ms" or integer nanoseconds. Missing keys keep their
// defaults:
//
//	{
//	  "data_dir": ".marketfeed",
//	  "log_level": "info",
//	  "token_file": "",
//	  "provider_attempts": 10,
//	  "provider_interval": "500ms",
//	  "avatar_size": 128,
//	  "max_media_bytes": 20971520
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
