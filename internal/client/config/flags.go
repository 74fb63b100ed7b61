package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/marketfeed/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory
//	-l string   log level
//	-t string   federated token file
//	-r uint     readiness attempts
//	-i int      readiness interval in milliseconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-t", "-r", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "federated token file")
	fs.Uint64Var(&cfg.ProviderAttempts, "r", cfg.ProviderAttempts, "sign-in widget readiness attempts")
	interval := fs.Int("i", int(cfg.ProviderInterval.Milliseconds()), "sign-in widget readiness interval (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	if *interval <= 0 {
		panic(fmt.Errorf("readiness interval must be positive, got %d ms", *interval))
	}

	cfg.ProviderInterval = time.Duration(*interval) * time.Millisecond
}
