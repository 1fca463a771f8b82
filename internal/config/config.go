// Package config resolves the process-wide settings described in
// spec.md §6: a single base-directory variable that prefixes every
// "data/" path the cached object manager reads from and writes to.
package config

import (
	"os"

	"github.com/nightsky-studio/zzzcalc/internal/log"
)

// Config is the resolved process configuration.
type Config struct {
	// BaseDir prefixes every "data/" path (spec.md §6 "Environment").
	BaseDir string
	// Port is the HTTP listen port.
	Port string
}

// FromEnv resolves configuration from the environment, applying the
// same "validate and apply a safe default, log a warning" pattern the
// teacher uses for its cache configuration.
func FromEnv() Config {
	cfg := Config{BaseDir: ".", Port: "8080"}

	if dir := os.Getenv("ZZZCALC_BASE_DIR"); dir != "" {
		cfg.BaseDir = dir
	} else {
		log.Warn("ZZZCALC_BASE_DIR not set, using current directory", "default", cfg.BaseDir)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}

	return cfg
}
