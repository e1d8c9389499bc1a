package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
}

// DefaultEnv returns the process environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
	}
}

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string        // PLAYBOOK_CONFIG: config file name or path
	Source     string        // PLAYBOOK_SOURCE: playbook text file
	OutputDir  string        // PLAYBOOK_OUTPUT_DIR: default output directory
	Timeout    time.Duration // PLAYBOOK_TIMEOUT: PDF generation timeout
	Workers    int           // PLAYBOOK_WORKERS: parallel workers
	Port       string        // PORT: preview server port
}

// knownEnvVars lists valid PLAYBOOK_* environment variables.
var knownEnvVars = map[string]bool{
	"PLAYBOOK_CONFIG":     true,
	"PLAYBOOK_SOURCE":     true,
	"PLAYBOOK_OUTPUT_DIR": true,
	"PLAYBOOK_TIMEOUT":    true,
	"PLAYBOOK_WORKERS":    true,
}

// loadEnvConfig reads the recognized variables. Malformed numbers and
// durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("PLAYBOOK_CONFIG"),
		Source:     getenv("PLAYBOOK_SOURCE"),
		OutputDir:  getenv("PLAYBOOK_OUTPUT_DIR"),
		Timeout:    envDuration(getenv, "PLAYBOOK_TIMEOUT", 0),
		Workers:    envInt(getenv, "PLAYBOOK_WORKERS", 0),
		Port:       getenv("PORT"),
	}
}

// applyEnvConfig overlays set variables onto cfg.
// Precedence: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Source != "" {
		cfg.Server.Source = env.Source
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Port != "" {
		cfg.Server.Addr = ":" + strings.TrimPrefix(env.Port, ":")
	}
}

// warnUnknownEnvVars reports unrecognized PLAYBOOK_* variables.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "PLAYBOOK_") && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

func envInt(getenv func(string) string, key string, fallback int) int {
	if v := getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(getenv func(string) string, key string, fallback time.Duration) time.Duration {
	if v := getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
