package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-gamebook/internal/config"
)

// envPrefix starts every environment variable read by the CLI.
const envPrefix = "GAMEBOOK_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string  // GAMEBOOK_CONFIG: config file name or path
	Format     string  // GAMEBOOK_FORMAT: text, html, pdf
	Seed       *uint64 // GAMEBOOK_SEED: fixed shuffle seed
	Stable     bool    // GAMEBOOK_STABLE: derive the seed from the manuscript
	First      *int    // GAMEBOOK_FIRST: number of the first paragraph
	Style      string  // GAMEBOOK_STYLE: style name, CSS path or raw CSS
	Title      string  // GAMEBOOK_TITLE: HTML/PDF title
	PageSize   string  // GAMEBOOK_PAGE_SIZE: letter, a4, legal
	Timeout    string  // GAMEBOOK_TIMEOUT: conversion time limit
	OutputDir  string  // GAMEBOOK_OUTPUT_DIR: default output directory
	Workers    int     // GAMEBOOK_WORKERS: parallel workers
	LogFile    string  // GAMEBOOK_LOG_FILE: run log path
	LogLevel   string  // GAMEBOOK_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid GAMEBOOK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"GAMEBOOK_CONFIG":     true,
	"GAMEBOOK_FORMAT":     true,
	"GAMEBOOK_SEED":       true,
	"GAMEBOOK_STABLE":     true,
	"GAMEBOOK_FIRST":      true,
	"GAMEBOOK_STYLE":      true,
	"GAMEBOOK_TITLE":      true,
	"GAMEBOOK_PAGE_SIZE":  true,
	"GAMEBOOK_TIMEOUT":    true,
	"GAMEBOOK_OUTPUT_DIR": true,
	"GAMEBOOK_WORKERS":    true,
	"GAMEBOOK_LOG_FILE":   true,
	"GAMEBOOK_LOG_LEVEL":  true,
}

// loadEnvConfig reads the GAMEBOOK_* variables. Numbers that do not parse
// are reported as errors instead of being ignored.
func loadEnvConfig(getenv func(string) string) (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath: getenv("GAMEBOOK_CONFIG"),
		Format:     getenv("GAMEBOOK_FORMAT"),
		Style:      getenv("GAMEBOOK_STYLE"),
		Title:      getenv("GAMEBOOK_TITLE"),
		PageSize:   getenv("GAMEBOOK_PAGE_SIZE"),
		Timeout:    getenv("GAMEBOOK_TIMEOUT"),
		OutputDir:  getenv("GAMEBOOK_OUTPUT_DIR"),
		LogFile:    getenv("GAMEBOOK_LOG_FILE"),
		LogLevel:   getenv("GAMEBOOK_LOG_LEVEL"),
	}

	// Parse numbering values
	if v := getenv("GAMEBOOK_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: GAMEBOOK_SEED=%q", ErrInvalidEnv, v)
		}
		cfg.Seed = &seed
	}
	if v := getenv("GAMEBOOK_STABLE"); v != "" {
		stable, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: GAMEBOOK_STABLE=%q", ErrInvalidEnv, v)
		}
		cfg.Stable = stable
	}
	if v := getenv("GAMEBOOK_FIRST"); v != "" {
		first, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: GAMEBOOK_FIRST=%q", ErrInvalidEnv, v)
		}
		cfg.First = &first
	}
	// Parse int for workers
	if v := getenv("GAMEBOOK_WORKERS"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil || w < 0 {
			return nil, fmt.Errorf("%w: GAMEBOOK_WORKERS=%q", ErrInvalidEnv, v)
		}
		cfg.Workers = w
	}

	return cfg, nil
}

// warnUnknownEnvVars prints a warning for every unrecognized GAMEBOOK_*
// variable in environ. Helps catch typos like GAMEBOOK_SEEED.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies every set environment value over cfg. Flags are
// merged afterwards, giving: flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Output
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	// Numbering
	if env.Seed != nil {
		cfg.Shuffle.Seed = env.Seed
		cfg.Shuffle.Stable = false
	}
	if env.Stable {
		cfg.Shuffle.Stable = true
		cfg.Shuffle.Seed = nil
	}
	if env.First != nil {
		cfg.Numbering.First = env.First
	}
	// Rendering
	if env.Style != "" {
		cfg.HTML.Style = env.Style
	}
	if env.Title != "" {
		cfg.HTML.Title = env.Title
	}
	if env.PageSize != "" {
		cfg.PDF.PageSize = env.PageSize
	}
	if env.Timeout != "" {
		cfg.PDF.Timeout = env.Timeout
	}
	// Run log
	if env.LogFile != "" {
		cfg.Log.File = env.LogFile
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}
