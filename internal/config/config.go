// Package config loads process configuration from the environment, an
// optional .env file and an optional YAML policy file.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/donna/internal/llm"
	"github.com/alexanderramin/donna/internal/logging"
	"github.com/alexanderramin/donna/internal/scheduler"
)

// Backend selects the calendar store.
type Backend string

const (
	BackendLocal  Backend = "local"
	BackendGoogle Backend = "google"
)

// Env holds the DONNA_* variables.
type Env struct {
	DBPath            string  `env:"DB"`
	Timezone          string  `env:"TIMEZONE, default=America/New_York"`
	Backend           Backend `env:"BACKEND, default=local"`
	CalendarID        string  `env:"CALENDAR_ID, default=primary"`
	GoogleCredentials string  `env:"GOOGLE_CREDENTIALS"`
	PolicyFile        string  `env:"POLICY_FILE"`
	LogLevel          string  `env:"LOG_LEVEL, default=info"`
	Mood              bool    `env:"MOOD, default=false"`
	Classify          bool    `env:"CLASSIFY, default=false"`
}

// Config is the resolved configuration.
type Config struct {
	Env
	Location *time.Location
	LLM      llm.LLMConfig
	Policy   scheduler.Policy
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding values already set. Missing files are
// ignored.
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load resolves the configuration through lookuper. A nil lookuper reads
// the process environment.
func Load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg.Env,
		Lookuper: envconfig.PrefixLookuper("DONNA_", lookuper),
	}); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	cfg.Backend = Backend(strings.ToLower(string(cfg.Backend)))
	if cfg.Backend != BackendLocal && cfg.Backend != BackendGoogle {
		return nil, fmt.Errorf("DONNA_BACKEND must be %q or %q, got %q", BackendLocal, BackendGoogle, cfg.Backend)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		path, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("DONNA_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.LLM, err = llm.LoadConfig(ctx, lookuper); err != nil {
		return nil, fmt.Errorf("reading interpreter config: %w", err)
	}
	if cfg.Policy, err = LoadPolicy(cfg.PolicyFile); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultDBPath returns ~/.donna/donna.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".donna", "donna.db"), nil
}

// LoadPolicy overlays the YAML file at path onto the default policy. An
// empty path or a missing file yields the defaults.
func LoadPolicy(path string) (scheduler.Policy, error) {
	p := scheduler.DefaultPolicy()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("reading policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing policy file %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("policy file %s: %w", path, err)
	}
	return p, nil
}
