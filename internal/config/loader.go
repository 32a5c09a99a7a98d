package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config] with defaults applied. It is a convenience wrapper around
// [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults, and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	// An empty document decodes to EOF; that is a valid all-defaults config.
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	cfg.ApplyDefaults()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.NVDA.PollInterval < 0 {
		errs = append(errs, fmt.Errorf("nvda.poll_interval %v must not be negative", cfg.NVDA.PollInterval.Std()))
	}
	if cfg.Phrase.RestoreDelay < 0 {
		errs = append(errs, fmt.Errorf("phrase.restore_delay %v must not be negative", cfg.Phrase.RestoreDelay.Std()))
	}

	// Unknown modifier keys still work if the dictation host can press
	// them, so warn rather than fail.
	if key := cfg.NVDA.ModifierKey; key != "" && !slices.Contains(knownModifierKeys, key) {
		slog.Warn("unrecognised nvda.modifier_key", "key", key, "known", knownModifierKeys)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: validation failed: %w", errors.Join(errs...))
}
