// Package config provides the configuration schema and loader for Quiesce.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// LogLevel controls log verbosity for the Quiesce process.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Duration wraps [time.Duration] with YAML decoding from strings like
// "400ms" or "3s".
type Duration time.Duration

// UnmarshalYAML decodes a duration string via [time.ParseDuration].
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML encodes the duration in [time.Duration] string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped [time.Duration].
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the root configuration structure for Quiesce.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server ServerConfig `yaml:"server"`
	NVDA   NVDAConfig   `yaml:"nvda"`
	Phrase PhraseConfig `yaml:"phrase"`
	TTS    TTSConfig    `yaml:"tts"`
}

// ServerConfig holds diagnostics-endpoint and logging settings.
type ServerConfig struct {
	// ListenAddr is the TCP address of the diagnostics endpoint serving
	// health checks and Prometheus metrics (e.g., "127.0.0.1:9823").
	// Empty disables the endpoint.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// NVDAConfig holds controller-client and reader-addon settings.
type NVDAConfig struct {
	// DLLPath locates nvdaControllerClient64.dll. Empty means next to the
	// Quiesce binary.
	DLLPath string `yaml:"dll_path"`

	// MarkerPath locates the spec file the reader-side addon drops when it
	// supports the suppression command protocol. Empty means the
	// conventional location in the NVDA user configuration directory.
	MarkerPath string `yaml:"marker_path"`

	// ModifierKey is the key bound as the NVDA modifier.
	ModifierKey string `yaml:"modifier_key"`

	// PollInterval is how often the reachability probe refreshes the
	// running-state gauge.
	PollInterval Duration `yaml:"poll_interval"`
}

// PhraseConfig tunes the interrupt-suppression coordinator.
type PhraseConfig struct {
	// RestoreDelay is how long after phrase end the re-enable batch is
	// sent. This debounces the tail of the phrase's synthetic keystrokes.
	RestoreDelay Duration `yaml:"restore_delay"`
}

// TTSConfig selects where status announcements are spoken.
type TTSConfig struct {
	// ViaScreenReader routes announcements through NVDA's own synthesizer
	// instead of the host's fallback speech engine.
	ViaScreenReader bool `yaml:"via_screenreader"`
}

// Defaults for zero-valued fields.
const (
	DefaultLogLevel     = LogInfo
	DefaultModifierKey  = "insert"
	DefaultPollInterval = 3 * time.Second
	DefaultRestoreDelay = 400 * time.Millisecond
)

// knownModifierKeys lists modifier bindings NVDA supports. Used by
// [Validate] to warn about unrecognised values.
var knownModifierKeys = []string{"insert", "numpadinsert", "capslock"}

// ApplyDefaults fills zero-valued fields with their defaults. DLL and marker
// paths stay empty here; their platform-dependent defaults are resolved by
// the caller.
func (c *Config) ApplyDefaults() {
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
	if c.NVDA.ModifierKey == "" {
		c.NVDA.ModifierKey = DefaultModifierKey
	}
	if c.NVDA.PollInterval == 0 {
		c.NVDA.PollInterval = Duration(DefaultPollInterval)
	}
	if c.Phrase.RestoreDelay == 0 {
		c.Phrase.RestoreDelay = Duration(DefaultRestoreDelay)
	}
}

// Default returns a fresh [Config] with every defaultable field populated.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}
