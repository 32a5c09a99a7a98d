package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/MrWong99/quiesce/internal/config"
)

const validYAML = `
server:
  listen_addr: "127.0.0.1:9823"
  log_level: debug
nvda:
  dll_path: "C:\\tools\\nvdaControllerClient64.dll"
  modifier_key: capslock
  poll_interval: 5s
phrase:
  restore_delay: 250ms
tts:
  via_screenreader: true
`

func TestLoadFromReader_Valid(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(validYAML))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Server.ListenAddr != "127.0.0.1:9823" {
		t.Errorf("ListenAddr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Server.LogLevel != config.LogDebug {
		t.Errorf("LogLevel = %q, want debug", cfg.Server.LogLevel)
	}
	if cfg.NVDA.ModifierKey != "capslock" {
		t.Errorf("ModifierKey = %q, want capslock", cfg.NVDA.ModifierKey)
	}
	if got := cfg.NVDA.PollInterval.Std(); got != 5*time.Second {
		t.Errorf("PollInterval = %v, want 5s", got)
	}
	if got := cfg.Phrase.RestoreDelay.Std(); got != 250*time.Millisecond {
		t.Errorf("RestoreDelay = %v, want 250ms", got)
	}
	if !cfg.TTS.ViaScreenReader {
		t.Error("ViaScreenReader = false, want true")
	}
}

func TestLoadFromReader_EmptyGetsDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Server.LogLevel != config.DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.Server.LogLevel, config.DefaultLogLevel)
	}
	if cfg.NVDA.ModifierKey != config.DefaultModifierKey {
		t.Errorf("ModifierKey = %q, want %q", cfg.NVDA.ModifierKey, config.DefaultModifierKey)
	}
	if got := cfg.NVDA.PollInterval.Std(); got != config.DefaultPollInterval {
		t.Errorf("PollInterval = %v, want %v", got, config.DefaultPollInterval)
	}
	if got := cfg.Phrase.RestoreDelay.Std(); got != config.DefaultRestoreDelay {
		t.Errorf("RestoreDelay = %v, want %v", got, config.DefaultRestoreDelay)
	}
}

func TestLoadFromReader_UnknownFieldRejected(t *testing.T) {
	t.Parallel()
	_, err := config.LoadFromReader(strings.NewReader("server:\n  listen_adr: ':1'\n"))
	if err == nil {
		t.Error("misspelled field accepted, want decode error")
	}
}

func TestLoadFromReader_BadDuration(t *testing.T) {
	t.Parallel()
	_, err := config.LoadFromReader(strings.NewReader("phrase:\n  restore_delay: soon\n"))
	if err == nil {
		t.Error("invalid duration accepted, want error")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Server.LogLevel = "loud"
	if err := config.Validate(cfg); err == nil {
		t.Error("invalid log level accepted, want error")
	}
}

func TestValidate_NegativeDurations(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.NVDA.PollInterval = config.Duration(-time.Second)
	cfg.Phrase.RestoreDelay = config.Duration(-time.Millisecond)

	err := config.Validate(cfg)
	if err == nil {
		t.Fatal("negative durations accepted, want error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "poll_interval") || !strings.Contains(msg, "restore_delay") {
		t.Errorf("error %q does not list both failures", msg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	if _, err := config.Load("/does/not/exist.yaml"); err == nil {
		t.Error("missing file accepted, want error")
	}
}
