// Command quiesce runs the NVDA interrupt-suppression bridge in monitor mode.
//
// Monitor mode has no dictation engine attached: it polls controller-client
// reachability, serves health checks and Prometheus metrics on the configured
// diagnostics endpoint, and optionally runs the controller self-test. The
// suppression coordinator itself only activates when a dictation host embeds
// the app package and supplies its engine and command transport.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrWong99/quiesce/internal/app"
	"github.com/MrWong99/quiesce/internal/config"
	"github.com/MrWong99/quiesce/internal/observe"
)

// version is stamped via -ldflags at release time.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	selfTest := flag.Bool("selftest", false, "probe the controller client once, print the result, and exit")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("config file not found, using defaults", "path", *configPath)
			cfg = config.Default()
		} else {
			fmt.Fprintf(os.Stderr, "quiesce: %v\n", err)
			return 1
		}
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	slog.SetDefault(newLogger(cfg.Server.LogLevel))

	// ── Telemetry ─────────────────────────────────────────────────────────────
	shutdownTelemetry, err := observe.InitProvider(context.Background(), observe.ProviderConfig{
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Monitor mode: no dictation host, so no collaborators.
	application, err := app.New(cfg, app.Collaborators{})
	if err != nil {
		slog.Error("failed to initialise application", "err", err)
		return 1
	}

	if *selfTest {
		return runSelfTest(application)
	}

	slog.Info("quiesce starting",
		"version", version,
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
		"poll_interval", cfg.NVDA.PollInterval.Std(),
	)

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// runSelfTest probes the controller client once and reports the outcome on
// stdout, mirroring what the reader would announce.
func runSelfTest(application *app.App) int {
	client := application.Client()
	status := client.StatusCode()
	fmt.Printf("controller status code: %d\n", status)
	if !client.Running() {
		fmt.Println("screen reader not reachable")
		return 1
	}
	fmt.Println("screen reader reachable")
	if err := client.Speak("Controller self test passed"); err != nil {
		fmt.Printf("speak failed: %v\n", err)
		return 1
	}
	return 0
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
