// Package app wires all Quiesce subsystems into a running bridge.
//
// The App struct owns the full lifecycle: New creates and connects the
// controller client, TTS routing, NVDA actions, and the phrase coordinator,
// then registers the phrase callbacks with the dictation engine. Run drives
// the reachability poller and the diagnostics HTTP endpoint until the
// context is cancelled.
//
// The dictation host supplies its side of the contract via [Collaborators].
// Commander and Engine are optional: without a Commander there is no
// suppression coordinator, and without an Engine no callbacks are registered
// — the app then runs in monitor mode, useful for the diagnostics binary.
//
// For testing, inject doubles via functional options (WithClient,
// WithMetrics).
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/quiesce/internal/config"
	"github.com/MrWong99/quiesce/internal/cron"
	"github.com/MrWong99/quiesce/internal/health"
	"github.com/MrWong99/quiesce/internal/ipc"
	"github.com/MrWong99/quiesce/internal/keys"
	"github.com/MrWong99/quiesce/internal/nvda"
	"github.com/MrWong99/quiesce/internal/observe"
	"github.com/MrWong99/quiesce/internal/phrase"
	"github.com/MrWong99/quiesce/internal/speech"
	"github.com/MrWong99/quiesce/internal/tts"
)

// Collaborators holds the interfaces owned by the dictation host. Engine and
// Commander are optional; Presser and Fallback may be nil when the host does
// not expose them (the corresponding features degrade gracefully).
type Collaborators struct {
	// Engine fires the phrase-boundary callbacks.
	Engine speech.Engine

	// Commander delivers command batches to the reader-side addon.
	Commander ipc.Commander

	// Presser emits synthetic key events for the NVDA actions.
	Presser keys.Presser

	// Fallback speaks announcements when TTS is not routed to the reader.
	Fallback tts.Speaker
}

// App owns all subsystem lifetimes.
type App struct {
	cfg     *config.Config
	client  nvda.Client
	marker  nvda.Marker
	coord   *phrase.Coordinator
	actions *nvda.Actions
	router  *tts.Router
	met     *observe.Metrics

	// running caches the last polled reachability state.
	running atomic.Bool
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*App)

// WithClient injects a controller client instead of loading the platform one.
func WithClient(c nvda.Client) Option {
	return func(a *App) { a.client = c }
}

// WithMetrics injects a metrics instance instead of the package default.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.met = m }
}

// New builds the application from cfg and the host's collaborators.
func New(cfg *config.Config, collab Collaborators, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.met == nil {
		a.met = observe.DefaultMetrics()
	}
	if a.client == nil {
		dll := cfg.NVDA.DLLPath
		if dll == "" {
			dll = nvda.DefaultDLLPath()
		}
		a.client = nvda.NewClient(dll)
	}

	markerPath := cfg.NVDA.MarkerPath
	if markerPath == "" {
		markerPath = nvda.DefaultMarkerPath()
	}
	a.marker = nvda.NewMarker(markerPath)

	a.router = tts.NewRouter(cfg.TTS.ViaScreenReader,
		tts.NewReaderSpeaker(a.client), collab.Fallback, a.met)

	if collab.Presser != nil {
		actions, err := nvda.NewActions(nvda.ActionsConfig{
			Client:      a.client,
			Presser:     collab.Presser,
			Voice:       a.router,
			Commander:   collab.Commander,
			ModifierKey: cfg.NVDA.ModifierKey,
		})
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		a.actions = actions
	}

	if collab.Commander != nil {
		coord, err := phrase.New(phrase.Config{
			Probe:        a.client.Running,
			Marker:       a.marker.Present,
			Commander:    collab.Commander,
			RestoreDelay: cfg.Phrase.RestoreDelay.Std(),
			Metrics:      a.met,
		})
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		a.coord = coord
	}

	if collab.Engine != nil {
		if a.coord == nil {
			slog.Warn("dictation engine attached without a command transport; interrupt suppression disabled")
		} else {
			collab.Engine.RegisterPrePhrase(a.coord.PhraseStarted)
			collab.Engine.RegisterPostPhrase(a.coord.PhraseEnded)
			slog.Info("phrase callbacks registered")
		}
	}

	return a, nil
}

// Run polls reader reachability and serves the diagnostics endpoint until
// ctx is cancelled. It returns ctx's error on orderly shutdown.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	// Prime the running tag before the first tick.
	a.refreshRunning(gctx)
	if interval := a.cfg.NVDA.PollInterval.Std(); interval > 0 {
		poller := cron.Every(interval, func() {
			a.refreshRunning(context.Background())
		})
		defer poller.Stop()
	}

	if addr := a.cfg.Server.ListenAddr; addr != "" {
		mux := http.NewServeMux()
		health.New(
			health.Probe{Name: "reader", Check: a.client.Running},
			health.Probe{Name: "marker", Check: a.marker.Present},
		).Register(mux)
		mux.Handle("GET /metrics", promhttp.Handler())

		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			slog.Info("diagnostics endpoint listening", "addr", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return gctx.Err()
	})

	return g.Wait()
}

// refreshRunning re-probes the controller client and publishes the result to
// the running tag and the metrics gauge. Transitions are logged.
func (a *App) refreshRunning(ctx context.Context) {
	up := a.client.Running()
	if prev := a.running.Swap(up); prev != up {
		slog.Info("nvda reachability changed", "running", up)
	}
	a.met.SetReaderRunning(ctx, up)
}

// Running reports the most recently polled reader reachability.
func (a *App) Running() bool { return a.running.Load() }

// Coordinator returns the phrase coordinator, or nil in monitor mode.
func (a *App) Coordinator() *phrase.Coordinator { return a.coord }

// Actions returns the NVDA lifecycle actions, or nil without a Presser.
func (a *App) Actions() *nvda.Actions { return a.actions }

// Speaker returns the announcement router.
func (a *App) Speaker() *tts.Router { return a.router }

// Client returns the controller client.
func (a *App) Client() nvda.Client { return a.client }
