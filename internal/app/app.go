package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/five82/kitchen/internal/auth"
	"github.com/five82/kitchen/internal/config"
	"github.com/five82/kitchen/internal/i18n"
	"github.com/five82/kitchen/internal/idle"
	"github.com/five82/kitchen/internal/inventory"
	"github.com/five82/kitchen/internal/kitchen"
	"github.com/five82/kitchen/internal/logger"
	"github.com/five82/kitchen/internal/metrics"
	"github.com/five82/kitchen/internal/prefs"
	"github.com/five82/kitchen/internal/session"
	"github.com/five82/kitchen/internal/state"
	"github.com/five82/kitchen/internal/store"
	"github.com/five82/kitchen/internal/ui"
)

// Options configure the client.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/kitchenhelper/prefs.toml
	RefreshEvery int    // seconds; zero uses default
	// Stdout receives command output; nil means os.Stdout.
	Stdout io.Writer
}

func (o Options) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

// services are the wired dependencies shared by the TUI and the one-shot
// commands.
type services struct {
	cfg       config.Config
	logger    *slog.Logger
	registry  *prometheus.Registry
	session   *session.Session
	client    *kitchen.Client
	auth      *auth.Adapter
	inventory *inventory.Service
	state     *state.Store
	bridge    *ui.Bridge
	closers   []io.Closer
}

func open(opts Options) (*services, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, logCloser, err := logger.OpenFile(cfg.LogPath, level)
	if err != nil {
		return nil, err
	}
	svc := &services{cfg: cfg, logger: log, closers: []io.Closer{logCloser}}

	db, err := store.OpenBolt(cfg.StorePath)
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("open session store: %w", err)
	}
	svc.closers = append(svc.closers, db)
	svc.session = session.New(db)
	if svc.session.Locale() == "" {
		if err := svc.session.SetLocale(initialLocale(cfg.Language)); err != nil {
			log.Warn("store locale failed", slog.String("error", err.Error()))
		}
	}

	svc.registry = prometheus.NewRegistry()
	svc.bridge = ui.NewBridge()
	svc.client, err = kitchen.NewClient(kitchen.Options{
		BaseURL:   cfg.BaseURL(),
		Session:   svc.session,
		Navigator: svc.bridge,
		Transport: kitchen.Transport(cfg.AuthTransport),
		Limiter:   newLimiter(cfg.RequestsPerSecond),
		Metrics:   metrics.NewCollector(svc.registry),
		Logger:    log,
	})
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	svc.state = &state.Store{}
	svc.auth = auth.New(svc.client, svc.session, svc.bridge, log)
	svc.inventory = inventory.NewService(svc.client, svc.state, log)

	log.Debug("client ready",
		slog.String("base_url", cfg.BaseURL()),
		slog.String("transport", cfg.AuthTransport),
	)
	return svc, nil
}

// Close releases the session store and the log file.
func (s *services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// initialLocale picks the first-run language: the configured one, else the
// system locale, else the default.
func initialLocale(configured string) string {
	for _, pref := range []string{configured, os.Getenv("LC_ALL"), os.Getenv("LANG")} {
		if lang, ok := i18n.Match(pref); ok {
			return lang
		}
	}
	return i18n.Default
}

func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	burst := int(math.Ceil(perSecond))
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Run boots the TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	svc, err := open(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	if addr := svc.cfg.MetricsAddr; addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, svc.registry, svc.logger); err != nil {
				svc.logger.Warn("metrics server stopped", slog.String("error", err.Error()))
			}
		}()
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		svc.logger.Warn("load prefs failed", slog.String("error", err.Error()))
	}

	monitor := idle.New(idle.Options{
		Timeout:  svc.cfg.SessionTimeout,
		Warning:  svc.cfg.SessionWarning,
		OnWarn:   svc.bridge.IdleWarning,
		OnExpire: svc.bridge.IdleExpired,
	})
	defer monitor.Stop()

	interval := defaultRefreshInterval
	if opts.RefreshEvery > 0 {
		interval = time.Duration(opts.RefreshEvery) * time.Second
	}
	StartRefresher(ctx, &Refresher{
		Auth:   svc.auth,
		Pantry: svc.inventory,
		API:    svc.client,
		Store:  svc.state,
		Logger: svc.logger,
	}, interval)

	svc.logger.Info("starting ui", slog.String("theme", userPrefs.Theme))
	return ui.Run(ui.Options{
		Context:   ctx,
		API:       svc.client,
		Auth:      svc.auth,
		Inventory: svc.inventory,
		Store:     svc.state,
		Session:   svc.session,
		Idle:      monitor,
		Bridge:    svc.bridge,
		Logger:    svc.logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Prefs:     userPrefs,
	})
}
