package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/zjrosen/vitrine/internal/app"
	"github.com/zjrosen/vitrine/internal/config"
	"github.com/zjrosen/vitrine/internal/infrastructure/sqlite"
	"github.com/zjrosen/vitrine/internal/layout"
	"github.com/zjrosen/vitrine/internal/log"
	"github.com/zjrosen/vitrine/internal/palette"
	"github.com/zjrosen/vitrine/internal/platform"
	"github.com/zjrosen/vitrine/internal/profile"
	"github.com/zjrosen/vitrine/internal/retry"
	"github.com/zjrosen/vitrine/internal/theme"
	"github.com/zjrosen/vitrine/internal/tracing"
)

// engine owns the stores and every resource behind them.
type engine struct {
	services app.Services
	db       *sqlite.DB
	scheme   *platform.FileScheme
	tracer   *tracing.Provider
}

// newEngine wires the stores from cfg. In a browser context the engine
// persists the mode preference and watches the OS scheme; otherwise the
// platform is inert. Storage and scheme failures degrade rather than fail;
// only a broken tracing setup is an error.
func newEngine(cfg config.Config, browser bool) (*engine, error) {
	e := &engine{tracer: tracing.Noop()}

	if cfg.Tracing.Enabled {
		tp, err := tracing.NewProvider(cfg.Tracing.Provider())
		if err != nil {
			return nil, err
		}
		e.tracer = tp
	}

	doc := platform.NewDocument()
	vp := platform.NewResizableViewport(0)
	host := platform.Host{
		Storage:  e.openStorage(cfg.Storage, browser),
		Document: doc,
		Viewport: vp,
	}

	var manual *platform.ManualScheme
	if browser {
		if cfg.Scheme.File != "" {
			fs, err := platform.NewFileScheme(cfg.Scheme.File, platform.DefaultSchemeDebounce)
			if err != nil {
				log.WarnErr(log.CatPlatform, "Scheme file unavailable, using terminal background", err, "path", cfg.Scheme.File)
			} else {
				e.scheme = fs
				host.Scheme = fs
			}
		}
		if host.Scheme == nil {
			manual = platform.NewManualScheme(platform.TerminalScheme().Matches())
			host.Scheme = manual
		}
	}

	adapter := platform.New(host, func() bool { return browser })

	themes := theme.NewStore(adapter,
		theme.WithTransition(transitionFor(cfg.Transition, doc.Capture)),
		theme.WithCosmetics(cfg.Theme.Cosmetics()),
	)
	pal := palette.NewStore(adapter, cfg.Palette.BaseColor)
	lay := layout.NewStore(adapter, themes)

	e.services = app.Services{
		Themes:   themes,
		Palette:  pal,
		Layout:   lay,
		Document: doc,
		Viewport: vp,
		Scheme:   manual,
	}
	if src := e.profileSource(cfg.Profile); src != nil {
		e.services.Feeder = profile.NewFeeder(src, pal, cfg.Profile.Timeout)
	}
	return e, nil
}

func (e *engine) openStorage(cfg config.StorageConfig, browser bool) platform.Storage {
	if !browser || cfg.Disabled || cfg.Path == "" {
		return platform.NewMemoryStorage()
	}
	db, err := sqlite.NewDB(cfg.Path)
	if err != nil {
		log.WarnErr(log.CatDB, "Preference database unavailable, keeping preference in memory", err, "path", cfg.Path)
		return platform.NewMemoryStorage()
	}
	e.db = db
	return db.Preferences()
}

// preferenceSetAt reports when the stored mode preference was last written.
// It is unknown when the preference lives in memory.
func (e *engine) preferenceSetAt() (time.Time, bool) {
	if e.db == nil {
		return time.Time{}, false
	}
	at, ok, err := e.db.Preferences().UpdatedAt(theme.PreferenceKey)
	if err != nil {
		log.WarnErr(log.CatDB, "Reading preference timestamp failed", err)
		return time.Time{}, false
	}
	return at, ok
}

func (e *engine) profileSource(cfg config.ProfileConfig) profile.Source {
	switch {
	case cfg.URL != "":
		rc := retry.DefaultConfig()
		rc.MaxAttempts = cfg.RetryAttempts
		return profile.NewHTTPSource(cfg.URL,
			profile.WithRetry(rc),
			profile.WithTracer(e.tracer.Tracer()),
		)
	case cfg.File != "":
		return profile.NewFileSource(cfg.File)
	default:
		return nil
	}
}

// transitionFor picks the mode transition. capture runs before each animated
// mutation to record the outgoing state.
func transitionFor(cfg config.TransitionConfig, capture func()) platform.Transition {
	if !cfg.Enabled || cfg.Duration <= 0 {
		return platform.Immediate{}
	}
	return platform.NewAnimated(cfg.Duration, capture)
}

// Close releases stores first, then the resources under them.
func (e *engine) Close() error {
	s := e.services
	if s.Feeder != nil {
		s.Feeder.Close()
	}
	s.Layout.Close()
	s.Palette.Close()
	s.Themes.Close()

	var errs []error
	if e.scheme != nil {
		errs = append(errs, e.scheme.Close())
	}
	if e.db != nil {
		errs = append(errs, e.db.Close())
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errs = append(errs, e.tracer.Shutdown(ctx))
	return errors.Join(errs...)
}
