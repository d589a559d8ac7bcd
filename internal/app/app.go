// Package app wires the stores, catalog, policy and text generation into a
// practice engine and drives the line-oriented practice loop.
package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/grammiz/internal/catalog"
	"github.com/abhisek/grammiz/internal/config"
	"github.com/abhisek/grammiz/internal/diagnosis"
	"github.com/abhisek/grammiz/internal/explain"
	"github.com/abhisek/grammiz/internal/llm"
	"github.com/abhisek/grammiz/internal/logger"
	"github.com/abhisek/grammiz/internal/selection"
	"github.com/abhisek/grammiz/internal/session"
	"github.com/abhisek/grammiz/internal/spacedrep"
	"github.com/abhisek/grammiz/internal/store"
)

// Options carries the dependencies that are not part of the configuration.
type Options struct {
	// DBPath is the resolved database path or URL.
	DBPath string

	// Provider overrides the configured LLM provider when non-nil.
	Provider llm.Provider

	// Rand seeds template selection; nil seeds from the clock.
	Rand *rand.Rand

	// Now overrides the session clock.
	Now func() time.Time
}

// App holds the wired services for one CLI invocation.
type App struct {
	Config    *config.Config
	Store     *store.Store
	Catalog   *catalog.Catalog
	Tracker   *diagnosis.Tracker
	Scheduler *spacedrep.Scheduler
	Explainer *explain.Service
	Engine    *session.Engine
	Log       *logger.Logger

	// Ephemeral is set when the configured database could not be opened
	// and the session runs against a throwaway in-memory store instead.
	Ephemeral bool

	now func() time.Time
}

// New opens the store and builds the services. An unreachable database, a
// broken catalog file or an unusable LLM provider is logged and degraded,
// never fatal: the learner always gets exercises.
func New(ctx context.Context, cfg *config.Config, opts Options, log *logger.Logger) (*App, error) {
	log = logger.OrNop(log)

	ephemeral := false
	st, err := store.OpenContext(ctx, opts.DBPath)
	if err != nil {
		log.Warn("database unavailable, progress will not be saved", "error", err)
		if st, err = store.OpenMemory(ctx); err != nil {
			return nil, fmt.Errorf("open fallback store: %w", err)
		}
		ephemeral = true
	}

	cat, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		log.Warn("catalog unavailable, using fallback templates", "path", cfg.CatalogPath, "error", err)
	}

	provider := opts.Provider
	if provider == nil {
		provider = newProvider(ctx, cfg, st, log)
	}

	explainCfg := explain.DefaultConfig()
	explainCfg.Language = cfg.Explain.Language

	a := &App{
		Config:    cfg,
		Store:     st,
		Catalog:   cat,
		Tracker:   diagnosis.NewTracker(st.Patterns(), log),
		Scheduler: spacedrep.NewScheduler(st.Reviews(), log),
		Explainer: explain.NewService(provider, explainCfg, log),
		Log:       log,
		Ephemeral: ephemeral,
		now:       time.Now,
	}
	checker := selection.Checker{
		TolerateTypos: cfg.Session.TolerateTypos,
		SqueezeSpaces: cfg.Session.SqueezeSpaces,
	}
	a.Engine = session.NewEngine(session.Deps{
		Policy:    selection.NewPolicy(cat, opts.Rand),
		Tracker:   a.Tracker,
		Scheduler: a.Scheduler,
		Sessions:  st.Sessions(),
		Explainer: a.Explainer,
		Checker:   checker,
		Log:       log,
	})
	if opts.Now != nil {
		a.now = opts.Now
		a.Engine = a.Engine.WithClock(opts.Now)
		a.Tracker.WithClock(opts.Now)
	}
	return a, nil
}

// newProvider returns nil when no provider is configured or it cannot be
// built; callers then use static explanations.
func newProvider(ctx context.Context, cfg *config.Config, st *store.Store, log *logger.Logger) llm.Provider {
	llmCfg, ok := cfg.LLM.Resolve()
	if !ok {
		log.Debug("no LLM provider configured")
		return nil
	}
	p, err := llm.NewProvider(ctx, llmCfg, st.LLMEvents(), log)
	if err != nil {
		log.Warn("LLM provider unavailable, explanations will be static", "provider", llmCfg.Provider, "error", err)
		return nil
	}
	return p
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
