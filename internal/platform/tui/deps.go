package tui

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/numbolt/internal/config"
	"github.com/vovakirdan/numbolt/internal/core"
	"github.com/vovakirdan/numbolt/internal/engine"
	"github.com/vovakirdan/numbolt/internal/progress"
	"github.com/vovakirdan/numbolt/internal/registry"
	"github.com/vovakirdan/numbolt/internal/storage"
)

// Deps are the shared collaborators of every screen.
// Store may be nil; progress then lives in memory for the process lifetime.
type Deps struct {
	Store  *storage.Store
	Config config.Config
	Logger *log.Logger

	mu       sync.Mutex
	fallback map[string]*progress.MemoryKV // Per profile, used when Store is nil
}

// NewDeps bundles the collaborators. A nil logger uses the default logger.
func NewDeps(store *storage.Store, cfg config.Config, logger *log.Logger) *Deps {
	if logger == nil {
		logger = log.Default()
	}
	return &Deps{
		Store:    store,
		Config:   cfg,
		Logger:   logger,
		fallback: make(map[string]*progress.MemoryKV),
	}
}

// Repository returns the progress repository of a profile.
func (d *Deps) Repository(profile string) *progress.Repository {
	if d.Store != nil {
		return progress.NewRepository(d.Store.Profile(profile), d.Logger).WithThreshold(d.Config.Progress.XPThreshold)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	kv, ok := d.fallback[profile]
	if !ok {
		kv = progress.NewMemoryKV()
		d.fallback[profile] = kv
	}
	return progress.NewRepository(kv, d.Logger).WithThreshold(d.Config.Progress.XPThreshold)
}

// Engine creates an engine for mode using the session's runtime config.
func (d *Deps) Engine(ctx context.Context, mode registry.Mode, rc core.RuntimeConfig) *engine.Engine {
	opts := engine.Options{
		Config:  d.Config,
		Rand:    core.NewRand(rc.Seed),
		Logger:  d.Logger.With("profile", rc.Profile),
		Profile: rc.Profile,
	}
	if d.Store != nil {
		opts.Recorder = d.Store
	}
	return engine.New(ctx, mode, d.Repository(rc.Profile), opts)
}
