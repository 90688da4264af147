package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"exifstudio/internal/blobstore"
	"exifstudio/internal/config"
	"exifstudio/internal/engine"
	"exifstudio/internal/metacache"
	"exifstudio/internal/notifications"
	"exifstudio/internal/registry"
)

// Session wires the engine, store, cache, and registry into the workflows
// exposed to the CLI.
type Session struct {
	cfg      *config.Config
	engine   engine.Client
	store    *blobstore.Store
	cache    *metacache.Cache
	registry *registry.Registry
	notifier notifications.Service
	logger   *slog.Logger
}

// Options configures optional session collaborators.
type Options struct {
	Engine   engine.Client
	Notifier notifications.Service
	Logger   *slog.Logger
}

// New builds a session over an open workspace store.
func New(cfg *config.Config, store *blobstore.Store, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	eng := opts.Engine
	if eng == nil {
		eng = engine.NewCLI(
			engine.WithBinary(cfg.Engine.Binary),
			engine.WithVersionTimeout(time.Duration(cfg.Engine.VersionTimeout)*time.Second),
			engine.WithLogger(logger),
		)
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	cache := metacache.NewCache()
	return &Session{
		cfg:      cfg,
		engine:   eng,
		store:    store,
		cache:    cache,
		registry: registry.New(store, cache, logger),
		notifier: notifier,
		logger:   logger.With(slog.String("component", "session")),
	}
}

// Registry exposes the file registry for read access.
func (s *Session) Registry() *registry.Registry {
	return s.registry
}

// Metadata returns the cached metadata for a file id.
func (s *Session) Metadata(id string) (metacache.Metadata, bool) {
	return s.cache.Get(id)
}

// Restore reloads persisted files into the registry and cache. Safe to call
// more than once; only the first call does work.
func (s *Session) Restore(ctx context.Context) error {
	return s.registry.Restore(ctx)
}

// Select marks a file as the active one.
func (s *Session) Select(id string) error {
	return s.registry.Select(id)
}

// Remove drops a file from the session and the workspace.
func (s *Session) Remove(ctx context.Context, id string) error {
	file, ok := s.registry.Get(id)
	if !ok {
		return fmt.Errorf("unknown file id %s", id)
	}
	if err := s.registry.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info("removed file", slog.String("file_id", id), slog.String("file", file.Name))
	return nil
}

// Clear removes every file from the session and the workspace.
func (s *Session) Clear(ctx context.Context) {
	s.registry.Clear(ctx)
	s.logger.Info("cleared workspace")
}

func (s *Session) notifySuccess(ctx context.Context, enabled bool, message string) {
	if !enabled {
		return
	}
	if err := s.notifier.Success(ctx, message); err != nil {
		s.logger.Warn("notification failed", slog.Any("error", err))
	}
}

func (s *Session) notifyWarning(ctx context.Context, enabled bool, message string) {
	if !enabled {
		return
	}
	if err := s.notifier.Warning(ctx, message); err != nil {
		s.logger.Warn("notification failed", slog.Any("error", err))
	}
}

func (s *Session) notifyError(ctx context.Context, message string) {
	if !s.cfg.Notifications.Errors {
		return
	}
	if err := s.notifier.Error(ctx, message); err != nil {
		s.logger.Warn("notification failed", slog.Any("error", err))
	}
}
