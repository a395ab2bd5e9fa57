// Package sync drives a server-side sync of all subscribed feeds and keeps
// the local article collection reconciled with the server's result.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dmelton/quill/internal/domain"
	"github.com/dmelton/quill/internal/stream"
)

// Config wires the orchestrator's collaborators.
type Config struct {
	// Trigger starts the server-side sync and hands back the progress stream.
	Trigger domain.SyncTrigger

	// Articles serves the authoritative article list for reconciliation.
	Articles domain.ArticleRepository

	// SetArticles replaces the shared article collection. The collection is
	// owned by the caller; the orchestrator only proposes full snapshots.
	SetArticles func([]domain.Article)

	// RefreshVisible reloads the currently visible, filtered article view.
	// Invoked only for user-initiated syncs. Optional.
	RefreshVisible func()

	Logger *slog.Logger
}

// Orchestrator owns the syncing flag and runs the sync protocol: trigger,
// stream, per-event reconciliation, final reconciliation, optional visible
// refresh. Sync is best-effort background work; every failure is absorbed
// and logged, never surfaced to the caller.
type Orchestrator struct {
	trigger        domain.SyncTrigger
	articles       domain.ArticleRepository
	setArticles    func([]domain.Article)
	refreshVisible func()
	decoder        *stream.Decoder
	logger         *slog.Logger

	syncing atomic.Bool
}

// New creates a sync orchestrator.
func New(cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		trigger:        cfg.Trigger,
		articles:       cfg.Articles,
		setArticles:    cfg.SetArticles,
		refreshVisible: cfg.RefreshVisible,
		decoder:        stream.NewDecoder(logger),
		logger:         logger,
	}
}

// Syncing reports whether a sync is currently in flight. It is true
// strictly between a SyncAll call starting and returning, on both success
// and failure paths.
//
// Overlapping SyncAll calls are not serialized; callers wanting exclusivity
// gate on Syncing before invoking.
func (o *Orchestrator) Syncing() bool {
	return o.syncing.Load()
}

// SyncAll triggers a sync of all subscribed feeds and consumes the progress
// stream, applying an authoritative article snapshot after each progress
// event and once more after the stream ends. When userInitiated is true,
// the visible article view is additionally refreshed after the final write.
//
// SyncAll never returns an error: a failed sync leaves the collection at
// the last successfully applied snapshot and logs the cause.
func (o *Orchestrator) SyncAll(ctx context.Context, userInitiated bool) {
	o.syncing.Store(true)
	defer o.syncing.Store(false)

	if err := o.run(ctx, userInitiated); err != nil {
		o.logger.Error("feed sync failed", "error", err, "userInitiated", userInitiated)
	}
}

func (o *Orchestrator) run(ctx context.Context, userInitiated bool) error {
	body, err := o.trigger.SyncAll(ctx)
	if err != nil || body == nil {
		if body != nil {
			body.Close()
		}
		// Nothing to stream. Not fatal: fall through to the user-initiated
		// refresh so the caller's view still reloads.
		o.logger.Warn("sync trigger failed, nothing to stream", "error", err)
	} else {
		defer body.Close()

		onEvent := func(ev domain.ProgressEvent) {
			// Progress events carry no guaranteed payload shape across
			// server versions, so applying progress means re-pulling the
			// authoritative list rather than trusting event contents.
			o.logger.Debug("sync progress", "type", ev.Type())
			if err := o.applyAuthoritative(ctx); err != nil {
				o.logger.Warn("reconciliation fetch failed, keeping last snapshot", "error", err)
			}
		}

		if err := o.decoder.Decode(ctx, body, onEvent); err != nil {
			return fmt.Errorf("progress stream interrupted: %w", err)
		}

		// Final reconciliation: server truth wins even if the last progress
		// event was dropped or the stream ended between events.
		if err := o.applyAuthoritative(ctx); err != nil {
			return fmt.Errorf("final reconciliation failed: %w", err)
		}
	}

	if userInitiated && o.refreshVisible != nil {
		o.refreshVisible()
	}
	return nil
}

// applyAuthoritative fetches the full article list and replaces the shared
// collection with it.
func (o *Orchestrator) applyAuthoritative(ctx context.Context) error {
	articles, err := o.articles.ListArticles(ctx, domain.ArticleFilter{})
	if err != nil {
		return err
	}
	o.setArticles(articles)
	return nil
}
