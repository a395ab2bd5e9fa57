// Package reader glues the feed server client and the local store into the
// read-side API the TUI consumes.
package reader

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmelton/quill/internal/domain"
)

// Client bundles the server-side operations the reader needs.
type Client interface {
	domain.ArticleRepository
	domain.ArticleStateRepository
	domain.FeedRepository
}

// Service orchestrates client + store operations.
type Service struct {
	client Client
	store  domain.Store
	logger *slog.Logger
}

// NewService creates a new reader service.
func NewService(client Client, store domain.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, store: store, logger: logger}
}

// Articles fetches the article list from the server and caches the
// unfiltered collection locally.
func (s *Service) Articles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	articles, err := s.client.ListArticles(ctx, filter)
	if err != nil {
		s.logger.Error("failed to fetch articles", "error", err)
		return nil, err
	}
	if filter == (domain.ArticleFilter{}) {
		if err := s.store.SaveArticles(articles); err != nil {
			s.logger.Error("failed to cache articles", "error", err)
		}
	}
	s.logger.Debug("fetched articles", "count", len(articles))
	return articles, nil
}

// CachedArticles returns the locally cached collection, if any. Never
// blocks on the network; safe to call from rendering code.
func (s *Service) CachedArticles() ([]domain.Article, bool) {
	return s.store.GetArticles()
}

// Feeds fetches the subscription list and caches it.
func (s *Service) Feeds(ctx context.Context) ([]domain.Feed, error) {
	feeds, err := s.client.ListFeeds(ctx)
	if err != nil {
		s.logger.Error("failed to fetch feeds", "error", err)
		return nil, err
	}
	if err := s.store.SaveFeeds(feeds); err != nil {
		s.logger.Error("failed to cache feeds", "error", err)
	}
	s.logger.Debug("fetched feeds", "count", len(feeds))
	return feeds, nil
}

// CachedFeeds returns the locally cached subscription list, if any.
func (s *Service) CachedFeeds() ([]domain.Feed, bool) {
	return s.store.GetFeeds()
}

// SaveArticles replaces the cached collection and stamps the sync time.
// Used as the orchestrator's collection sink.
func (s *Service) SaveArticles(articles []domain.Article) {
	if err := s.store.SaveArticles(articles); err != nil {
		s.logger.Error("failed to cache articles", "error", err)
	}
	if err := s.store.SetLastSyncedAt(time.Now().Unix()); err != nil {
		s.logger.Error("failed to stamp sync time", "error", err)
	}
}

// AddFeed subscribes to a new feed.
func (s *Service) AddFeed(ctx context.Context, url string) (*domain.Feed, error) {
	feed, err := s.client.AddFeed(ctx, url)
	if err != nil {
		s.logger.Error("failed to add feed", "error", err, "url", url)
		return nil, err
	}
	s.logger.Info("added feed", "feedID", feed.ID, "url", url)
	return feed, nil
}

// DeleteFeed unsubscribes a feed and drops cached state, which no longer
// reflects the server's collection.
func (s *Service) DeleteFeed(ctx context.Context, feedID string) error {
	if err := s.client.DeleteFeed(ctx, feedID); err != nil {
		s.logger.Error("failed to delete feed", "error", err, "feedID", feedID)
		return err
	}
	s.store.InvalidateAll()
	s.logger.Info("deleted feed", "feedID", feedID)
	return nil
}

// RenameFeed updates a feed's display title.
func (s *Service) RenameFeed(ctx context.Context, feedID, title string) error {
	if err := s.client.RenameFeed(ctx, feedID, title); err != nil {
		s.logger.Error("failed to rename feed", "error", err, "feedID", feedID)
		return err
	}
	s.logger.Info("renamed feed", "feedID", feedID, "title", title)
	return nil
}

// MarkRead flips an article's read flag on the server and in the cached
// collection.
func (s *Service) MarkRead(ctx context.Context, articleID string, read bool) error {
	if err := s.client.MarkRead(ctx, articleID, read); err != nil {
		s.logger.Error("failed to mark read", "error", err, "articleID", articleID)
		return err
	}
	s.patchCached(articleID, func(a *domain.Article) { a.Read = read })
	return nil
}

// SetStarred flips an article's starred flag on the server and in the
// cached collection.
func (s *Service) SetStarred(ctx context.Context, articleID string, starred bool) error {
	if err := s.client.SetStarred(ctx, articleID, starred); err != nil {
		s.logger.Error("failed to set starred", "error", err, "articleID", articleID)
		return err
	}
	s.patchCached(articleID, func(a *domain.Article) { a.Starred = starred })
	return nil
}

// patchCached applies fn to one article in the cached snapshot so the UI
// reflects the flag change without waiting for the next sync.
func (s *Service) patchCached(articleID string, fn func(*domain.Article)) {
	articles, ok := s.store.GetArticles()
	if !ok {
		return
	}
	for i := range articles {
		if articles[i].ID == articleID {
			fn(&articles[i])
			break
		}
	}
	if err := s.store.SaveArticles(articles); err != nil {
		s.logger.Error("failed to cache articles", "error", err)
	}
}
