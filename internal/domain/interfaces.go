package domain

import (
	"context"
	"io"
)

// ArticleRepository: network reads of the authoritative article collection
// (implemented by the feed server client).
type ArticleRepository interface {
	ListArticles(ctx context.Context, filter ArticleFilter) ([]Article, error)
}

// ArticleStateRepository mutates per-article flags on the server.
type ArticleStateRepository interface {
	MarkRead(ctx context.Context, articleID string, read bool) error
	SetStarred(ctx context.Context, articleID string, starred bool) error
}

// FeedRepository manages subscriptions on the server.
type FeedRepository interface {
	ListFeeds(ctx context.Context) ([]Feed, error)
	AddFeed(ctx context.Context, url string) (*Feed, error)
	DeleteFeed(ctx context.Context, feedID string) error
	RenameFeed(ctx context.Context, feedID, title string) error
}

// SyncTrigger starts a server-side sync of all subscribed feeds.
type SyncTrigger interface {
	// SyncAll returns the response body carrying the newline-delimited
	// progress stream. The caller owns the body and must close it,
	// including a non-nil body returned alongside an error.
	SyncAll(ctx context.Context) (io.ReadCloser, error)
}

// Store handles the local cache. The TUI reads directly from Store so a
// cold start renders instantly from disk.
type Store interface {
	GetArticles() ([]Article, bool)
	SaveArticles(articles []Article) error

	GetFeeds() ([]Feed, bool)
	SaveFeeds(feeds []Feed) error

	LastSyncedAt() (int64, bool)
	SetLastSyncedAt(ts int64) error

	InvalidateAll()
	Close() error
}
