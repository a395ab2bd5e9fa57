package tui

import "github.com/dmelton/quill/internal/domain"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ArticlesLoadedMsg signals that an article view has been loaded
type ArticlesLoadedMsg struct {
	Articles []domain.Article
	Filter   domain.ArticleFilter
}

// FeedsLoadedMsg signals that the subscription list has been loaded
type FeedsLoadedMsg struct {
	Feeds []domain.Feed
}

// ArticlesReplacedMsg carries a full collection snapshot pushed by the sync
// orchestrator mid-stream or at reconciliation
type ArticlesReplacedMsg struct {
	Articles []domain.Article
}

// RefreshVisibleMsg asks the model to reload the currently visible view
type RefreshVisibleMsg struct{}

// SyncFinishedMsg signals that a sync run has returned
type SyncFinishedMsg struct {
	UserInitiated bool
}

// SyncTickMsg fires the periodic background sync
type SyncTickMsg struct{}

// ArticleStateChangedMsg signals a read/star flag flip has been applied
type ArticleStateChangedMsg struct {
	ArticleID string
}

// OpenedMsg signals the article URL was handed to the browser
type OpenedMsg struct {
	ArticleID string
}
