package tui

import "github.com/dmelton/quill/internal/domain"

const updateBuffer = 16

// Updates adapts the sync orchestrator's injected callbacks to channels the
// Bubble Tea loop can wait on, so Update stays synchronous.
type Updates struct {
	articles chan []domain.Article
	refresh  chan struct{}
}

// NewUpdates creates the channel bridge.
func NewUpdates() *Updates {
	return &Updates{
		articles: make(chan []domain.Article, updateBuffer),
		refresh:  make(chan struct{}, 1),
	}
}

// SetArticles forwards a collection snapshot without blocking. When the
// buffer is full the oldest queued snapshot is dropped so the newest one,
// in particular the final reconciliation result, always gets through.
func (u *Updates) SetArticles(articles []domain.Article) {
	select {
	case u.articles <- articles:
		return
	default:
	}
	select {
	case <-u.articles:
	default:
	}
	select {
	case u.articles <- articles:
	default:
	}
}

// RefreshVisible requests a reload of the visible view (coalesced).
func (u *Updates) RefreshVisible() {
	select {
	case u.refresh <- struct{}{}:
	default:
	}
}
