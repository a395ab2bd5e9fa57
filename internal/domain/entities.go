package domain

import (
	"fmt"
	"time"
)

// Article represents one feed entry as known to the server.
type Article struct {
	ID          string // Server-assigned unique identifier
	FeedID      string // Owning feed ID
	FeedTitle   string // Owning feed display title
	Title       string // Entry title
	URL         string // Link to the full article
	Summary     string // Short excerpt, may be empty
	PublishedAt int64  // Unix timestamp of publication
	Read        bool   // Whether the user has read it
	Starred     bool   // Whether the user has starred it
}

// Age returns a compact human-readable age ("3h", "2d") for list display.
func (a Article) Age() string {
	if a.PublishedAt <= 0 {
		return ""
	}
	d := time.Since(time.Unix(a.PublishedAt, 0))
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// Feed represents one subscribed feed.
type Feed struct {
	ID            string // Server-assigned unique identifier
	Title         string // Display title
	URL           string // Feed URL the server polls
	LastFetchedAt int64  // Unix timestamp of the server's last poll
	ArticleCount  int    // Total articles known for this feed
	UnreadCount   int    // Unread articles for this feed
}

// ArticleFilter narrows an article listing. Zero value means all articles.
type ArticleFilter struct {
	FeedID      string // Restrict to one feed ("" = all feeds)
	UnreadOnly  bool   // Restrict to unread articles
	StarredOnly bool   // Restrict to starred articles
}
