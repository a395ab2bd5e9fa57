package feedserver

// Wire types for the feed server's JSON API.

type articleDTO struct {
	ID          string `json:"id"`
	FeedID      string `json:"feed_id"`
	FeedTitle   string `json:"feed_title"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Summary     string `json:"summary,omitempty"`
	PublishedAt int64  `json:"published_at"`
	Read        bool   `json:"read"`
	Starred     bool   `json:"starred"`
}

type feedDTO struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	LastFetchedAt int64  `json:"last_fetched_at"`
	ArticleCount  int    `json:"article_count"`
	UnreadCount   int    `json:"unread_count"`
}

type addFeedRequest struct {
	URL string `json:"url"`
}

type renameFeedRequest struct {
	Title string `json:"title"`
}
