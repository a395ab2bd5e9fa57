package feedserver

import "github.com/dmelton/quill/internal/domain"

func mapArticle(d articleDTO) domain.Article {
	return domain.Article{
		ID:          d.ID,
		FeedID:      d.FeedID,
		FeedTitle:   d.FeedTitle,
		Title:       d.Title,
		URL:         d.URL,
		Summary:     d.Summary,
		PublishedAt: d.PublishedAt,
		Read:        d.Read,
		Starred:     d.Starred,
	}
}

// MapArticles converts wire articles to domain articles
func MapArticles(dtos []articleDTO) []domain.Article {
	articles := make([]domain.Article, 0, len(dtos))
	for _, d := range dtos {
		articles = append(articles, mapArticle(d))
	}
	return articles
}

func mapFeed(d feedDTO) domain.Feed {
	return domain.Feed{
		ID:            d.ID,
		Title:         d.Title,
		URL:           d.URL,
		LastFetchedAt: d.LastFetchedAt,
		ArticleCount:  d.ArticleCount,
		UnreadCount:   d.UnreadCount,
	}
}

// MapFeeds converts wire feeds to domain feeds
func MapFeeds(dtos []feedDTO) []domain.Feed {
	feeds := make([]domain.Feed, 0, len(dtos))
	for _, d := range dtos {
		feeds = append(feeds, mapFeed(d))
	}
	return feeds
}
