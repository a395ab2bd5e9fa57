package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmelton/quill/internal/domain"
)

func TestFilterArticles(t *testing.T) {
	articles := []domain.Article{
		{ID: "1", Title: "Go 1.25 Released"},
		{ID: "2", Title: "Rust Async Survey"},
		{ID: "3", Title: "Going Serverless with Go"},
	}

	tt := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "empty query matches nothing", query: "", wantIDs: nil},
		{name: "no hits", query: "zzzz", wantIDs: nil},
		{name: "single hit", query: "rust", wantIDs: []string{"2"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			results := FilterArticles(tc.query, articles)
			var ids []string
			for _, r := range results {
				ids = append(ids, r.Article.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestFilterArticlesRanksAndHighlights(t *testing.T) {
	articles := []domain.Article{
		{ID: "1", Title: "Weekly News"},
		{ID: "2", Title: "Go Weekly"},
	}

	results := FilterArticles("go", articles)
	require.NotEmpty(t, results)
	assert.Equal(t, "2", results[0].Article.ID, "title-prefix match ranks first")
	assert.NotEmpty(t, results[0].MatchedIndexes)
}

func TestRankFeeds(t *testing.T) {
	feeds := []domain.Feed{
		{ID: "1", Title: "Hacker News"},
		{ID: "2", Title: "Go Blog"},
		{ID: "3", Title: "Golang Weekly"},
	}

	ranked := RankFeeds("go", feeds)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Go Blog", ranked[0].Title)

	all := RankFeeds("", feeds)
	assert.Equal(t, feeds, all, "empty query keeps original order")
}
