package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmelton/quill/internal/domain"
)

func TestArticleRoundTrip(t *testing.T) {
	s, err := NewArticleStore(t.TempDir(), "http://feeds.local:8080")
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.GetArticles()
	assert.False(t, ok, "empty store has no articles")

	articles := []domain.Article{
		{ID: "a1", FeedID: "f1", Title: "First", Read: true},
		{ID: "a2", FeedID: "f1", Title: "Second", Starred: true},
	}
	require.NoError(t, s.SaveArticles(articles))

	got, ok := s.GetArticles()
	require.True(t, ok)
	assert.Equal(t, articles, got)
}

func TestFeedRoundTrip(t *testing.T) {
	s, err := NewArticleStore(t.TempDir(), "http://feeds.local:8080")
	require.NoError(t, err)
	defer s.Close()

	feeds := []domain.Feed{{ID: "f1", Title: "Go Blog", URL: "https://go.dev/blog/feed.atom"}}
	require.NoError(t, s.SaveFeeds(feeds))

	got, ok := s.GetFeeds()
	require.True(t, ok)
	assert.Equal(t, feeds, got)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewArticleStore(dir, "http://feeds.local")
	require.NoError(t, err)
	require.NoError(t, s.SaveArticles([]domain.Article{{ID: "a1"}}))
	require.NoError(t, s.SetLastSyncedAt(1700000000))
	require.NoError(t, s.Close())

	s2, err := NewArticleStore(dir, "http://feeds.local")
	require.NoError(t, err)
	defer s2.Close()

	got, ok := s2.GetArticles()
	require.True(t, ok)
	assert.Len(t, got, 1)

	ts, ok := s2.LastSyncedAt()
	require.True(t, ok)
	assert.Equal(t, int64(1700000000), ts)
}

func TestMemoryOnlyMode(t *testing.T) {
	s, err := NewArticleStore("", "")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveArticles([]domain.Article{{ID: "a1"}}))
	got, ok := s.GetArticles()
	require.True(t, ok)
	assert.Len(t, got, 1)
}

func TestInvalidateAll(t *testing.T) {
	s, err := NewArticleStore(t.TempDir(), "http://feeds.local")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveArticles([]domain.Article{{ID: "a1"}}))
	require.NoError(t, s.SaveFeeds([]domain.Feed{{ID: "f1"}}))

	s.InvalidateAll()

	_, ok := s.GetArticles()
	assert.False(t, ok)
	_, ok = s.GetFeeds()
	assert.False(t, ok)
}

func TestSeparateServersSeparateCaches(t *testing.T) {
	dir := t.TempDir()

	s1, err := NewArticleStore(dir, "http://one.local")
	require.NoError(t, err)
	require.NoError(t, s1.SaveArticles([]domain.Article{{ID: "a1"}}))
	require.NoError(t, s1.Close())

	s2, err := NewArticleStore(dir, "http://two.local")
	require.NoError(t, err)
	defer s2.Close()

	_, ok := s2.GetArticles()
	assert.False(t, ok, "caches are keyed by server URL")
}
