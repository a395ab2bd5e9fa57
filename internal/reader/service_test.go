package reader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmelton/quill/internal/domain"
	"github.com/dmelton/quill/internal/log"
	"github.com/dmelton/quill/internal/store"
)

// fakeClient implements the reader.Client bundle in memory.
type fakeClient struct {
	articles []domain.Article
	feeds    []domain.Feed
	listErr  error

	read    map[string]bool
	starred map[string]bool
	deleted []string
	renamed map[string]string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		read:    make(map[string]bool),
		starred: make(map[string]bool),
		renamed: make(map[string]string),
	}
}

func (f *fakeClient) ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if filter.FeedID == "" && !filter.UnreadOnly && !filter.StarredOnly {
		return f.articles, nil
	}
	var out []domain.Article
	for _, a := range f.articles {
		if filter.FeedID != "" && a.FeedID != filter.FeedID {
			continue
		}
		if filter.UnreadOnly && a.Read {
			continue
		}
		if filter.StarredOnly && !a.Starred {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeClient) MarkRead(ctx context.Context, id string, read bool) error {
	f.read[id] = read
	return nil
}

func (f *fakeClient) SetStarred(ctx context.Context, id string, starred bool) error {
	f.starred[id] = starred
	return nil
}

func (f *fakeClient) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	return f.feeds, nil
}

func (f *fakeClient) AddFeed(ctx context.Context, url string) (*domain.Feed, error) {
	feed := domain.Feed{ID: "new", URL: url}
	f.feeds = append(f.feeds, feed)
	return &feed, nil
}

func (f *fakeClient) DeleteFeed(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClient) RenameFeed(ctx context.Context, id, title string) error {
	f.renamed[id] = title
	return nil
}

func newTestService(t *testing.T, client *fakeClient) (*Service, domain.Store) {
	t.Helper()
	st, err := store.NewArticleStore("", "")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(client, st, log.NullLogger()), st
}

func TestArticlesFetchesAndCaches(t *testing.T) {
	client := newFakeClient()
	client.articles = []domain.Article{{ID: "a1", FeedID: "f1"}, {ID: "a2", FeedID: "f2"}}
	svc, _ := newTestService(t, client)

	got, err := svc.Articles(context.Background(), domain.ArticleFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	cached, ok := svc.CachedArticles()
	require.True(t, ok)
	assert.Equal(t, client.articles, cached)
}

func TestFilteredFetchDoesNotClobberCache(t *testing.T) {
	client := newFakeClient()
	client.articles = []domain.Article{{ID: "a1", FeedID: "f1"}, {ID: "a2", FeedID: "f2"}}
	svc, _ := newTestService(t, client)

	_, err := svc.Articles(context.Background(), domain.ArticleFilter{})
	require.NoError(t, err)

	_, err = svc.Articles(context.Background(), domain.ArticleFilter{FeedID: "f1"})
	require.NoError(t, err)

	cached, ok := svc.CachedArticles()
	require.True(t, ok)
	assert.Len(t, cached, 2, "filtered views never replace the full cached collection")
}

func TestArticlesFetchError(t *testing.T) {
	client := newFakeClient()
	client.listErr = errors.New("offline")
	svc, _ := newTestService(t, client)

	_, err := svc.Articles(context.Background(), domain.ArticleFilter{})
	assert.Error(t, err)

	_, ok := svc.CachedArticles()
	assert.False(t, ok, "failed fetch leaves the cache untouched")
}

func TestSaveArticlesStampsSyncTime(t *testing.T) {
	svc, st := newTestService(t, newFakeClient())

	svc.SaveArticles([]domain.Article{{ID: "a1"}})

	cached, ok := svc.CachedArticles()
	require.True(t, ok)
	assert.Len(t, cached, 1)

	_, ok = st.LastSyncedAt()
	assert.True(t, ok)
}

func TestMarkReadPatchesCache(t *testing.T) {
	client := newFakeClient()
	client.articles = []domain.Article{{ID: "a1"}, {ID: "a2"}}
	svc, _ := newTestService(t, client)

	_, err := svc.Articles(context.Background(), domain.ArticleFilter{})
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(context.Background(), "a2", true))

	assert.True(t, client.read["a2"], "server informed")
	cached, ok := svc.CachedArticles()
	require.True(t, ok)
	assert.False(t, cached[0].Read)
	assert.True(t, cached[1].Read, "cache patched in place")
}

func TestDeleteFeedInvalidatesCache(t *testing.T) {
	client := newFakeClient()
	client.articles = []domain.Article{{ID: "a1", FeedID: "f1"}}
	svc, _ := newTestService(t, client)

	_, err := svc.Articles(context.Background(), domain.ArticleFilter{})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFeed(context.Background(), "f1"))

	_, ok := svc.CachedArticles()
	assert.False(t, ok)
	assert.Equal(t, []string{"f1"}, client.deleted)
}
