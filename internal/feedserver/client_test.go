package feedserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmelton/quill/internal/domain"
	"github.com/dmelton/quill/internal/log"
)

func TestListArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/articles", r.URL.Path)
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))
		assert.Equal(t, "true", r.URL.Query().Get("unread"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id":"a1","feed_id":"f1","feed_title":"Go Blog","title":"Go 1.25","url":"https://go.dev/blog/go1.25","published_at":1750000000,"read":false,"starred":true}
		]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token123", log.NullLogger())
	articles, err := c.ListArticles(context.Background(), domain.ArticleFilter{UnreadOnly: true})
	require.NoError(t, err)

	require.Len(t, articles, 1)
	assert.Equal(t, domain.Article{
		ID:          "a1",
		FeedID:      "f1",
		FeedTitle:   "Go Blog",
		Title:       "Go 1.25",
		URL:         "https://go.dev/blog/go1.25",
		PublishedAt: 1750000000,
		Starred:     true,
	}, articles[0])
}

func TestUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad", log.NullLogger())
	_, err := c.ListArticles(context.Background(), domain.ArticleFilter{})
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
}

func TestServerUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "token", log.NullLogger())
	_, err := c.ListArticles(context.Background(), domain.ArticleFilter{})
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestAddFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/feeds", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"url":"https://example.com/feed.xml"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"f9","title":"Example","url":"https://example.com/feed.xml"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", log.NullLogger())
	feed, err := c.AddFeed(context.Background(), "https://example.com/feed.xml")
	require.NoError(t, err)
	assert.Equal(t, "f9", feed.ID)
	assert.Equal(t, "Example", feed.Title)
}

func TestDeleteFeedNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", log.NullLogger())
	err := c.DeleteFeed(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrFeedNotFound)
}

func TestMarkReadMethods(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", log.NullLogger())

	require.NoError(t, c.MarkRead(context.Background(), "a1", true))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/articles/a1/read", gotPath)

	require.NoError(t, c.MarkRead(context.Background(), "a1", false))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestSyncAllStreamsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/feeds/sync", r.URL.Path)
		w.Header().Set("Content-Type", "application/x-ndjson")

		flusher := w.(http.Flusher)
		io.WriteString(w, `{"type":"progress","feed":"f1"}`+"\n")
		flusher.Flush()
		io.WriteString(w, `{"type":"done"}`+"\n")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", log.NullLogger())
	body, err := c.SyncAll(context.Background())
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"progress","feed":"f1"}`+"\n"+`{"type":"done"}`+"\n", string(data))
}

func TestSyncAllUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad", log.NullLogger())
	_, err := c.SyncAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
}
