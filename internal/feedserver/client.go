package feedserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dmelton/quill/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Quill/1.0"
)

// Client implements domain.ArticleRepository, domain.ArticleStateRepository,
// domain.FeedRepository, and domain.SyncTrigger against the feed server's
// HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	// streamClient has no global timeout: the sync progress stream stays
	// open for the duration of a full server-side poll.
	streamClient *http.Client
	logger       *slog.Logger
}

// NewClient creates a new feed server API client
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		streamClient: &http.Client{},
		logger:       logger,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// doRequest performs an authenticated HTTP request and returns the body
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, reqBody io.Reader) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, query, reqBody)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("feed server request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("feed server request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrFeedNotFound
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return body, nil
	default:
		c.logger.Error("feed server request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

// ListArticles returns the authoritative article collection, optionally
// narrowed by filter.
func (c *Client) ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	query := url.Values{}
	if filter.FeedID != "" {
		query.Set("feed_id", filter.FeedID)
	}
	if filter.UnreadOnly {
		query.Set("unread", "true")
	}
	if filter.StarredOnly {
		query.Set("starred", "true")
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/api/articles", query, nil)
	if err != nil {
		return nil, err
	}

	var dtos []articleDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse articles: %w", err)
	}

	return MapArticles(dtos), nil
}

// MarkRead sets or clears the read flag of an article
func (c *Client) MarkRead(ctx context.Context, articleID string, read bool) error {
	path := fmt.Sprintf("/api/articles/%s/read", url.PathEscape(articleID))
	method := http.MethodPut
	if !read {
		method = http.MethodDelete
	}
	_, err := c.doRequest(ctx, method, path, nil, nil)
	return err
}

// SetStarred sets or clears the starred flag of an article
func (c *Client) SetStarred(ctx context.Context, articleID string, starred bool) error {
	path := fmt.Sprintf("/api/articles/%s/star", url.PathEscape(articleID))
	method := http.MethodPut
	if !starred {
		method = http.MethodDelete
	}
	_, err := c.doRequest(ctx, method, path, nil, nil)
	return err
}

// ListFeeds returns all subscribed feeds
func (c *Client) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/feeds", nil, nil)
	if err != nil {
		return nil, err
	}

	var dtos []feedDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse feeds: %w", err)
	}

	return MapFeeds(dtos), nil
}

// AddFeed subscribes the server to a new feed URL
func (c *Client) AddFeed(ctx context.Context, feedURL string) (*domain.Feed, error) {
	payload, err := json.Marshal(addFeedRequest{URL: feedURL})
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/feeds", nil, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var dto feedDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse created feed: %w", err)
	}

	feed := mapFeed(dto)
	return &feed, nil
}

// DeleteFeed unsubscribes a feed and removes its articles server-side
func (c *Client) DeleteFeed(ctx context.Context, feedID string) error {
	path := fmt.Sprintf("/api/feeds/%s", url.PathEscape(feedID))
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// RenameFeed updates a feed's display title
func (c *Client) RenameFeed(ctx context.Context, feedID, title string) error {
	payload, err := json.Marshal(renameFeedRequest{Title: title})
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/feeds/%s", url.PathEscape(feedID))
	_, err = c.doRequest(ctx, http.MethodPatch, path, nil, bytes.NewReader(payload))
	return err
}

// SyncAll asks the server to poll every subscribed feed. The returned body
// is a long-lived, newline-delimited stream of JSON progress events; the
// caller owns it and must close it.
func (c *Client) SyncAll(ctx context.Context) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/feeds/sync", nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/x-ndjson")

	c.logger.Debug("feed server request", "method", http.MethodPost, "path", "/api/feeds/sync")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		c.logger.Error("sync trigger failed", "error", err)
		return nil, domain.ErrServerOffline
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, domain.ErrAuthFailed
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		c.logger.Error("sync trigger error", "status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
