package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the feed server is unreachable
	ErrServerOffline = errors.New("feed server is unreachable")

	// ErrAuthFailed indicates the API token was rejected
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrFeedNotFound indicates the requested feed does not exist
	ErrFeedNotFound = errors.New("feed not found")

	// ErrArticleNotFound indicates the requested article does not exist
	ErrArticleNotFound = errors.New("article not found")
)
