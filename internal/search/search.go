// Package search provides local fuzzy filtering over cached articles and
// feeds.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/dmelton/quill/internal/domain"
)

// FilterResult is one matched article with match metadata for highlighting.
type FilterResult struct {
	Article        domain.Article
	MatchedIndexes []int // Character positions that matched
	Score          int   // Match score (higher is better)
}

// articleIndex implements sahilm/fuzzy.Source for zero-allocation matching.
type articleIndex struct {
	articles    []domain.Article
	lowerTitles []string // Pre-computed lowercase titles
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *articleIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of articles (implements fuzzy.Source)
func (idx *articleIndex) Len() int { return len(idx.articles) }

// FilterArticles fuzzy-matches query against article titles and returns
// results best-first. An empty query matches nothing.
func FilterArticles(query string, articles []domain.Article) []FilterResult {
	query = strings.TrimSpace(query)
	if query == "" || len(articles) == 0 {
		return nil
	}

	idx := &articleIndex{
		articles:    articles,
		lowerTitles: make([]string, len(articles)),
	}
	for i, a := range articles {
		idx.lowerTitles[i] = strings.ToLower(a.Title)
	}

	matches := sahilm.FindFrom(strings.ToLower(query), idx)

	results := make([]FilterResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, FilterResult{
			Article:        articles[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		})
	}
	return results
}

// RankFeeds orders feeds by how well their titles match query, best first.
// Non-matching feeds are omitted; an empty query returns all feeds in their
// original order.
func RankFeeds(query string, feeds []domain.Feed) []domain.Feed {
	query = strings.TrimSpace(query)
	if query == "" {
		return feeds
	}

	titles := make([]string, len(feeds))
	for i, f := range feeds {
		titles[i] = f.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	matched := make([]domain.Feed, 0, len(ranks))
	for _, r := range ranks {
		matched = append(matched, feeds[r.OriginalIndex])
	}
	return matched
}
