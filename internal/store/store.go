package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/dmelton/quill/internal/domain"
)

// Bucket names
var (
	bucketArticles = []byte("articles")
	bucketFeeds    = []byte("feeds")
	bucketMeta     = []byte("meta")
)

// ArticleStore implements domain.Store using BoltDB with an in-memory
// promotion layer for hot-path reads.
type ArticleStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
}

// NewArticleStore opens (or creates) the cache database under baseCacheDir,
// keyed by server URL so switching servers never mixes collections. An
// empty baseCacheDir selects memory-only mode (no persistence).
func NewArticleStore(baseCacheDir, serverURL string) (*ArticleStore, error) {
	if baseCacheDir == "" {
		return &ArticleStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "quill.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketArticles, bucketFeeds, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ArticleStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *ArticleStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *ArticleStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *ArticleStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// === Articles ===

func (s *ArticleStore) GetArticles() ([]domain.Article, bool) {
	var articles []domain.Article
	ok := s.get(bucketArticles, "list", &articles)
	return articles, ok
}

func (s *ArticleStore) SaveArticles(articles []domain.Article) error {
	return s.set(bucketArticles, "list", articles)
}

// === Feeds ===

func (s *ArticleStore) GetFeeds() ([]domain.Feed, bool) {
	var feeds []domain.Feed
	ok := s.get(bucketFeeds, "list", &feeds)
	return feeds, ok
}

func (s *ArticleStore) SaveFeeds(feeds []domain.Feed) error {
	return s.set(bucketFeeds, "list", feeds)
}

// === Sync bookkeeping ===

func (s *ArticleStore) LastSyncedAt() (int64, bool) {
	var ts int64
	ok := s.get(bucketMeta, "last_synced_at", &ts)
	return ts, ok
}

func (s *ArticleStore) SetLastSyncedAt(ts int64) error {
	return s.set(bucketMeta, "last_synced_at", ts)
}

// === Invalidation ===

func (s *ArticleStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketArticles, bucketFeeds, bucketMeta} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
