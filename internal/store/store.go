package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gifgrid/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSession = []byte("session")
	bucketHistory = []byte("history")
)

// Keys
const (
	keyHref   = "href"
	keyRecent = "recent"
)

// DefaultHistorySize caps the recent-term list when none is configured
const DefaultHistorySize = 50

// Store persists the session link and recent search terms using BoltDB.
// Search results are never stored.
type Store struct {
	db     *bolt.DB
	mu     sync.RWMutex // Protects memory cache
	logger *slog.Logger

	historySize int

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// Open opens the store under dir. An empty dir runs in memory only.
func Open(dir string, historySize int, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if historySize < 1 {
		historySize = DefaultHistorySize
	}
	s := &Store{
		logger:      logger,
		historySize: historySize,
		cache:       make(map[string][]byte),
	}
	if dir == "" {
		return s, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "gifgrid.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketHistory} {
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

	s.db = db
	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Persistent reports whether writes survive the process
func (s *Store) Persistent() bool {
	return s.db != nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

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

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) error {
	s.mu.Lock()
	delete(s.cache, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			return b.Delete([]byte(key))
		}
		return nil
	})
}

// === Session ===

// Href returns the saved session link, or "" when none was saved
func (s *Store) Href() string {
	var href string
	s.get(bucketSession, keyHref, &href)
	return href
}

// SetHref saves the session link
func (s *Store) SetHref(href string) error {
	return s.set(bucketSession, keyHref, href)
}

// Location returns a domain.Location backed by the session link
func (s *Store) Location() domain.Location {
	return &location{store: s}
}

type location struct {
	store *Store
}

func (l *location) Href() string {
	return l.store.Href()
}

func (l *location) Replace(href string) {
	if err := l.store.SetHref(href); err != nil {
		l.store.logger.Warn("failed to save session link", "error", err)
	}
}

// === History ===

// RecentTerms returns committed search terms, most recent first
func (s *Store) RecentTerms() []string {
	var terms []string
	s.get(bucketHistory, keyRecent, &terms)
	return terms
}

// AddRecentTerm moves term to the front of the history. Case-insensitive
// duplicates are collapsed and the list is capped at the history size.
func (s *Store) AddRecentTerm(term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	existing := s.RecentTerms()
	terms := make([]string, 0, len(existing)+1)
	terms = append(terms, term)
	for _, t := range existing {
		if strings.EqualFold(t, term) {
			continue
		}
		terms = append(terms, t)
	}
	if len(terms) > s.historySize {
		terms = terms[:s.historySize]
	}
	return s.set(bucketHistory, keyRecent, terms)
}

// ClearHistory forgets all recent terms
func (s *Store) ClearHistory() error {
	return s.delete(bucketHistory, keyRecent)
}

// Reset wipes the session link and history
func (s *Store) Reset() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketHistory} {
			if err := tx.DeleteBucket(bucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}

var (
	_ domain.HistoryStore = (*Store)(nil)
	_ domain.Location     = (*location)(nil)
)
