package in_mem

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/DjordjeVuckovic/word-importer/internal/domain"
)

// Upserter keeps words in a set. It backs dry runs and tests.
type Upserter struct {
	storageLock sync.RWMutex
	storage     map[domain.Word]struct{}
	calls       int
}

func NewUpserter() *Upserter {
	return &Upserter{
		storage: make(map[domain.Word]struct{}),
	}
}

func (s *Upserter) Upsert(ctx context.Context, words []domain.Word) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	s.calls++
	added := 0
	for _, w := range words {
		if _, ok := s.storage[w]; ok {
			continue
		}
		s.storage[w] = struct{}{}
		added++
	}

	slog.Debug("Words saved to in-memory storage", "count", len(words), "added", added)
	return nil
}

func (s *Upserter) Len() int {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	return len(s.storage)
}

func (s *Upserter) Contains(w domain.Word) bool {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	_, ok := s.storage[w]
	return ok
}

// Calls returns how many batches were received.
func (s *Upserter) Calls() int {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	return s.calls
}

// Words returns the stored words in sorted order.
func (s *Upserter) Words() []domain.Word {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	words := make([]domain.Word, 0, len(s.storage))
	for w := range s.storage {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

func (s *Upserter) Healthy(ctx context.Context) bool {
	return true
}

func (s *Upserter) Close() error {
	return nil
}
