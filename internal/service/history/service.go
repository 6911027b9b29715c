package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-classic/internal/domain"
)

const listCacheKey = "history:games"

var ErrRecordNotFound = errors.New("game record not found")

// Store is implemented by every history backend (memory, sqlite, postgres, mongo).
// List returns records most recent first.
type Store interface {
	Insert(ctx context.Context, rec domain.GameRecord) (domain.GameRecord, error)
	List(ctx context.Context) ([]domain.GameRecord, error)
	Get(ctx context.Context, id string) (domain.GameRecord, error)
}

// CacheRepository is the optional read cache in front of List
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// SinkError is returned when a finished game could not be persisted.
// The game itself is unaffected; retrying is up to the caller.
type SinkError struct {
	Op  string
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("history %s: %v", e.Op, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

type Service struct {
	store    Store
	cache    CacheRepository
	cacheTTL time.Duration
	now      func() time.Time

	// cacheMu orders list writes against invalidation; cacheGen is bumped on
	// every invalidation so a list read before a submit is never cached after it
	cacheMu  sync.Mutex
	cacheGen uint64
}

// NewService wires a store and an optional cache (nil disables caching)
func NewService(store Store, cache CacheRepository, cacheTTL time.Duration) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Submit persists a finished-game summary and returns it with its store id.
func (s *Service) Submit(ctx context.Context, rec domain.GameRecord) (domain.GameRecord, error) {
	if err := rec.Validate(); err != nil {
		return domain.GameRecord{}, err
	}
	if rec.Date.IsZero() {
		rec.Date = s.now()
	}
	rec.Date = rec.Date.UTC()
	rec.ID = ""

	stored, err := s.store.Insert(ctx, rec)
	if err != nil {
		log.Printf("[HISTORY] Error saving game (%s, %d moves): %v", rec.Winner, rec.Moves, err)
		return domain.GameRecord{}, &SinkError{Op: "submit", Err: err}
	}

	s.invalidate(ctx)
	log.Printf("[HISTORY] Game %s saved successfully (%s, %d moves)", stored.ID, stored.Winner, stored.Moves)
	return stored, nil
}

// Record builds the summary of a terminal state and submits it
func (s *Service) Record(ctx context.Context, state domain.GameState) (domain.GameRecord, error) {
	rec, err := domain.NewRecord(state, s.now())
	if err != nil {
		return domain.GameRecord{}, err
	}
	return s.Submit(ctx, rec)
}

// ListAll returns every saved game, most recent first
func (s *Service) ListAll(ctx context.Context) ([]domain.GameRecord, error) {
	if cached, ok := s.cachedList(ctx); ok {
		return cached, nil
	}

	gen := s.cacheGeneration()
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	if records == nil {
		records = []domain.GameRecord{}
	}

	s.storeList(ctx, records, gen)
	return records, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.GameRecord, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return domain.GameRecord{}, err
		}
		return domain.GameRecord{}, fmt.Errorf("get game %s: %w", id, err)
	}
	return rec, nil
}

// cache failures are logged and otherwise ignored, the store stays the source of truth

func (s *Service) cachedList(ctx context.Context) ([]domain.GameRecord, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, listCacheKey)
	if err != nil || raw == "" {
		return nil, false
	}
	var records []domain.GameRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("[HISTORY] Dropping unreadable cache entry: %v", err)
		_ = s.cache.Del(ctx, listCacheKey)
		return nil, false
	}
	return records, true
}

func (s *Service) cacheGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.cacheGen
}

// storeList caches records unless the list was invalidated since gen was read
func (s *Service) storeList(ctx context.Context, records []domain.GameRecord, gen uint64) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(records)
	if err != nil {
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheGen != gen {
		return
	}
	if err := s.cache.Set(ctx, listCacheKey, string(data), s.cacheTTL); err != nil {
		log.Printf("[HISTORY] Warning: could not cache game list: %v", err)
	}
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cacheGen++
	if err := s.cache.Del(ctx, listCacheKey); err != nil {
		log.Printf("[HISTORY] Warning: could not invalidate game list cache: %v", err)
	}
}
