// Package memory keeps the game history in process memory. It is the default
// backend for local play and the store used by most service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iamasit07/connect4-classic/internal/domain"
	"github.com/iamasit07/connect4-classic/internal/service/history"
	"github.com/iamasit07/connect4-classic/pkg/uid"
)

type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.GameRecord
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

func (s *HistoryStore) Insert(ctx context.Context, rec domain.GameRecord) (domain.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.GameRecord{}, err
	}

	rec.ID = uid.NewRecordID()

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()

	return rec, nil
}

func (s *HistoryStore) List(ctx context.Context) ([]domain.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]domain.GameRecord, len(s.records))
	copy(out, s.records)
	s.mu.RUnlock()

	// newest first; records saved within the same instant keep reverse insertion order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *HistoryStore) Get(ctx context.Context, id string) (domain.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.GameRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return domain.GameRecord{}, history.ErrRecordNotFound
}
