package memory

import (
	"context"
	"testing"
	"time"

	"github.com/iamasit07/connect4-classic/internal/domain"
	"github.com/iamasit07/connect4-classic/internal/service/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryStoreInsertAssignsIDs(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	a, err := store.Insert(ctx, domain.GameRecord{Winner: "Player 1", Moves: 7})
	require.NoError(t, err)
	b, err := store.Insert(ctx, domain.GameRecord{Winner: "Draw", Moves: 42})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)

	got, err := store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestHistoryStoreListMostRecentFirst(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	base := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

	_, _ = store.Insert(ctx, domain.GameRecord{Winner: "old", Moves: 1, Date: base})
	_, _ = store.Insert(ctx, domain.GameRecord{Winner: "newest", Moves: 1, Date: base.Add(2 * time.Hour)})
	_, _ = store.Insert(ctx, domain.GameRecord{Winner: "middle", Moves: 1, Date: base.Add(time.Hour)})
	_, _ = store.Insert(ctx, domain.GameRecord{Winner: "middle-later-insert", Moves: 1, Date: base.Add(time.Hour)})

	list, err := store.List(ctx)
	require.NoError(t, err)

	var winners []string
	for _, r := range list {
		winners = append(winners, r.Winner)
	}
	assert.Equal(t, []string{"newest", "middle-later-insert", "middle", "old"}, winners)
}

func TestHistoryStoreGetMissing(t *testing.T) {
	_, err := NewHistoryStore().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, history.ErrRecordNotFound)
}

func TestHistoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHistoryStore().Insert(ctx, domain.GameRecord{Winner: "Draw"})
	assert.ErrorIs(t, err, context.Canceled)
}
