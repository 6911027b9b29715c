package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/iamasit07/connect4-classic/internal/domain"
	"github.com/iamasit07/connect4-classic/internal/service/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameDocumentRecord(t *testing.T) {
	doc := gameDocument{
		Winner: "Player 1",
		Moves:  13,
		Date:   time.Date(2026, time.May, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
	}

	rec := doc.record()
	assert.Len(t, rec.ID, 24)
	assert.Equal(t, "Player 1", rec.Winner)
	assert.Equal(t, 13, rec.Moves)
	assert.Equal(t, time.UTC, rec.Date.Location())
}

// Runs against a real server only when CONNECT4_TEST_MONGO_URI is set.
func TestHistoryStoreAgainstServer(t *testing.T) {
	uri := os.Getenv("CONNECT4_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("CONNECT4_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbName := fmt.Sprintf("connect4_test_%d", time.Now().UnixNano())
	store, err := Connect(ctx, uri, dbName)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.col.Database().Drop(context.Background())
		_ = store.Close(context.Background())
	})

	base := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	older, err := store.Insert(ctx, domain.GameRecord{Winner: "Player 2", Moves: 8, Date: base})
	require.NoError(t, err)
	newer, err := store.Insert(ctx, domain.GameRecord{Winner: domain.DrawLabel, Moves: 42, Date: base.Add(time.Hour)})
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	got, err := store.Get(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older, got)

	_, err = store.Get(ctx, "ffffffffffffffffffffffff")
	assert.ErrorIs(t, err, history.ErrRecordNotFound)
	_, err = store.Get(ctx, "bogus")
	assert.ErrorIs(t, err, history.ErrRecordNotFound)
}
