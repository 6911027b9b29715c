// Package sqlite provides a SQLite-backed game history store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iamasit07/connect4-classic/internal/domain"
	"github.com/iamasit07/connect4-classic/internal/repository/sqlite/migrations"
	"github.com/iamasit07/connect4-classic/internal/service/history"
	"github.com/iamasit07/connect4-classic/pkg/uid"
	_ "modernc.org/sqlite"
)

type HistoryStore struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the database file at path and applies the
// embedded migrations.
func Open(path string) (*HistoryStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// sqlite allows one writer at a time
	sqlDB.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &HistoryStore{sqlDB: sqlDB}, nil
}

func (s *HistoryStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *HistoryStore) Insert(ctx context.Context, rec domain.GameRecord) (domain.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.GameRecord{}, err
	}
	rec.ID = uid.NewRecordID()

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO games (id, winner, moves, played_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Winner, rec.Moves, toMillis(rec.Date),
	)
	if err != nil {
		return domain.GameRecord{}, fmt.Errorf("insert game: %w", err)
	}
	rec.Date = fromMillis(toMillis(rec.Date))
	return rec, nil
}

func (s *HistoryStore) List(ctx context.Context) ([]domain.GameRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, winner, moves, played_at FROM games ORDER BY played_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	games := []domain.GameRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}

func (s *HistoryStore) Get(ctx context.Context, id string) (domain.GameRecord, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, winner, moves, played_at FROM games WHERE id = ?`, id,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GameRecord{}, history.ErrRecordNotFound
	}
	return rec, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (domain.GameRecord, error) {
	var (
		rec      domain.GameRecord
		playedAt int64
	)
	if err := row.Scan(&rec.ID, &rec.Winner, &rec.Moves, &playedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.GameRecord{}, err
		}
		return domain.GameRecord{}, fmt.Errorf("scan game: %w", err)
	}
	rec.Date = fromMillis(playedAt)
	return rec, nil
}
