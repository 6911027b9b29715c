package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iamasit07/connect4-classic/internal/domain"
	"github.com/iamasit07/connect4-classic/internal/service/history"
	"github.com/iamasit07/connect4-classic/pkg/uid"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// Insert saves a finished game and returns it with its generated id
func (r *GameRepo) Insert(ctx context.Context, rec domain.GameRecord) (domain.GameRecord, error) {
	rec.ID = uid.NewRecordID()

	query := `
	INSERT INTO game (game_id, winner, total_moves, finished_at)
	VALUES ($1, $2, $3, $4)
	RETURNING finished_at;
	`
	err := r.DB.QueryRowContext(ctx, query, rec.ID, rec.Winner, rec.Moves, rec.Date.UTC()).Scan(&rec.Date)
	if err != nil {
		return domain.GameRecord{}, fmt.Errorf("failed to insert game record: %w", err)
	}
	rec.Date = rec.Date.UTC()
	return rec, nil
}

// List returns every saved game, most recent first. Games finished at the
// same instant come newest insert first.
func (r *GameRepo) List(ctx context.Context) ([]domain.GameRecord, error) {
	query := `
	SELECT game_id, winner, total_moves, finished_at
	FROM game
	ORDER BY finished_at DESC, seq DESC;
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	games := []domain.GameRecord{}
	for rows.Next() {
		var rec domain.GameRecord
		if err := rows.Scan(&rec.ID, &rec.Winner, &rec.Moves, &rec.Date); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		rec.Date = rec.Date.UTC()
		games = append(games, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game rows: %w", err)
	}
	return games, nil
}

// Get retrieves one game by id
func (r *GameRepo) Get(ctx context.Context, id string) (domain.GameRecord, error) {
	if !uid.IsRecordID(id) {
		return domain.GameRecord{}, history.ErrRecordNotFound
	}

	query := `
	SELECT game_id, winner, total_moves, finished_at
	FROM game
	WHERE game_id = $1;
	`

	var rec domain.GameRecord
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&rec.ID, &rec.Winner, &rec.Moves, &rec.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GameRecord{}, history.ErrRecordNotFound
	}
	if err != nil {
		return domain.GameRecord{}, fmt.Errorf("failed to get game by ID: %w", err)
	}
	rec.Date = rec.Date.UTC()
	return rec, nil
}
