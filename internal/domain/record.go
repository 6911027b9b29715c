package domain

import (
	"strings"
	"time"
)

const DrawLabel = "Draw"

// GameRecord is the summary of a finished game kept in the history.
// ID is assigned by whichever store persisted it.
type GameRecord struct {
	ID     string    `json:"id"`
	Winner string    `json:"winner"`
	Moves  int       `json:"moves"`
	Date   time.Time `json:"date"`
}

// WinnerLabel is "Draw" or the winning player's name
func WinnerLabel(s GameState) string {
	if p, ok := s.Winner(); ok {
		return p.String()
	}
	return DrawLabel
}

// NewRecord summarises a terminal state. Unfinished games cannot be recorded.
func NewRecord(s GameState, at time.Time) (GameRecord, error) {
	if !s.IsOver() {
		return GameRecord{}, ErrGameNotOver
	}
	return GameRecord{
		Winner: WinnerLabel(s),
		Moves:  s.MoveCount(),
		Date:   at.UTC(),
	}, nil
}

// Validate checks a record submitted from outside the engine
func (r GameRecord) Validate() error {
	if strings.TrimSpace(r.Winner) == "" {
		return ErrInvalidRecord
	}
	if r.Moves < 0 || r.Moves > Rows*Columns {
		return ErrInvalidRecord
	}
	return nil
}
