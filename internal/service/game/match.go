package game

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-classic/internal/domain"
	"github.com/iamasit07/connect4-classic/internal/service/bot"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrAlreadySaved     = errors.New("game already saved")
	ErrSaveInProgress   = errors.New("game is being saved")
	ErrNotYourTurn      = errors.New("waiting for the bot to move")
	ErrNoHistoryService = errors.New("history is not configured")
)

type SaveStatus string

const (
	SaveNone    SaveStatus = "unsaved"
	SaveRunning SaveStatus = "saving"
	SaveDone    SaveStatus = "saved"
	SaveFailed  SaveStatus = "failed"
)

// Match is one board being played, either hot-seat (two humans on one
// client) or against the bot, which always plays Player Two.
type Match struct {
	ID            string
	BotDifficulty bot.Difficulty // empty for hot-seat
	CreatedAt     time.Time

	mu         sync.Mutex
	state      domain.GameState
	lastMove   *domain.Coord
	updatedAt  time.Time
	finishedAt time.Time
	round      int // bumped by Reset so a late save cannot mark the new game
	saveStatus SaveStatus
	savedRec   *domain.GameRecord
	ended      bool // set once the match is removed from its manager

	manager *SessionManager
}

func (m *Match) IsBot() bool {
	return m.BotDifficulty != ""
}

// State returns the current immutable game state
func (m *Match) State() domain.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Ended reports whether the match was removed; an ended match rejects every change
func (m *Match) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ended
}

func (m *Match) end() {
	m.mu.Lock()
	m.ended = true
	m.mu.Unlock()
}

func (m *Match) View() MatchView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewLocked()
}

// Move drops the current player's disc in column. Against the bot the reply
// is played before Move returns. Rejected moves leave the match unchanged.
func (m *Match) Move(column int) (MatchView, error) {
	m.mu.Lock()

	if m.ended {
		m.mu.Unlock()
		return MatchView{}, ErrMatchNotFound
	}
	if m.IsBot() && !m.state.IsOver() && m.state.CurrentPlayer() != domain.PlayerOne {
		m.mu.Unlock()
		return MatchView{}, ErrNotYourTurn
	}

	if err := m.applyLocked(column); err != nil {
		m.mu.Unlock()
		return MatchView{}, err
	}

	if m.IsBot() && !m.state.IsOver() {
		botColumn := bot.CalculateBestMove(m.state.Board(), domain.PlayerTwo, m.BotDifficulty)
		if err := m.applyLocked(botColumn); err != nil {
			// unreachable: the bot picks from ValidMoves
			log.Printf("[GAME] Bot move %d rejected in match %s: %v", botColumn, m.ID, err)
		} else {
			log.Printf("[GAME] Bot (%s) played column %d in match %s", m.BotDifficulty, botColumn, m.ID)
		}
	}

	autoSave := m.state.IsOver() && m.manager.autoSave && m.saveStatus == SaveNone
	if autoSave {
		m.saveStatus = SaveRunning
	}
	round := m.round
	state := m.state
	view := m.viewLocked()
	m.mu.Unlock()

	if autoSave {
		m.saveGameAsync(state, round)
	}
	m.manager.broadcast(view)
	return view, nil
}

// applyLocked runs one transition, caller must hold m.mu
func (m *Match) applyLocked(column int) error {
	next, row, err := domain.TryMove(m.state, column)
	if err != nil {
		return err
	}

	m.state = next
	m.lastMove = &domain.Coord{Row: row, Col: column}
	m.updatedAt = m.manager.now()
	if next.IsOver() {
		m.finishedAt = m.updatedAt
		log.Printf("[GAME] Match %s finished: %s after %d moves", m.ID, domain.WinnerLabel(next), next.MoveCount())
	}
	return nil
}

// Reset starts a fresh game in the same match
func (m *Match) Reset() (MatchView, error) {
	m.mu.Lock()
	if m.ended {
		m.mu.Unlock()
		return MatchView{}, ErrMatchNotFound
	}
	m.state = m.state.Reset()
	m.lastMove = nil
	m.updatedAt = m.manager.now()
	m.finishedAt = time.Time{}
	m.round++
	m.saveStatus = SaveNone
	m.savedRec = nil
	view := m.viewLocked()
	m.mu.Unlock()

	log.Printf("[GAME] Match %s reset", m.ID)
	m.manager.broadcast(view)
	return view, nil
}

// Save submits the finished game to the history. It succeeds at most once
// per game; after a failure it may be retried.
func (m *Match) Save(ctx context.Context) (domain.GameRecord, error) {
	m.mu.Lock()
	if m.ended {
		m.mu.Unlock()
		return domain.GameRecord{}, ErrMatchNotFound
	}
	if !m.state.IsOver() {
		m.mu.Unlock()
		return domain.GameRecord{}, domain.ErrGameNotOver
	}
	switch m.saveStatus {
	case SaveDone:
		m.mu.Unlock()
		return domain.GameRecord{}, ErrAlreadySaved
	case SaveRunning:
		m.mu.Unlock()
		return domain.GameRecord{}, ErrSaveInProgress
	}
	m.saveStatus = SaveRunning
	state, round := m.state, m.round
	m.mu.Unlock()

	rec, err := m.recordGame(ctx, state, round)
	m.manager.broadcast(m.View())
	return rec, err
}

func (m *Match) saveGameAsync(state domain.GameState, round int) {
	m.manager.saves.Add(1)
	go func() {
		defer m.manager.saves.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := m.recordGame(ctx, state, round); err != nil {
			log.Printf("[GAME] Error saving match %s: %v", m.ID, err)
		}
		m.manager.broadcast(m.View())
	}()
}

// recordGame sends state to the history and stores the outcome if the match is
// still on the same round
func (m *Match) recordGame(ctx context.Context, state domain.GameState, round int) (domain.GameRecord, error) {
	var (
		rec domain.GameRecord
		err error
	)
	if m.manager.history == nil {
		err = ErrNoHistoryService
	} else {
		rec, err = m.manager.history.Record(ctx, state)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.round != round {
		return rec, err
	}
	if err != nil {
		m.saveStatus = SaveFailed
		return domain.GameRecord{}, err
	}
	m.saveStatus = SaveDone
	m.savedRec = &rec
	log.Printf("[GAME] Match %s saved as game %s", m.ID, rec.ID)
	return rec, nil
}

func (m *Match) viewLocked() MatchView {
	s := m.state
	view := MatchView{
		MatchID:       m.ID,
		Board:         s.Board().Ints(),
		CurrentPlayer: int(s.CurrentPlayer()),
		Status:        s.Status(),
		WinningLine:   s.WinningLine(),
		MoveCount:     s.MoveCount(),
		IsOver:        s.IsOver(),
		BotDifficulty: string(m.BotDifficulty),
		SaveStatus:    m.saveStatus,
		LastMove:      m.lastMove,
	}
	if s.IsOver() {
		view.Winner = domain.WinnerLabel(s)
	}
	if view.WinningLine == nil {
		view.WinningLine = []domain.Coord{}
	}
	if m.savedRec != nil {
		view.RecordID = m.savedRec.ID
	}
	return view
}
