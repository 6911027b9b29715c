package game

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4-classic/internal/domain"
	"github.com/iamasit07/connect4-classic/internal/service/bot"
	"github.com/iamasit07/connect4-classic/pkg/uid"
)

// HistoryRecorder persists finished games; history.Service implements it
type HistoryRecorder interface {
	Record(ctx context.Context, state domain.GameState) (domain.GameRecord, error)
}

// Broadcaster is told about every change to a match (the websocket hub)
type Broadcaster interface {
	BroadcastMatch(view MatchView)
	// CloseMatch is called once a match is removed
	CloseMatch(matchID string)
}

// MatchView is the json shape of a match sent to clients
type MatchView struct {
	MatchID       string            `json:"matchId"`
	Board         [][]int           `json:"board"`
	CurrentPlayer int               `json:"currentPlayer"`
	Status        domain.GameStatus `json:"status"`
	Winner        string            `json:"winner,omitempty"`
	WinningLine   []domain.Coord    `json:"winningLine"`
	MoveCount     int               `json:"moveCount"`
	IsOver        bool              `json:"isOver"`
	LastMove      *domain.Coord     `json:"lastMove,omitempty"`
	BotDifficulty string            `json:"botDifficulty,omitempty"`
	SaveStatus    SaveStatus        `json:"saveStatus"`
	RecordID      string            `json:"recordId,omitempty"`
}

// MatchSummary is one row of the watch list
type MatchSummary struct {
	MatchID       string            `json:"matchId"`
	Status        domain.GameStatus `json:"status"`
	MoveCount     int               `json:"moveCount"`
	BotDifficulty string            `json:"botDifficulty,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type Options struct {
	AutoSave bool
}

// SessionManager manages the live matches
type SessionManager struct {
	sessions map[string]*Match // matchID → Match
	mu       sync.RWMutex

	history     HistoryRecorder
	broadcaster Broadcaster
	autoSave    bool
	saves       sync.WaitGroup
	now         func() time.Time
}

func NewSessionManager(history HistoryRecorder, opts Options) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Match),
		history:  history,
		autoSave: opts.AutoSave,
		now:      time.Now,
	}
}

// SetBroadcaster must be called before matches are played
func (sm *SessionManager) SetBroadcaster(b Broadcaster) {
	sm.broadcaster = b
}

// CreateMatch starts a new match. An empty difficulty means hot-seat play.
func (sm *SessionManager) CreateMatch(difficulty bot.Difficulty) (*Match, error) {
	id, err := uid.GenerateMatchID()
	if err != nil {
		return nil, err
	}

	now := sm.now()
	match := &Match{
		ID:            id,
		BotDifficulty: difficulty,
		CreatedAt:     now,
		state:         domain.NewGame(),
		updatedAt:     now,
		saveStatus:    SaveNone,
		manager:       sm,
	}

	sm.mu.Lock()
	sm.sessions[id] = match
	sm.mu.Unlock()

	opponent := "hot-seat"
	if difficulty != "" {
		opponent = "bot (" + string(difficulty) + ")"
	}
	log.Printf("[SESSION] Created match %s: %s", id, opponent)
	return match, nil
}

func (sm *SessionManager) GetMatch(matchID string) (*Match, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	match, exists := sm.sessions[matchID]
	if !exists {
		return nil, ErrMatchNotFound
	}
	return match, nil
}

// RemoveMatch ends the match and disconnects everyone watching it
func (sm *SessionManager) RemoveMatch(matchID string) error {
	sm.mu.Lock()
	match, exists := sm.sessions[matchID]
	if !exists {
		sm.mu.Unlock()
		return ErrMatchNotFound
	}
	delete(sm.sessions, matchID)
	sm.mu.Unlock()

	log.Printf("[SESSION] Removing match %s", matchID)
	sm.endMatch(match)
	return nil
}

// ActiveMatches lists every live match, most recently updated first
func (sm *SessionManager) ActiveMatches() []MatchSummary {
	sm.mu.RLock()
	matches := make([]*Match, 0, len(sm.sessions))
	for _, m := range sm.sessions {
		matches = append(matches, m)
	}
	sm.mu.RUnlock()

	summaries := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		m.mu.Lock()
		summaries = append(summaries, MatchSummary{
			MatchID:       m.ID,
			Status:        m.state.Status(),
			MoveCount:     m.state.MoveCount(),
			BotDifficulty: string(m.BotDifficulty),
			CreatedAt:     m.CreatedAt,
			UpdatedAt:     m.updatedAt,
		})
		m.mu.Unlock()
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].UpdatedAt.Equal(summaries[j].UpdatedAt) {
			return summaries[i].MatchID < summaries[j].MatchID
		}
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries
}

// CleanupOldSessions drops finished matches older than finishedTTL and
// unfinished ones idle for longer than staleTTL. Returns how many were removed.
func (sm *SessionManager) CleanupOldSessions(finishedTTL, staleTTL time.Duration) int {
	sm.mu.Lock()

	var removed []*Match
	now := sm.now()

	for matchID, m := range sm.sessions {
		m.mu.Lock()
		expired := false
		if m.state.IsOver() {
			expired = now.Sub(m.finishedAt) > finishedTTL
		} else {
			expired = now.Sub(m.updatedAt) > staleTTL
		}
		m.mu.Unlock()

		if expired {
			delete(sm.sessions, matchID)
			removed = append(removed, m)
		}
	}
	sm.mu.Unlock()

	for _, m := range removed {
		sm.endMatch(m)
	}
	if len(removed) > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale matches", len(removed))
	}
	return len(removed)
}

// Wait blocks until every pending auto-save has finished
func (sm *SessionManager) Wait() {
	sm.saves.Wait()
}

func (sm *SessionManager) endMatch(m *Match) {
	m.end()
	if sm.broadcaster != nil {
		sm.broadcaster.CloseMatch(m.ID)
	}
}

func (sm *SessionManager) broadcast(view MatchView) {
	if sm.broadcaster != nil {
		sm.broadcaster.BroadcastMatch(view)
	}
}
