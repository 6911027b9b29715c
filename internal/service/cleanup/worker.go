package cleanup

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/iamasit07/connect4-classic/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	Interval       time.Duration
	FinishedTTL    time.Duration
	StaleTTL       time.Duration

	sched gocron.Scheduler
}

func NewWorker(sm *game.SessionManager, interval, finishedTTL, staleTTL time.Duration) *Worker {
	return &Worker{
		SessionManager: sm,
		Interval:       interval,
		FinishedTTL:    finishedTTL,
		StaleTTL:       staleTTL,
	}
}

// Start runs the cleanup once right away, then every Interval
func (w *Worker) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.Interval),
		gocron.NewTask(func() { w.RunOnce() }),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("schedule cleanup: %w", err)
	}

	sched.Start()
	w.sched = sched
	log.Printf("[CLEANUP] Background worker started (every %s)", w.Interval)
	return nil
}

func (w *Worker) Stop() error {
	if w.sched == nil {
		return nil
	}
	return w.sched.Shutdown()
}

// RunOnce executes the actual cleanup logic and returns how many matches were dropped
func (w *Worker) RunOnce() int {
	removed := w.SessionManager.CleanupOldSessions(w.FinishedTTL, w.StaleTTL)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d expired matches", removed)
	}
	return removed
}
