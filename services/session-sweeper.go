package services

import (
	"feedback-server/usecases"
	"log"
	"time"
)

// SessionSweeper periodically deletes expired sessions so the sessions
// table does not grow without bound.
type SessionSweeper struct {
	sessions *usecases.SessionUseCase
	interval time.Duration
}

func NewSessionSweeper(sessions *usecases.SessionUseCase, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
	}
}

func (s *SessionSweeper) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		for range ticker.C {
			s.SweepOnce()
		}
	}()
}

func (s *SessionSweeper) SweepOnce() {
	removed, err := s.sessions.Sweep()
	if err != nil {
		log.Printf("Error sweeping expired sessions: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Removed %d expired sessions", removed)
	}
}
