package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/odemir/studentbook/internal/app/workflow"
)

// ExpiredSessionStore drops sessions past their expiry and reports which ones
type ExpiredSessionStore interface {
	DeleteExpired(ctx context.Context) ([]string, error)
}

// SessionSweeper periodically removes expired session rows and announces a
// sign-out for each, so the workflow gate discards the consoles still bound
// to them. The auth middleware already rejects expired tokens; the sweep
// reclaims the server-side state those sessions left behind.
type SessionSweeper struct {
	sessions ExpiredSessionStore
	listener SessionListener
	interval time.Duration
	logger   zerolog.Logger
}

// NewSessionSweeper creates a sweeper over the session store
func NewSessionSweeper(sessions ExpiredSessionStore, listener SessionListener, interval time.Duration, logger zerolog.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &SessionSweeper{
		sessions: sessions,
		listener: listener,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on every tick until the context is canceled
func (s *SessionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs one pass over the session store
func (s *SessionSweeper) Sweep(ctx context.Context) {
	ids, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Expired session sweep failed")
		return
	}

	for _, id := range ids {
		s.listener.SessionChanged(ctx, workflow.SessionEvent{
			Kind:      workflow.SignedOut,
			SessionID: id,
		})
	}

	if len(ids) > 0 {
		s.logger.Info().Int("sessions", len(ids)).Msg("Expired sessions swept")
	}
}
