package service

import (
	"context"
	"time"

	"dronedata/internal/logger"
	"dronedata/internal/repository"
)

// DefaultSweepInterval is used when no interval is configured.
const DefaultSweepInterval = 10 * time.Minute

// SweeperService removes expired sessions from the store.
type SweeperService struct {
	sessions repository.Sessions
	log      *logger.Logger
	now      func() time.Time
}

func NewSweeperService(sessions repository.Sessions, log *logger.Logger) *SweeperService {
	return &SweeperService{sessions: sessions, log: log, now: time.Now}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SweeperService) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		tick = DefaultSweepInterval
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

func (s *SweeperService) sweep(ctx context.Context) int64 {
	n, err := s.sessions.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		if s.log != nil && ctx.Err() == nil {
			s.log.Errorw("session_sweep_failed", "err", err)
		}
		return 0
	}
	if n > 0 && s.log != nil {
		s.log.Infow("session_sweep", "removed", n)
	}
	return n
}
