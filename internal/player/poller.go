package player

import (
	"context"
	"time"

	"quiz-player/internal/domain"
	"quiz-player/internal/logger"

	"go.uber.org/zap"
)

// DefaultTickInterval matches the once-per-second position sampling of
// mobile players.
const DefaultTickInterval = time.Second

// Ticker is the part of a Session the poller drives.
type Ticker interface {
	Tick(ctx context.Context) (domain.Action, error)
}

// Poller samples the playback position of a session at a fixed interval.
type Poller struct {
	session  Ticker
	interval time.Duration
	onAction func(domain.Action)
}

// NewPoller creates a poller. A non-positive interval falls back to
// DefaultTickInterval.
func NewPoller(session Ticker, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Poller{session: session, interval: interval}
}

// OnAction registers a callback invoked with every action other than NoAction.
func (p *Poller) OnAction(fn func(domain.Action)) {
	p.onAction = fn
}

// Run ticks until ctx is cancelled. Tick errors are logged and polling
// continues; Run returns ctx.Err() on cancellation.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			action, err := p.session.Tick(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Get().Warn("Playback tick failed", zap.Error(err))
				continue
			}
			if action.Kind != domain.ActionNone && p.onAction != nil {
				p.onAction(action)
			}
		}
	}
}
