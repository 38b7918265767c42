package player

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"quiz-player/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedTicker struct {
	calls   atomic.Int32
	actions []domain.Action
	err     error
}

func (s *scriptedTicker) Tick(context.Context) (domain.Action, error) {
	n := int(s.calls.Add(1)) - 1
	if s.err != nil {
		return domain.NoAction(), s.err
	}
	if n < len(s.actions) {
		return s.actions[n], nil
	}
	return domain.NoAction(), nil
}

func TestPoller_ReportsActions(t *testing.T) {
	q := domain.Question{Text: "q", Options: []string{"a"}, CorrectAnswer: "a"}
	ticker := &scriptedTicker{actions: []domain.Action{domain.NoAction(), domain.ShowQuestion(q)}}
	poller := NewPoller(ticker, 5*time.Millisecond)

	got := make(chan domain.Action, 1)
	poller.OnAction(func(a domain.Action) { got <- a })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	select {
	case a := <-got:
		assert.Equal(t, domain.ActionShowQuestion, a.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("no action reported")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestPoller_KeepsPollingAfterErrors(t *testing.T) {
	ticker := &scriptedTicker{err: errors.New("position unavailable")}
	poller := NewPoller(ticker, 2*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := poller.Run(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, ticker.calls.Load(), int32(1))
}

func TestNewPoller_DefaultInterval(t *testing.T) {
	p := NewPoller(&scriptedTicker{}, 0)
	require.NotNil(t, p)
	assert.Equal(t, DefaultTickInterval, p.interval)
}
