package domain

import (
	"sync/atomic"
	"time"
)

// GroupProgress is a read-only view of one group's progress.
type GroupProgress struct {
	DueAt         time.Duration
	Answered      int
	QuestionCount int
}

// Progress is a read-only view of an engine's state.
type Progress struct {
	Groups      []GroupProgress
	ActiveDueAt *time.Duration
	Exhausted   bool
}

// QuestionSyncEngine decides which question must be on screen for a playback
// position and tracks the answers given to it. It does no I/O and owns no
// timers: callers feed it position samples and answers and execute the
// returned Action.
//
// The engine is single-writer. Calls must never overlap; an overlapping call
// fails with ErrConcurrentCall and leaves the state untouched.
type QuestionSyncEngine struct {
	schedule *Schedule
	active   *QuestionGroup
	busy     atomic.Bool
}

// NewQuestionSyncEngine validates the groups and returns an idle engine.
func NewQuestionSyncEngine(groups []QuestionGroup) (*QuestionSyncEngine, error) {
	schedule, err := NewSchedule(groups)
	if err != nil {
		return nil, err
	}
	return &QuestionSyncEngine{schedule: schedule}, nil
}

func (e *QuestionSyncEngine) enter() error {
	if !e.busy.CompareAndSwap(false, true) {
		return ErrConcurrentCall
	}
	return nil
}

func (e *QuestionSyncEngine) leave() {
	e.busy.Store(false)
}

// OnPositionTick handles one playback position sample. While a group is
// active it never interrupts it. Otherwise the earliest unfinished group due
// at or before position becomes active and its current question is returned.
func (e *QuestionSyncEngine) OnPositionTick(position time.Duration) (Action, error) {
	if err := e.enter(); err != nil {
		return NoAction(), err
	}
	defer e.leave()

	if e.active != nil {
		return NoAction(), nil
	}
	g := e.schedule.firstDue(position)
	if g == nil {
		return NoAction(), nil
	}
	e.active = g
	return ShowQuestion(g.Current().clone()), nil
}

// SubmitAnswer checks selected against the active question. A correct answer
// advances the group; the last one releases playback. A wrong answer keeps
// the same question active.
func (e *QuestionSyncEngine) SubmitAnswer(selected string) (Action, error) {
	if err := e.enter(); err != nil {
		return NoAction(), err
	}
	defer e.leave()

	if e.active == nil {
		return NoAction(), ErrNoActiveQuestion
	}
	g := e.active
	q := g.Current()
	if !q.IsCorrect(selected) {
		return ShowFeedback(q.clone(), selected), nil
	}

	g.AnsweredCount++
	if next := g.Current(); next != nil {
		return ShowQuestion(next.clone()), nil
	}
	e.active = nil
	return ResumePlayback(), nil
}

// ActiveQuestion returns the question on screen, if any.
func (e *QuestionSyncEngine) ActiveQuestion() (*Question, error) {
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.leave()

	if e.active == nil {
		return nil, nil
	}
	q := e.active.Current().clone()
	return &q, nil
}

// Progress returns a snapshot of every group's answered count.
func (e *QuestionSyncEngine) Progress() (Progress, error) {
	if err := e.enter(); err != nil {
		return Progress{}, err
	}
	defer e.leave()

	p := Progress{
		Groups:    make([]GroupProgress, 0, e.schedule.Len()),
		Exhausted: e.schedule.Exhausted(),
	}
	for _, g := range e.schedule.groups {
		p.Groups = append(p.Groups, GroupProgress{
			DueAt:         g.DueAt,
			Answered:      g.AnsweredCount,
			QuestionCount: len(g.Questions),
		})
	}
	if e.active != nil {
		dueAt := e.active.DueAt
		p.ActiveDueAt = &dueAt
	}
	return p, nil
}
