package domain

import (
	"fmt"
	"sort"
	"time"
)

// Question is one multiple-choice item shown over the video.
type Question struct {
	ID            string   `json:"id,omitempty"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// clone returns a copy that shares no slices with q.
func (q Question) clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// Validate checks that the question can be answered.
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewInvalidScheduleError("question text is required")
	}
	if len(q.Options) == 0 {
		return NewInvalidScheduleError(fmt.Sprintf("question %q has no options", q.Text))
	}
	matches := 0
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			matches++
		}
	}
	if matches != 1 {
		return NewInvalidScheduleError(
			fmt.Sprintf("correct answer %q of question %q must appear exactly once in its options", q.CorrectAnswer, q.Text),
		).WithContext("question", q.Text)
	}
	return nil
}

// IsCorrect compares the selection with the correct answer. The comparison is
// exact and case-sensitive.
func (q *Question) IsCorrect(selected string) bool {
	return selected == q.CorrectAnswer
}

// QuestionGroup holds every question due at one playback timestamp. The
// questions are answered in order before playback resumes.
type QuestionGroup struct {
	ID            string        `json:"id,omitempty"`
	DueAt         time.Duration `json:"due_at"`
	Questions     []Question    `json:"questions"`
	AnsweredCount int           `json:"answered_count"`
}

// Done reports whether every question of the group has been answered.
func (g *QuestionGroup) Done() bool {
	return g.AnsweredCount >= len(g.Questions)
}

// Current returns the question awaiting an answer, or nil once the group is done.
func (g *QuestionGroup) Current() *Question {
	if g.Done() {
		return nil
	}
	return &g.Questions[g.AnsweredCount]
}

// Validate validates the group and all of its questions
func (g *QuestionGroup) Validate() error {
	if g.DueAt < 0 {
		return NewInvalidScheduleError(fmt.Sprintf("group due at %s is negative", g.DueAt))
	}
	if len(g.Questions) == 0 {
		return NewInvalidScheduleError(fmt.Sprintf("group due at %s has no questions", g.DueAt)).
			WithContext("due_at_ms", g.DueAt.Milliseconds())
	}
	for i := range g.Questions {
		if err := g.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Schedule is the set of question groups of one playback session, ordered by
// DueAt ascending. Only the answered counts change after construction.
type Schedule struct {
	groups []*QuestionGroup
}

// NewSchedule validates the groups and builds a schedule from deep copies of
// them, so the caller's slices are never mutated by playback.
func NewSchedule(groups []QuestionGroup) (*Schedule, error) {
	seen := make(map[time.Duration]struct{}, len(groups))
	copied := make([]*QuestionGroup, 0, len(groups))
	for i := range groups {
		g := groups[i]
		if err := g.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[g.DueAt]; dup {
			return nil, NewInvalidScheduleError(fmt.Sprintf("two groups share the timestamp %s", g.DueAt)).
				WithContext("due_at_ms", g.DueAt.Milliseconds())
		}
		seen[g.DueAt] = struct{}{}
		if g.AnsweredCount != 0 {
			return nil, NewInvalidScheduleError(fmt.Sprintf("group due at %s starts with answered questions", g.DueAt))
		}

		questions := make([]Question, len(g.Questions))
		for j, q := range g.Questions {
			questions[j] = q.clone()
		}
		copied = append(copied, &QuestionGroup{ID: g.ID, DueAt: g.DueAt, Questions: questions})
	}
	sort.Slice(copied, func(i, j int) bool { return copied[i].DueAt < copied[j].DueAt })
	return &Schedule{groups: copied}, nil
}

// Len returns the number of groups.
func (s *Schedule) Len() int {
	return len(s.groups)
}

// firstDue returns the earliest unfinished group whose timestamp has passed.
func (s *Schedule) firstDue(position time.Duration) *QuestionGroup {
	for _, g := range s.groups {
		if g.DueAt > position {
			return nil
		}
		if !g.Done() {
			return g
		}
	}
	return nil
}

// Exhausted reports whether every group has been answered.
func (s *Schedule) Exhausted() bool {
	for _, g := range s.groups {
		if !g.Done() {
			return false
		}
	}
	return true
}

// Groups returns copies of the groups in timestamp order.
func (s *Schedule) Groups() []QuestionGroup {
	out := make([]QuestionGroup, len(s.groups))
	for i, g := range s.groups {
		out[i] = *g
		out[i].Questions = make([]Question, len(g.Questions))
		for j, q := range g.Questions {
			out[i].Questions[j] = q.clone()
		}
	}
	return out
}
