package domain

// ActionKind tells the host what to do after an engine call.
type ActionKind string

const (
	ActionNone           ActionKind = "none"
	ActionShowQuestion   ActionKind = "show_question"
	ActionShowFeedback   ActionKind = "show_feedback"
	ActionResumePlayback ActionKind = "resume_playback"
)

// Action is the engine's response to an input. Question is set for
// ActionShowQuestion and ActionShowFeedback; WrongAnswer only for
// ActionShowFeedback. ShowQuestion also means playback must be paused.
type Action struct {
	Kind        ActionKind
	Question    *Question
	WrongAnswer string
}

// NoAction is returned when nothing changes.
func NoAction() Action {
	return Action{Kind: ActionNone}
}

// ShowQuestion asks the host to pause playback and present q.
func ShowQuestion(q Question) Action {
	return Action{Kind: ActionShowQuestion, Question: &q}
}

// ShowFeedback asks the host to keep q on screen and flag the wrong answer.
func ShowFeedback(q Question, wrongAnswer string) Action {
	return Action{Kind: ActionShowFeedback, Question: &q, WrongAnswer: wrongAnswer}
}

// ResumePlayback asks the host to hide the questions and resume playback.
func ResumePlayback() Action {
	return Action{Kind: ActionResumePlayback}
}

// PausesPlayback reports whether the host must pause playback.
func (a Action) PausesPlayback() bool {
	return a.Kind == ActionShowQuestion
}
