package dto

import "time"

// StartSessionRequest represents the request body for starting a playback session
// @Description Request body for starting a playback session
type StartSessionRequest struct {
	VideoID string `json:"video_id" example:"big-buck-bunny"`
}

// PositionRequest represents a playback position sample reported by the client
// @Description Playback position sample in milliseconds from the start of the video
type PositionRequest struct {
	PositionMs int64 `json:"position_ms" example:"10000"`
}

// AnswerRequest represents the option picked by the user
// @Description answer wins over answer_url (a js:<option> navigation); an empty selection is a wrong answer
type AnswerRequest struct {
	Answer    string `json:"answer,omitempty" example:"Paris"`
	AnswerURL string `json:"answer_url,omitempty" example:"js:Paris"`
}

// QuestionResponse is a question as the client may see it. The correct answer
// is never sent.
type QuestionResponse struct {
	ID      string   `json:"id,omitempty"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// ActionResponse tells the client what to render
// @Description Host action: none, show_question, show_feedback or resume_playback
type ActionResponse struct {
	Type        string            `json:"type" example:"show_question"`
	Question    *QuestionResponse `json:"question,omitempty"`
	WrongAnswer string            `json:"wrong_answer,omitempty"`
}

// PlaybackResponse is returned for every position sample and answer
// @Description Action to render and the playback state the client must apply
type PlaybackResponse struct {
	SessionID     string         `json:"session_id"`
	Action        ActionResponse `json:"action"`
	PlaybackState string         `json:"playback_state" example:"paused"`
}

// GroupProgressResponse is the progress of one question group
type GroupProgressResponse struct {
	DueAtMs       int64 `json:"due_at_ms"`
	Answered      int   `json:"answered"`
	QuestionCount int   `json:"question_count"`
}

// SessionResponse represents the state of a playback session
// @Description Playback session progress
type SessionResponse struct {
	SessionID      string                  `json:"session_id"`
	VideoID        string                  `json:"video_id"`
	PlaybackState  string                  `json:"playback_state"`
	ActiveQuestion *QuestionResponse       `json:"active_question,omitempty"`
	ActiveDueAtMs  *int64                  `json:"active_due_at_ms,omitempty"`
	Groups         []GroupProgressResponse `json:"groups"`
	Exhausted      bool                    `json:"exhausted"`
	LastSeen       time.Time               `json:"last_seen"`
}
