package dto

// ScheduleQuestion is one question of a schedule as stored by administrators
type ScheduleQuestion struct {
	ID            string   `json:"id,omitempty"`
	Text          string   `json:"text" example:"What is the capital of France?"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer" example:"Paris"`
}

// ScheduleGroup is the set of questions due at one timestamp
type ScheduleGroup struct {
	ID        string             `json:"id,omitempty"`
	DueAtMs   int64              `json:"due_at_ms" example:"10000"`
	Questions []ScheduleQuestion `json:"questions"`
}

// ScheduleRequest represents the request body for replacing a video's schedule
// @Description Full question schedule of a video
type ScheduleRequest struct {
	Groups []ScheduleGroup `json:"groups"`
}

// ScheduleResponse represents the stored schedule of a video
// @Description Question schedule of a video ordered by timestamp
type ScheduleResponse struct {
	VideoID string          `json:"video_id"`
	Groups  []ScheduleGroup `json:"groups"`
}
