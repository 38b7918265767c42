package validation

import (
	"fmt"
	"regexp"
	"strings"

	"quiz-player/internal/domain"
	"quiz-player/internal/dto"
	"quiz-player/internal/util"
)

const (
	maxVideoIDLength = 100
	maxAnswerLength  = 1000
	// MaxPositionMs bounds reported positions to one day of video.
	MaxPositionMs = int64(24 * 60 * 60 * 1000)
)

var validVideoID = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSessionID validates a playback session ID
func (v *Validator) ValidateSessionID(sessionID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(sessionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !util.IsValidULID(sessionID) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", sessionID))
	}

	return errors
}

// ValidateVideoID validates a video ID (alphanumeric, dots, hyphens and
// underscores, 1-100 characters)
func (v *Validator) ValidateVideoID(videoID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(videoID) == "" {
		errors = append(errors, domain.NewMissingFieldError("video_id"))
		return errors
	}
	if len(videoID) > maxVideoIDLength || !validVideoID.MatchString(videoID) {
		errors = append(errors, domain.NewInvalidFormatError("video_id", videoID))
	}

	return errors
}

// ValidatePosition validates a reported playback position
func (v *Validator) ValidatePosition(positionMs int64) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if positionMs < 0 || positionMs > MaxPositionMs {
		errors = append(errors, domain.NewOutOfRangeError("position_ms", positionMs, 0, MaxPositionMs))
	}

	return errors
}

// ValidateAnswer validates the selected option. Any text, including the
// empty string, is a legal (possibly wrong) answer; only size is checked.
func (v *Validator) ValidateAnswer(answer string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(answer) > maxAnswerLength {
		errors = append(errors, domain.NewOutOfRangeError("answer", len(answer), 0, maxAnswerLength))
	}

	return errors
}

// ValidateScheduleRequest checks the shape of a schedule payload. Rules that
// span questions (duplicate timestamps, correct answer among the options) are
// enforced by the domain.
func (v *Validator) ValidateScheduleRequest(req *dto.ScheduleRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(req.Groups) == 0 {
		errors = append(errors, domain.NewMissingFieldError("groups"))
		return errors
	}

	for i, g := range req.Groups {
		prefix := fmt.Sprintf("groups[%d]", i)
		if g.DueAtMs < 0 || g.DueAtMs > MaxPositionMs {
			errors = append(errors, domain.NewOutOfRangeError(prefix+".due_at_ms", g.DueAtMs, 0, MaxPositionMs))
		}
		if len(g.Questions) == 0 {
			errors = append(errors, domain.NewMissingFieldError(prefix+".questions"))
			continue
		}
		for j, q := range g.Questions {
			qPrefix := fmt.Sprintf("%s.questions[%d]", prefix, j)
			if strings.TrimSpace(q.Text) == "" {
				errors = append(errors, domain.NewMissingFieldError(qPrefix+".text"))
			}
			if len(q.Options) == 0 {
				errors = append(errors, domain.NewMissingFieldError(qPrefix+".options"))
			}
			if q.CorrectAnswer == "" {
				errors = append(errors, domain.NewMissingFieldError(qPrefix+".correct_answer"))
			}
		}
	}

	return errors
}
