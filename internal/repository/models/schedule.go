package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON array in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// QuestionGroup is a row of question_groups.
type QuestionGroup struct {
	ID        string    `db:"id"`
	VideoID   string    `db:"video_id"`
	DueAtMs   int64     `db:"due_at_ms"`
	CreatedAt time.Time `db:"created_at"`
}

// Question is a row of questions.
type Question struct {
	ID            string      `db:"id"`
	GroupID       string      `db:"group_id"`
	Seq           int         `db:"seq"`
	QuestionText  string      `db:"question_text"`
	Options       StringSlice `db:"options"`
	CorrectAnswer string      `db:"correct_answer"`
}

// ScheduleRow is one question joined with its group.
type ScheduleRow struct {
	GroupID       string      `db:"group_id"`
	DueAtMs       int64       `db:"due_at_ms"`
	QuestionID    string      `db:"question_id"`
	Seq           int         `db:"seq"`
	QuestionText  string      `db:"question_text"`
	Options       StringSlice `db:"options"`
	CorrectAnswer string      `db:"correct_answer"`
}
