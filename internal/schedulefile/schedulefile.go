// Package schedulefile reads question schedules written by hand as YAML.
package schedulefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"quiz-player/internal/domain"

	"gopkg.in/yaml.v3"
)

// File is the on-disk schedule of one video.
//
//	video_id: bunny
//	groups:
//	  - due_at: 10s
//	    questions:
//	      - text: What is the capital of France?
//	        options: [Paris, London, Berlin, Madrid]
//	        answer: Paris
type File struct {
	VideoID string  `yaml:"video_id"`
	Groups  []Group `yaml:"groups"`
}

type Group struct {
	DueAt     string     `yaml:"due_at"`
	Questions []Question `yaml:"questions"`
}

type Question struct {
	Text    string   `yaml:"text"`
	Options []string `yaml:"options"`
	Answer  string   `yaml:"answer"`
}

// Load reads and parses the file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read schedule file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a single YAML document. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("parse schedule: empty document")
		}
		return File{}, fmt.Errorf("parse schedule: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return File{}, fmt.Errorf("parse schedule: multiple YAML documents are not supported")
		}
		return File{}, fmt.Errorf("parse schedule: %w", err)
	}
	f.VideoID = strings.TrimSpace(f.VideoID)
	return f, nil
}

// ParseDueAt accepts Go durations ("1m30s") and bare seconds ("90").
// Schedules are stored with millisecond precision, so finer values are
// rejected rather than silently merged with a neighbouring group.
func ParseDueAt(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("due_at is required")
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		d, err = time.ParseDuration(s + "s")
		if err != nil {
			return 0, fmt.Errorf("invalid due_at %q", s)
		}
	}
	if d%time.Millisecond != 0 {
		return 0, fmt.Errorf("due_at %q is finer than one millisecond", s)
	}
	return d, nil
}

// QuestionGroups converts the file into domain groups. The groups are not
// validated here; domain.NewSchedule does that.
func (f File) QuestionGroups() ([]domain.QuestionGroup, error) {
	groups := make([]domain.QuestionGroup, 0, len(f.Groups))
	for i, g := range f.Groups {
		dueAt, err := ParseDueAt(g.DueAt)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		questions := make([]domain.Question, 0, len(g.Questions))
		for _, q := range g.Questions {
			questions = append(questions, domain.Question{
				Text:          q.Text,
				Options:       append([]string(nil), q.Options...),
				CorrectAnswer: q.Answer,
			})
		}
		groups = append(groups, domain.QuestionGroup{DueAt: dueAt, Questions: questions})
	}
	return groups, nil
}
