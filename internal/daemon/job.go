package daemon

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ananyev/kithwatch/internal/model"
)

// Job is one assessment request dropped into the inbox as a JSON file.
type Job struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	CalendarToken  string          `json:"calendar_token,omitempty"`
	ListeningToken string          `json:"listening_token,omitempty"`
	Baseline       *model.Baseline `json:"baseline,omitempty"`
	Interests      []string        `json:"interests,omitempty"`
	Location       string          `json:"location,omitempty"`
	UserMessage    string          `json:"user_message,omitempty"`
}

// LoadJob reads and validates a job file.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job: %w", err)
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parse job: %w", err)
	}
	if job.UserID == "" {
		return nil, fmt.Errorf("job missing user_id")
	}
	return &job, nil
}

// ResultStatus marks a processed job's outcome.
type ResultStatus string

const (
	ResultDone   ResultStatus = "done"
	ResultFailed ResultStatus = "failed"
)

// Result is the outbox payload for one processed job.
type Result struct {
	ID           string                 `json:"id"`
	Status       ResultStatus           `json:"status"`
	Detection    *model.DetectionResult `json:"detection,omitempty"`
	Intervention *model.Intervention    `json:"intervention,omitempty"`
	Error        string                 `json:"error,omitempty"`
	CompletedAt  time.Time              `json:"completed_at"`
}
