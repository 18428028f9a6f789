package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ananyev/kithwatch/internal/detect"
	"github.com/ananyev/kithwatch/internal/intervene"
	"github.com/ananyev/kithwatch/internal/model"
)

// AssessmentStore persists detection results. Optional; failures are logged
// and never fail the job.
type AssessmentStore interface {
	SaveAssessment(res model.DetectionResult) (string, error)
}

// Processor runs one job end to end: detection, intervention, result file.
type Processor struct {
	dirs         DirConfig
	detector     *detect.Detector
	orchestrator *intervene.Orchestrator
	store        AssessmentStore
}

// NewProcessor creates a Processor. store may be nil.
func NewProcessor(dirs DirConfig, detector *detect.Detector, orchestrator *intervene.Orchestrator, store AssessmentStore) *Processor {
	return &Processor{
		dirs:         dirs,
		detector:     detector,
		orchestrator: orchestrator,
		store:        store,
	}
}

// Process handles a single inbox file. The file is moved to processing/
// first so a crash leaves an orphan instead of a half-processed inbox entry.
func (p *Processor) Process(ctx context.Context, path string) error {
	name := filepath.Base(path)
	procPath := filepath.Join(p.dirs.ProcessingDir(), name)
	if err := moveFile(path, procPath); err != nil {
		return fmt.Errorf("move to processing: %w", err)
	}
	defer func() { _ = os.Remove(procPath) }()

	id := strings.TrimSuffix(name, ".json")

	job, err := LoadJob(procPath)
	if err != nil {
		return p.writeResult(&Result{
			ID:          id,
			Status:      ResultFailed,
			Error:       err.Error(),
			CompletedAt: time.Now().UTC(),
		})
	}
	if job.ID == "" {
		job.ID = id
	}

	detection := p.detector.Run(ctx, detect.Request{
		UserID:         job.UserID,
		CalendarToken:  job.CalendarToken,
		ListeningToken: job.ListeningToken,
		Baseline:       job.Baseline,
	})

	if p.store != nil {
		if _, err := p.store.SaveAssessment(detection); err != nil {
			fmt.Fprintf(os.Stderr, "daemon: store assessment %s: %v\n", job.ID, err)
		}
	}

	iv := p.orchestrator.Run(ctx, intervene.Request{
		Assessment:  detection.Assessment,
		Interests:   job.Interests,
		Location:    job.Location,
		UserMessage: job.UserMessage,
	})

	return p.writeResult(&Result{
		ID:           job.ID,
		Status:       ResultDone,
		Detection:    &detection,
		Intervention: &iv,
		CompletedAt:  time.Now().UTC(),
	})
}

// writeResult writes the outbox file atomically: tmp file, then rename.
func (p *Processor) writeResult(result *Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	final := filepath.Join(p.dirs.Outbox, result.ID+".json")
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0640); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return os.Rename(tmp, final)
}
