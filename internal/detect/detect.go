// Package detect orchestrates one risk detection run: fetch metrics from the
// two external analyzers, substitute neutral defaults when a source is absent
// or fails, then run the pure fusion pipeline. Detection never aborts because
// of a single source's failure.
package detect

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ananyev/kithwatch/internal/model"
	"github.com/ananyev/kithwatch/internal/risk"
	"github.com/ananyev/kithwatch/internal/source"
)

const (
	defaultDaysBack      = 30
	defaultSourceTimeout = 15 * time.Second
)

// Request identifies one user and the credentials available for their
// sources. Empty tokens mean the source was never granted.
type Request struct {
	UserID         string          `json:"user_id"`
	CalendarToken  string          `json:"calendar_token,omitempty"`
	ListeningToken string          `json:"listening_token,omitempty"`
	Baseline       *model.Baseline `json:"baseline,omitempty"`
}

// Detector runs the detection pipeline.
type Detector struct {
	calendar  source.CalendarAnalyzer
	listening source.ListeningAnalyzer
	daysBack  int
	timeout   time.Duration

	// now is swappable for deterministic tests.
	now func() time.Time
}

// Option configures a Detector.
type Option func(*Detector)

// WithDaysBack sets the analysis window in days.
func WithDaysBack(days int) Option {
	return func(d *Detector) {
		if days > 0 {
			d.daysBack = days
		}
	}
}

// WithSourceTimeout bounds each per-source analyzer call.
func WithSourceTimeout(t time.Duration) Option {
	return func(d *Detector) {
		if t > 0 {
			d.timeout = t
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) { d.now = now }
}

// New creates a Detector. Either analyzer may be nil, in which case that
// source always substitutes neutral defaults.
func New(calendar source.CalendarAnalyzer, listening source.ListeningAnalyzer, opts ...Option) *Detector {
	d := &Detector{
		calendar:  calendar,
		listening: listening,
		daysBack:  defaultDaysBack,
		timeout:   defaultSourceTimeout,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes one detection. The two source fetches run concurrently, each
// under its own timeout; a failure or timeout on one never cancels or delays
// the other. Run never returns an error: every failure mode degrades to a
// defined default.
func (d *Detector) Run(ctx context.Context, req Request) model.DetectionResult {
	var (
		wg        sync.WaitGroup
		listening model.ListeningMetrics
		calendar  model.CalendarMetrics
		lStatus   model.SourceStatus
		cStatus   model.SourceStatus
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		listening, lStatus = d.fetchListening(ctx, req)
	}()
	go func() {
		defer wg.Done()
		calendar, cStatus = d.fetchCalendar(ctx, req)
	}()
	wg.Wait()

	score, factors := risk.Fuse(listening, calendar, req.Baseline)
	level := risk.Classify(score)
	explanation := risk.Explain(listening, calendar)

	return model.DetectionResult{
		Assessment: model.Assessment{
			UserID:      req.UserID,
			Score:       score,
			Level:       level,
			Factors:     factors,
			Explanation: explanation,
			AssessedAt:  d.now(),
		},
		Listening:       listening,
		Calendar:        calendar,
		ListeningStatus: lStatus,
		CalendarStatus:  cStatus,
	}
}

// fetchListening resolves listening metrics. No token is expected and silent;
// a failed call is logged and substituted.
func (d *Detector) fetchListening(ctx context.Context, req Request) (model.ListeningMetrics, model.SourceStatus) {
	if req.ListeningToken == "" || d.listening == nil {
		return model.NeutralListeningMetrics(), model.SourceNoToken
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	m, err := d.listening.Analyze(ctx, req.ListeningToken, d.daysBack)
	if err != nil {
		fmt.Fprintf(os.Stderr, "detect: listening source failed for %s: %v\n", req.UserID, err)
		return model.NeutralListeningMetrics(), model.SourceFailed
	}
	return m, model.SourceOK
}

// fetchCalendar resolves calendar metrics with the same substitution rules.
func (d *Detector) fetchCalendar(ctx context.Context, req Request) (model.CalendarMetrics, model.SourceStatus) {
	if req.CalendarToken == "" || d.calendar == nil {
		return model.NeutralCalendarMetrics(), model.SourceNoToken
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	m, err := d.calendar.Analyze(ctx, req.CalendarToken, d.daysBack)
	if err != nil {
		fmt.Fprintf(os.Stderr, "detect: calendar source failed for %s: %v\n", req.UserID, err)
		return model.NeutralCalendarMetrics(), model.SourceFailed
	}
	return m, model.SourceOK
}
