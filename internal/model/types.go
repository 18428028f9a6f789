package model

import (
	"fmt"
	"time"
)

// CalendarMetrics describes social-activity signals derived from a user's
// calendar over the analysis window. Values are already aggregated by the
// external calendar analyzer; this package never touches the raw API.
type CalendarMetrics struct {
	BaselineSocialEvents     float64 `json:"baseline_social_events"`
	CurrentSocialEvents      float64 `json:"current_social_events"`
	DeclinedInvitationRate   float64 `json:"declined_invitation_rate"` // percent [0,100]
	DeclinedInvitationsCount int     `json:"declined_invitations_count"`
	BaselineUniqueContacts   float64 `json:"baseline_unique_contacts"`
	CurrentUniqueContacts    float64 `json:"current_unique_contacts"`
}

// NeutralCalendarMetrics returns the substitution values used when calendar
// access is not granted or the analyzer call fails. Neutral means "nothing
// changed": current equals baseline, no declines.
func NeutralCalendarMetrics() CalendarMetrics {
	return CalendarMetrics{
		BaselineSocialEvents:   8,
		CurrentSocialEvents:    8,
		BaselineUniqueContacts: 5,
		CurrentUniqueContacts:  5,
	}
}

// ListeningMetrics describes mood signals derived from a user's music
// listening history over the analysis window.
type ListeningMetrics struct {
	BaselineListeningHours    float64 `json:"baseline_listening_hours"`
	CurrentListeningHours     float64 `json:"current_listening_hours"`
	LateNightPercentage       float64 `json:"late_night_percentage"` // percent [0,100]
	BaselineValence           float64 `json:"baseline_valence"`      // [0,1]
	CurrentValence            float64 `json:"current_valence"`       // [0,1]
	RepeatListeningPercentage float64 `json:"repeat_listening_percentage"` // percent [0,100]
}

// NeutralListeningMetrics returns the substitution values used when the
// listening source is unavailable.
func NeutralListeningMetrics() ListeningMetrics {
	return ListeningMetrics{
		BaselineListeningHours: 90,
		CurrentListeningHours:  90,
		BaselineValence:        0.5,
		CurrentValence:         0.5,
	}
}

// Baseline is the optional behavioral-history prior. A nil *Baseline means no
// history exists and the default prior of 10 applies.
type Baseline struct {
	HistoricalRisk float64 `json:"historical_risk"`
}

// Factors is the unrounded subscore breakdown retained for auditability.
// JSON keys match the stored payload shape of earlier deployments.
type Factors struct {
	ListeningScore float64 `json:"spotify_score"`
	CalendarScore  float64 `json:"calendar_score"`
	BaselineScore  float64 `json:"baseline_score"`
	TotalScore     float64 `json:"total_score"`
}

// Lines renders the factor breakdown as "key: value" lines for prompt context.
func (f Factors) Lines() []string {
	return []string{
		fmt.Sprintf("spotify_score: %.2f", f.ListeningScore),
		fmt.Sprintf("calendar_score: %.2f", f.CalendarScore),
		fmt.Sprintf("baseline_score: %.2f", f.BaselineScore),
		fmt.Sprintf("total_score: %.2f", f.TotalScore),
	}
}

// Assessment is the result of one detection run. Immutable once produced;
// new metrics produce a new Assessment, never a mutation.
type Assessment struct {
	UserID      string    `json:"user_id"`
	Score       int       `json:"score"` // [0,100]
	Level       Level     `json:"level"`
	Factors     Factors   `json:"factors"`
	Explanation []string  `json:"explanation"` // never empty
	AssessedAt  time.Time `json:"assessed_at"`
}

// SourceStatus records how a source's metrics were obtained. NoToken and
// Failed both substitute neutral defaults but are distinguished for logging
// and audit.
type SourceStatus string

const (
	SourceOK      SourceStatus = "ok"
	SourceNoToken SourceStatus = "no_token"
	SourceFailed  SourceStatus = "failed"
)

// DetectionResult bundles the assessment with the raw per-source metrics and
// statuses so the persistence collaborator can store the full picture.
type DetectionResult struct {
	Assessment      Assessment       `json:"assessment"`
	Listening       ListeningMetrics `json:"listening_metrics"`
	Calendar        CalendarMetrics  `json:"calendar_metrics"`
	ListeningStatus SourceStatus     `json:"listening_status"`
	CalendarStatus  SourceStatus     `json:"calendar_status"`
}

// Activity is one recommended event from the external recommender.
type Activity struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Intervention is the final human-facing payload assembled for one assessment.
type Intervention struct {
	RiskLevel   Tier       `json:"risk_level"`
	RiskScore   int        `json:"risk_score"`
	Message     string     `json:"message"`
	Activities  []Activity `json:"activities"`
	ActionItems []string   `json:"action_items"`
}
