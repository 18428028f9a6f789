package risk

import (
	"math"

	"github.com/ananyev/kithwatch/internal/model"
)

// Per-factor point ceilings. The listening and calendar subscores each sum to
// at most 100 before the final clamp.
const (
	spikeMax     = 37.5
	lateNightMax = 25.0
	valenceMax   = 25.0
	repeatMax    = 12.5

	eventDeclineMax   = 50.0
	declinedRateMax   = 30.0
	contactDeclineMax = 20.0
)

// part clamps one factor contribution into [0, max]. Malformed inputs
// (negative hours, percentages over 100, NaN) must never push a term negative
// or past its ceiling.
func part(v, max float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// clampScore bounds a subscore or composite into [0,100].
func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ListeningSubscore converts listening metrics into a 0-100 risk subscore.
// Factors: listening spike (max 37.5), late-night share (max 25), valence
// decline (max 25), repeat listening (max 12.5).
func ListeningSubscore(m model.ListeningMetrics) float64 {
	score := 0.0

	// Spike: ratio > 2 saturates, (1,2] scales linearly, <= 1 contributes 0.
	if m.BaselineListeningHours > 0 {
		ratio := m.CurrentListeningHours / m.BaselineListeningHours
		switch {
		case ratio > 2:
			score += spikeMax
		case ratio > 1:
			score += (ratio - 1) * spikeMax
		}
	}

	// Late-night share: 50% or more saturates.
	score += part((m.LateNightPercentage/50)*lateNightMax, lateNightMax)

	// Valence decline: only drops count, 0.3 saturates.
	if decline := m.BaselineValence - m.CurrentValence; decline > 0 {
		score += part((decline/0.3)*valenceMax, valenceMax)
	}

	// Repeat listening: 40% or more saturates.
	score += part((m.RepeatListeningPercentage/40)*repeatMax, repeatMax)

	return clampScore(score)
}

// CalendarSubscore converts calendar metrics into a 0-100 risk subscore.
// Factors: event decline (max 50), declined-invitation rate (max 30), contact
// decline (max 20).
func CalendarSubscore(m model.CalendarMetrics) float64 {
	score := 0.0

	// Event decline: 75% drop saturates. Growth (current > baseline) floors
	// at 0 rather than reducing the score.
	if m.BaselineSocialEvents > 0 {
		declineRatio := (m.BaselineSocialEvents - m.CurrentSocialEvents) / m.BaselineSocialEvents
		score += part(declineRatio*66.67, eventDeclineMax)
	}

	// Declined invitations: a 50% decline rate saturates.
	score += part((m.DeclinedInvitationRate/50)*declinedRateMax, declinedRateMax)

	// Contact decline: losing half the unique contacts saturates.
	if m.BaselineUniqueContacts > 0 {
		declineRatio := (m.BaselineUniqueContacts - m.CurrentUniqueContacts) / m.BaselineUniqueContacts
		score += part((declineRatio/0.5)*contactDeclineMax, contactDeclineMax)
	}

	return clampScore(score)
}

// defaultBaselineRisk applies when no behavioral history exists. Everyone
// carries a small prior so a user with zero data never scores exactly 0.
const defaultBaselineRisk = 10.0

// BaselineSubscore returns the historical-risk prior, or the default when no
// baseline exists.
func BaselineSubscore(b *model.Baseline) float64 {
	if b == nil {
		return defaultBaselineRisk
	}
	return clampScore(b.HistoricalRisk)
}
