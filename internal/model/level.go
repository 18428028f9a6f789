package model

// Level is the internal classifier scale. Boundaries are inclusive integer
// ranges over the composite score: low [0,25], mild [26,50], moderate [51,75],
// high [76,100].
type Level string

const (
	LevelLow      Level = "low"
	LevelMild     Level = "mild"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Tier is the externally facing five-tier scale used by the escalation policy
// and everything user-visible.
type Tier string

const (
	TierLow      Tier = "low"
	TierModerate Tier = "moderate"
	TierElevated Tier = "elevated"
	TierHigh     Tier = "high"
	TierCritical Tier = "critical"
)

// CrisisThreshold is the composite score at or above which the crisis path is
// taken, independent of the textual level label. The score is the ground
// truth; the level is a derived view.
const CrisisThreshold = 76

// TierFor reconciles the internal classifier level with the external tier.
// Classifier output always maps high→critical because the internal high band
// starts at the crisis threshold; the external high arm remains reachable for
// assessments loaded from storage whose label and score disagree.
func TierFor(level Level, score int) Tier {
	switch level {
	case LevelLow:
		return TierLow
	case LevelMild:
		return TierModerate
	case LevelModerate:
		return TierElevated
	case LevelHigh:
		if score >= CrisisThreshold {
			return TierCritical
		}
		return TierHigh
	default:
		return TierModerate
	}
}
