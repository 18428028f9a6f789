// Package escalate maps an assessed risk tier to the intervention shape:
// message tone, action items, whether discretionary activities are offered,
// and whether the crisis path applies. The mapping is a pure lookup with no
// memory of previous assessments, so there is no hysteresis.
package escalate

import "github.com/ananyev/kithwatch/internal/model"

// Fixed crisis resources. Constants, never config.
const (
	CrisisLifeline   = "National Suicide Prevention Lifeline: 988"
	CrisisTextLine   = "Crisis Text Line: Text HOME to 741741"
	CampusCounseling = "Campus Counseling Services: (979) 845-4427"
)

// Plan is the escalation decision for one assessment.
type Plan struct {
	Tier            model.Tier
	ActionItems     []string
	FetchActivities bool
	Crisis          bool // crisis prompt path, keyed on score, not label
}

// PlanFor builds the escalation plan for a tier and composite score.
// Activities are never fetched at the critical tier: someone in crisis is
// directed to immediate human contact, not discretionary social events.
func PlanFor(tier model.Tier, score int) Plan {
	return Plan{
		Tier:            tier,
		ActionItems:     actionItems(tier),
		FetchActivities: tier != model.TierCritical,
		Crisis:          score >= model.CrisisThreshold,
	}
}

// actionItems returns the ordered action-item list for a tier. Returns a
// fresh slice each call so callers cannot mutate the tables.
func actionItems(tier model.Tier) []string {
	switch tier {
	case model.TierLow, model.TierModerate:
		return []string{
			"Continue maintaining your current social connections",
			"Consider trying one new social activity this week",
		}
	case model.TierElevated:
		return []string{
			"Reach out to a friend you haven't talked to in a while",
			"Join one small group activity (see recommendations below)",
			"Spend 10 minutes outside in a social space (coffee shop, park)",
		}
	case model.TierHigh:
		return []string{
			"Text or call one person you trust today",
			"Schedule a low-pressure social activity within 3 days",
			"Consider talking to a counselor or therapist",
			"Join a structured group activity (less awkward than 'just hanging out')",
		}
	case model.TierCritical:
		return []string{
			"Call or text someone you trust RIGHT NOW",
			"Contact " + CampusCounseling,
			"Call " + CrisisLifeline,
			"Go to a public place (don't stay isolated)",
		}
	default:
		return actionItems(model.TierModerate)
	}
}

// AnxietyLevel maps a risk tier to the anxiety level the activity recommender
// expects.
func AnxietyLevel(tier model.Tier) string {
	switch tier {
	case model.TierLow, model.TierModerate:
		return "low"
	case model.TierElevated:
		return "medium"
	case model.TierHigh, model.TierCritical:
		return "high"
	default:
		return "medium"
	}
}

// FallbackMessage returns the deterministic per-tier message used when the
// LLM generator is unavailable. The critical template carries the crisis
// resources verbatim.
func FallbackMessage(tier model.Tier) string {
	switch tier {
	case model.TierLow:
		return "Hey! I've been keeping an eye on your patterns, and things look pretty steady. " +
			"You're doing a great job maintaining your social connections. Keep it up!"
	case model.TierElevated:
		return "I've noticed some patterns that caught my attention. You used to hang out " +
			"with people more often, and your recent listening history suggests you might " +
			"be feeling a bit down. Not judging at all - we all go through phases. But I " +
			"wanted to check in because I care about you. Would you be open to reconnecting " +
			"with someone or trying a low-key social activity?"
	case model.TierHigh:
		return "Hey, I want to be real with you. I've noticed some concerning patterns - " +
			"you've been isolating more than usual, and your mood seems to have shifted. " +
			"I'm not here to diagnose anything, but as someone who cares about you, I think " +
			"it might be time to reach out to someone. Whether that's a friend, a counselor, " +
			"or just getting out of the house for a bit. You don't have to go through this alone."
	case model.TierCritical:
		return "I'm genuinely worried about you. The patterns I'm seeing suggest you might be " +
			"struggling with serious isolation and possibly depression. Please, please reach " +
			"out to someone you trust or a mental health professional. This is not something " +
			"you should handle alone. There are people who care about you and want to help.\n\n" +
			"Crisis Resources:\n" +
			"- " + CrisisLifeline + "\n" +
			"- " + CrisisTextLine + "\n" +
			"- " + CampusCounseling
	default: // moderate, and unknown tiers
		return "I noticed you've been spending a bit more time solo lately - totally normal, " +
			"especially if you're in the middle of exams or busy season. Just wanted to " +
			"check in. How are you feeling about your social energy lately?"
	}
}
