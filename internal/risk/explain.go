package risk

import (
	"fmt"

	"github.com/ananyev/kithwatch/internal/model"
)

// neutralStatement is emitted when no trigger condition holds. The
// explanation list is never empty.
const neutralStatement = "No significant isolation patterns detected"

// Explain produces the ordered factor statements for an assessment. Triggers
// inspect the raw metrics, not the subscores, and the evaluation order is
// fixed: listening factors first, then calendar factors.
func Explain(listening model.ListeningMetrics, calendar model.CalendarMetrics) []string {
	var out []string

	if listening.CurrentListeningHours > listening.BaselineListeningHours*1.5 {
		out = append(out, fmt.Sprintf("Listening hours increased significantly (%.1fh → %.1fh)",
			listening.BaselineListeningHours, listening.CurrentListeningHours))
	}

	if listening.LateNightPercentage > 40 {
		out = append(out, fmt.Sprintf("%.0f%% of listening happens late at night (11pm-4am)",
			listening.LateNightPercentage))
	}

	if listening.BaselineValence-listening.CurrentValence > 0.2 {
		out = append(out, fmt.Sprintf("Music mood shifted to sadder songs (positivity: %.2f → %.2f)",
			listening.BaselineValence, listening.CurrentValence))
	}

	if listening.RepeatListeningPercentage > 30 {
		out = append(out, fmt.Sprintf("Frequently replaying same songs (%.0f%% repeat listening)",
			listening.RepeatListeningPercentage))
	}

	// Baseline must be positive for the percentage to be defined.
	if calendar.BaselineSocialEvents > 0 && calendar.CurrentSocialEvents < calendar.BaselineSocialEvents {
		declinePct := (calendar.BaselineSocialEvents - calendar.CurrentSocialEvents) / calendar.BaselineSocialEvents * 100
		out = append(out, fmt.Sprintf("Social events declined %.0f%% (%g → %g events/month)",
			declinePct, calendar.BaselineSocialEvents, calendar.CurrentSocialEvents))
	}

	if calendar.DeclinedInvitationsCount > 0 {
		out = append(out, fmt.Sprintf("Declined %d social invitation(s) this month",
			calendar.DeclinedInvitationsCount))
	}

	if calendar.CurrentUniqueContacts < calendar.BaselineUniqueContacts*0.7 {
		out = append(out, fmt.Sprintf("Reduced contact with friends (%g → %g unique contacts)",
			calendar.BaselineUniqueContacts, calendar.CurrentUniqueContacts))
	}

	if len(out) == 0 {
		out = append(out, neutralStatement)
	}
	return out
}
