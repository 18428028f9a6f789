package risk

import (
	"math"

	"github.com/ananyev/kithwatch/internal/model"
)

// Fusion weights. Calendar evidence weighs highest: invitation and attendance
// data is the most direct social signal. The baseline weight keeps a small
// prior alive so two silent sources still report a nonzero score.
const (
	ListeningWeight = 0.4
	CalendarWeight  = 0.5
	BaselineWeight  = 0.1
)

// Fuse combines the three subscores into the composite score and its factor
// breakdown. The returned score is always in [0,100]; factors keep the
// unrounded components at two-decimal precision.
func Fuse(listening model.ListeningMetrics, calendar model.CalendarMetrics, baseline *model.Baseline) (int, model.Factors) {
	ls := ListeningSubscore(listening)
	cs := CalendarSubscore(calendar)
	bs := BaselineSubscore(baseline)

	total := clampScore(ls*ListeningWeight + cs*CalendarWeight + bs*BaselineWeight)

	factors := model.Factors{
		ListeningScore: round2(ls),
		CalendarScore:  round2(cs),
		BaselineScore:  round2(bs),
		TotalScore:     round2(total),
	}
	return int(math.Round(total)), factors
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
