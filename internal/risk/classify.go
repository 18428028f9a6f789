package risk

import (
	"fmt"

	"github.com/ananyev/kithwatch/internal/model"
)

// Classify maps a composite score to its internal level. Total over [0,100]:
// every score maps to exactly one level, no gaps, no overlaps.
//
// Fuse guarantees the domain, so a score outside [0,100] is a caller bug and
// Classify panics rather than silently absorbing it.
func Classify(score int) model.Level {
	switch {
	case score < 0 || score > 100:
		panic(fmt.Sprintf("risk: composite score %d outside [0,100]", score))
	case score <= 25:
		return model.LevelLow
	case score <= 50:
		return model.LevelMild
	case score <= 75:
		return model.LevelModerate
	default:
		return model.LevelHigh
	}
}
