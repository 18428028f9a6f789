package risk

import (
	"testing"

	"github.com/ananyev/kithwatch/internal/model"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  model.Level
	}{
		{0, model.LevelLow},
		{25, model.LevelLow},
		{26, model.LevelMild},
		{50, model.LevelMild},
		{51, model.LevelModerate},
		{75, model.LevelModerate},
		{76, model.LevelHigh},
		{100, model.LevelHigh},
	}

	for _, tt := range tests {
		got := Classify(tt.score)
		if got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestClassifyTotal(t *testing.T) {
	// Every score in the domain maps to exactly one level.
	for score := 0; score <= 100; score++ {
		level := Classify(score)
		switch level {
		case model.LevelLow, model.LevelMild, model.LevelModerate, model.LevelHigh:
		default:
			t.Fatalf("Classify(%d) = %q, not a defined level", score, level)
		}
	}
}

func TestClassifyOutOfDomainPanics(t *testing.T) {
	for _, score := range []int{-1, 101, 1000} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Classify(%d) did not panic", score)
				}
			}()
			Classify(score)
		}()
	}
}
