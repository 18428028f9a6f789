package model

import "testing"

func TestTierFor(t *testing.T) {
	tests := []struct {
		level Level
		score int
		want  Tier
	}{
		{LevelLow, 10, TierLow},
		{LevelMild, 40, TierModerate},
		{LevelModerate, 60, TierElevated},
		{LevelHigh, 76, TierCritical},
		{LevelHigh, 100, TierCritical},
		// Label/score disagreement from foreign payloads: the score wins.
		{LevelHigh, 60, TierHigh},
		{Level("unknown"), 50, TierModerate},
	}

	for _, tt := range tests {
		got := TierFor(tt.level, tt.score)
		if got != tt.want {
			t.Errorf("TierFor(%s, %d) = %s, want %s", tt.level, tt.score, got, tt.want)
		}
	}
}

func TestNeutralDefaults(t *testing.T) {
	c := NeutralCalendarMetrics()
	if c.BaselineSocialEvents != 8 || c.CurrentSocialEvents != 8 ||
		c.DeclinedInvitationRate != 0 || c.DeclinedInvitationsCount != 0 ||
		c.BaselineUniqueContacts != 5 || c.CurrentUniqueContacts != 5 {
		t.Errorf("calendar neutral defaults = %+v", c)
	}

	l := NeutralListeningMetrics()
	if l.BaselineListeningHours != 90 || l.CurrentListeningHours != 90 ||
		l.LateNightPercentage != 0 || l.BaselineValence != 0.5 ||
		l.CurrentValence != 0.5 || l.RepeatListeningPercentage != 0 {
		t.Errorf("listening neutral defaults = %+v", l)
	}
}

func TestFactorsLines(t *testing.T) {
	f := Factors{ListeningScore: 81.25, CalendarScore: 100, BaselineScore: 10, TotalScore: 83.5}
	lines := f.Lines()
	want := []string{
		"spotify_score: 81.25",
		"calendar_score: 100.00",
		"baseline_score: 10.00",
		"total_score: 83.50",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
