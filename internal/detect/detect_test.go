package detect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ananyev/kithwatch/internal/model"
)

type fakeCalendar struct {
	metrics model.CalendarMetrics
	err     error

	gotToken string
	gotDays  int
}

func (f *fakeCalendar) Analyze(ctx context.Context, token string, daysBack int) (model.CalendarMetrics, error) {
	f.gotToken = token
	f.gotDays = daysBack
	return f.metrics, f.err
}

type fakeListening struct {
	metrics model.ListeningMetrics
	err     error
}

func (f *fakeListening) Analyze(ctx context.Context, token string, daysBack int) (model.ListeningMetrics, error) {
	return f.metrics, f.err
}

func fixedClock() func() time.Time {
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestRunBothSourcesOK(t *testing.T) {
	cal := &fakeCalendar{metrics: model.CalendarMetrics{
		BaselineSocialEvents: 8, CurrentSocialEvents: 0,
		DeclinedInvitationRate: 100, DeclinedInvitationsCount: 12,
		BaselineUniqueContacts: 5, CurrentUniqueContacts: 0,
	}}
	lis := &fakeListening{metrics: model.ListeningMetrics{
		BaselineListeningHours: 15, CurrentListeningHours: 45,
		LateNightPercentage: 85, BaselineValence: 0.70, CurrentValence: 0.25,
		RepeatListeningPercentage: 65,
	}}

	d := New(cal, lis, WithDaysBack(14), WithClock(fixedClock()))
	res := d.Run(context.Background(), Request{
		UserID: "u1", CalendarToken: "ct", ListeningToken: "lt",
	})

	if res.CalendarStatus != model.SourceOK || res.ListeningStatus != model.SourceOK {
		t.Errorf("statuses = %s/%s", res.CalendarStatus, res.ListeningStatus)
	}
	if cal.gotToken != "ct" || cal.gotDays != 14 {
		t.Errorf("calendar called with token=%q days=%d", cal.gotToken, cal.gotDays)
	}
	if res.Assessment.Score != 91 {
		t.Errorf("score = %d, want 91", res.Assessment.Score)
	}
	if res.Assessment.Level != model.LevelHigh {
		t.Errorf("level = %s", res.Assessment.Level)
	}
	if res.Assessment.UserID != "u1" {
		t.Errorf("user id = %q", res.Assessment.UserID)
	}
	if !res.Assessment.AssessedAt.Equal(fixedClock()()) {
		t.Errorf("assessed at = %v", res.Assessment.AssessedAt)
	}
}

func TestRunNoTokensSubstitutesNeutral(t *testing.T) {
	d := New(&fakeCalendar{}, &fakeListening{}, WithClock(fixedClock()))
	res := d.Run(context.Background(), Request{UserID: "u2"})

	if res.CalendarStatus != model.SourceNoToken || res.ListeningStatus != model.SourceNoToken {
		t.Errorf("statuses = %s/%s", res.CalendarStatus, res.ListeningStatus)
	}
	if res.Listening != model.NeutralListeningMetrics() {
		t.Errorf("listening = %+v", res.Listening)
	}
	if res.Calendar != model.NeutralCalendarMetrics() {
		t.Errorf("calendar = %+v", res.Calendar)
	}
	// Neutral sources plus the default prior land at the floor score.
	if res.Assessment.Score != 1 || res.Assessment.Level != model.LevelLow {
		t.Errorf("score/level = %d/%s", res.Assessment.Score, res.Assessment.Level)
	}
}

func TestRunSourceFailureDegrades(t *testing.T) {
	cal := &fakeCalendar{err: errors.New("upstream 500")}
	lis := &fakeListening{metrics: model.ListeningMetrics{
		BaselineListeningHours: 90, CurrentListeningHours: 90,
		BaselineValence: 0.5, CurrentValence: 0.5,
	}}

	d := New(cal, lis, WithClock(fixedClock()))
	res := d.Run(context.Background(), Request{
		UserID: "u3", CalendarToken: "ct", ListeningToken: "lt",
	})

	if res.CalendarStatus != model.SourceFailed {
		t.Errorf("calendar status = %s", res.CalendarStatus)
	}
	if res.ListeningStatus != model.SourceOK {
		t.Errorf("listening status = %s", res.ListeningStatus)
	}
	if res.Calendar != model.NeutralCalendarMetrics() {
		t.Errorf("failed calendar not substituted: %+v", res.Calendar)
	}
}

func TestRunNilAnalyzers(t *testing.T) {
	d := New(nil, nil, WithClock(fixedClock()))
	res := d.Run(context.Background(), Request{
		UserID: "u4", CalendarToken: "ct", ListeningToken: "lt",
	})

	if res.CalendarStatus != model.SourceNoToken || res.ListeningStatus != model.SourceNoToken {
		t.Errorf("statuses = %s/%s", res.CalendarStatus, res.ListeningStatus)
	}
}

func TestRunDeterministic(t *testing.T) {
	cal := &fakeCalendar{metrics: model.CalendarMetrics{
		BaselineSocialEvents: 8, CurrentSocialEvents: 3,
		DeclinedInvitationRate: 25, BaselineUniqueContacts: 5, CurrentUniqueContacts: 3,
	}}
	lis := &fakeListening{metrics: model.ListeningMetrics{
		BaselineListeningHours: 90, CurrentListeningHours: 120,
		LateNightPercentage: 30, BaselineValence: 0.6, CurrentValence: 0.45,
		RepeatListeningPercentage: 20,
	}}

	d := New(cal, lis, WithClock(fixedClock()))
	req := Request{UserID: "u5", CalendarToken: "ct", ListeningToken: "lt",
		Baseline: &model.Baseline{HistoricalRisk: 20}}

	first := d.Run(context.Background(), req)
	second := d.Run(context.Background(), req)

	if first.Assessment.Score != second.Assessment.Score ||
		first.Assessment.Factors != second.Assessment.Factors {
		t.Errorf("runs differ: %+v vs %+v", first.Assessment, second.Assessment)
	}
}
