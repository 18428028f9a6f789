package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ananyev/kithwatch/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "kithwatch.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAssessmentRoundtrip(t *testing.T) {
	s := openTestStore(t)

	res := model.DetectionResult{
		Assessment: model.Assessment{
			UserID:      "u1",
			Score:       62,
			Level:       model.LevelModerate,
			Factors:     model.Factors{ListeningScore: 55, CalendarScore: 70, BaselineScore: 10, TotalScore: 62},
			Explanation: []string{"Social events declined 50% (8 → 4 events/month)"},
			AssessedAt:  time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		},
		Listening:       model.NeutralListeningMetrics(),
		Calendar:        model.NeutralCalendarMetrics(),
		ListeningStatus: model.SourceNoToken,
		CalendarStatus:  model.SourceOK,
	}

	id, err := s.SaveAssessment(res)
	if err != nil {
		t.Fatalf("SaveAssessment: %v", err)
	}
	if id == "" {
		t.Fatal("empty record id")
	}

	got, err := s.Assessments("u1")
	if err != nil {
		t.Fatalf("Assessments: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Assessment.Score != 62 || got[0].Assessment.Level != model.LevelModerate {
		t.Errorf("assessment = %+v", got[0].Assessment)
	}
	if got[0].CalendarStatus != model.SourceOK || got[0].ListeningStatus != model.SourceNoToken {
		t.Errorf("statuses = %+v", got[0])
	}
	if !got[0].Assessment.AssessedAt.Equal(res.Assessment.AssessedAt) {
		t.Errorf("assessed at = %v", got[0].Assessment.AssessedAt)
	}
}

func TestInterventionRoundtrip(t *testing.T) {
	s := openTestStore(t)

	iv := model.Intervention{
		RiskLevel:   model.TierElevated,
		RiskScore:   60,
		Message:     "checking in",
		Activities:  []model.Activity{{ID: "e1", Source: "meetup", Name: "Board Game Night"}},
		ActionItems: []string{"Reach out to a friend you haven't talked to in a while"},
	}

	if _, err := s.SaveIntervention("u1", iv); err != nil {
		t.Fatalf("SaveIntervention: %v", err)
	}

	got, err := s.Interventions("u1")
	if err != nil {
		t.Fatalf("Interventions: %v", err)
	}
	if len(got) != 1 || got[0].RiskLevel != model.TierElevated || got[0].Activities[0].ID != "e1" {
		t.Errorf("interventions = %+v", got)
	}
}

func TestUserIsolation(t *testing.T) {
	s := openTestStore(t)

	for _, user := range []string{"alice", "bob", "alice"} {
		res := model.DetectionResult{Assessment: model.Assessment{UserID: user, Score: 1, Level: model.LevelLow}}
		if _, err := s.SaveAssessment(res); err != nil {
			t.Fatalf("SaveAssessment(%s): %v", user, err)
		}
	}

	alice, err := s.Assessments("alice")
	if err != nil {
		t.Fatalf("Assessments: %v", err)
	}
	if len(alice) != 2 {
		t.Errorf("alice has %d records, want 2", len(alice))
	}

	bob, err := s.Assessments("bob")
	if err != nil {
		t.Fatalf("Assessments: %v", err)
	}
	if len(bob) != 1 {
		t.Errorf("bob has %d records, want 1", len(bob))
	}

	none, err := s.Assessments("carol")
	if err != nil {
		t.Fatalf("Assessments: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("carol has %d records, want 0", len(none))
	}
}

func TestPutRequiresUserID(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.SaveIntervention("", model.Intervention{}); err == nil {
		t.Fatal("expected error on empty user id")
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "kithwatch.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = s.Close()
}
