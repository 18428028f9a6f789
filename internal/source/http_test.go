package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPCalendarAnalyzer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["token"] != "cal-token" {
			t.Errorf("token = %v", req["token"])
		}
		if req["days_back"] != float64(30) {
			t.Errorf("days_back = %v", req["days_back"])
		}
		_, _ = w.Write([]byte(`{
			"baseline_social_events": 8,
			"current_social_events": 2,
			"declined_invitation_rate": 40,
			"declined_invitations_count": 3,
			"baseline_unique_contacts": 5,
			"current_unique_contacts": 2
		}`))
	}))
	defer srv.Close()

	m, err := NewHTTPCalendarAnalyzer(srv.URL, 0).Analyze(context.Background(), "cal-token", 30)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if m.CurrentSocialEvents != 2 || m.DeclinedInvitationsCount != 3 || m.CurrentUniqueContacts != 2 {
		t.Errorf("metrics = %+v", m)
	}
}

func TestHTTPListeningAnalyzer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"baseline_listening_hours": 90,
			"current_listening_hours": 200,
			"late_night_percentage": 60,
			"baseline_valence": 0.6,
			"current_valence": 0.3,
			"repeat_listening_percentage": 45
		}`))
	}))
	defer srv.Close()

	m, err := NewHTTPListeningAnalyzer(srv.URL, 0).Analyze(context.Background(), "tok", 30)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if m.CurrentListeningHours != 200 || m.CurrentValence != 0.3 {
		t.Errorf("metrics = %+v", m)
	}
}

func TestHTTPAnalyzerErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewHTTPCalendarAnalyzer(srv.URL, 0).Analyze(context.Background(), "stale", 30)
	if err == nil {
		t.Fatal("expected error on 401")
	}
	if !strings.Contains(err.Error(), "HTTP 401") || !strings.Contains(err.Error(), "token expired") {
		t.Errorf("error = %v", err)
	}
}

func TestHTTPAnalyzerContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := NewHTTPListeningAnalyzer(srv.URL, 0).Analyze(ctx, "tok", 30); err == nil {
		t.Fatal("expected error on context timeout")
	}
}

func TestHTTPRecommender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["anxiety_level"] != "medium" {
			t.Errorf("anxiety_level = %v", req["anxiety_level"])
		}
		if req["limit"] != float64(5) {
			t.Errorf("limit = %v", req["limit"])
		}
		_, _ = w.Write([]byte(`{"events": [
			{"id": "e1", "source": "meetup", "name": "Board Game Night", "description": "casual"},
			{"id": "e2", "source": "campus", "name": "Climbing Intro", "description": ""}
		]}`))
	}))
	defer srv.Close()

	events, err := NewHTTPRecommender(srv.URL, 0).Recommend(
		context.Background(), "College Station", "medium", []string{"games"}, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(events) != 2 || events[0].Name != "Board Game Night" || events[1].ID != "e2" {
		t.Errorf("events = %+v", events)
	}
}

func TestHTTPRecommenderBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events": [`))
	}))
	defer srv.Close()

	if _, err := NewHTTPRecommender(srv.URL, 0).Recommend(context.Background(), "x", "low", nil, 1); err == nil {
		t.Fatal("expected decode error")
	}
}
