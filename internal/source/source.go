// Package source defines the collaborator contracts the engine consumes and
// thin HTTP adapters for talking to the external analyzer and recommender
// services. The raw calendar/music API mechanics (OAuth, pagination, rate
// limits) live entirely behind these boundaries.
package source

import (
	"context"

	"github.com/ananyev/kithwatch/internal/model"
)

// CalendarAnalyzer derives social-activity metrics from a calendar account.
type CalendarAnalyzer interface {
	Analyze(ctx context.Context, token string, daysBack int) (model.CalendarMetrics, error)
}

// ListeningAnalyzer derives mood metrics from a music listening history.
type ListeningAnalyzer interface {
	Analyze(ctx context.Context, token string, daysBack int) (model.ListeningMetrics, error)
}

// Recommender finds anxiety-appropriate social activities near a location.
type Recommender interface {
	Recommend(ctx context.Context, location, anxietyLevel string, interests []string, limit int) ([]model.Activity, error)
}
