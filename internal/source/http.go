package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ananyev/kithwatch/internal/model"
)

// defaultTimeout bounds each boundary call. Retry/backoff, if any, belongs to
// the remote service; the engine's only duty on failure is substitution.
const defaultTimeout = 10 * time.Second

// postJSON sends a JSON request and decodes a JSON response into out.
func postJSON(ctx context.Context, client *http.Client, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// HTTPCalendarAnalyzer calls a remote calendar analyzer service.
type HTTPCalendarAnalyzer struct {
	url    string
	client *http.Client
}

// NewHTTPCalendarAnalyzer creates an analyzer client. A zero timeout uses the
// default.
func NewHTTPCalendarAnalyzer(url string, timeout time.Duration) *HTTPCalendarAnalyzer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPCalendarAnalyzer{url: url, client: &http.Client{Timeout: timeout}}
}

func (a *HTTPCalendarAnalyzer) Analyze(ctx context.Context, token string, daysBack int) (model.CalendarMetrics, error) {
	var out model.CalendarMetrics
	payload := map[string]any{"token": token, "days_back": daysBack}
	if err := postJSON(ctx, a.client, a.url, payload, &out); err != nil {
		return model.CalendarMetrics{}, fmt.Errorf("calendar analyze: %w", err)
	}
	return out, nil
}

// HTTPListeningAnalyzer calls a remote listening analyzer service.
type HTTPListeningAnalyzer struct {
	url    string
	client *http.Client
}

func NewHTTPListeningAnalyzer(url string, timeout time.Duration) *HTTPListeningAnalyzer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPListeningAnalyzer{url: url, client: &http.Client{Timeout: timeout}}
}

func (a *HTTPListeningAnalyzer) Analyze(ctx context.Context, token string, daysBack int) (model.ListeningMetrics, error) {
	var out model.ListeningMetrics
	payload := map[string]any{"token": token, "days_back": daysBack}
	if err := postJSON(ctx, a.client, a.url, payload, &out); err != nil {
		return model.ListeningMetrics{}, fmt.Errorf("listening analyze: %w", err)
	}
	return out, nil
}

// HTTPRecommender calls a remote event recommendation service.
type HTTPRecommender struct {
	url    string
	client *http.Client
}

func NewHTTPRecommender(url string, timeout time.Duration) *HTTPRecommender {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPRecommender{url: url, client: &http.Client{Timeout: timeout}}
}

func (r *HTTPRecommender) Recommend(ctx context.Context, location, anxietyLevel string, interests []string, limit int) ([]model.Activity, error) {
	payload := map[string]any{
		"location":      location,
		"anxiety_level": anxietyLevel,
		"interests":     interests,
		"limit":         limit,
	}
	var out struct {
		Events []model.Activity `json:"events"`
	}
	if err := postJSON(ctx, r.client, r.url, payload, &out); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	return out.Events, nil
}
