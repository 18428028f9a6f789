// Package intervene assembles the final intervention payload for one
// assessment: escalation plan, optional activity recommendations, and the
// message (LLM-generated with a deterministic fallback).
package intervene

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ananyev/kithwatch/internal/escalate"
	"github.com/ananyev/kithwatch/internal/model"
	"github.com/ananyev/kithwatch/internal/msggen"
	"github.com/ananyev/kithwatch/internal/prompt"
	"github.com/ananyev/kithwatch/internal/source"
)

const defaultActivityLimit = 5

// Store is the persistence collaborator. Failures are logged and swallowed;
// the caller always gets an intervention.
type Store interface {
	SaveIntervention(userID string, iv model.Intervention) (string, error)
}

// Request carries the assessment and whatever personal context is available.
// Interests and location are never fabricated: absence of either skips
// recommendations.
type Request struct {
	Assessment  model.Assessment `json:"assessment"`
	Interests   []string         `json:"interests,omitempty"`
	Location    string           `json:"location,omitempty"`
	UserMessage string           `json:"user_message,omitempty"`
}

// Orchestrator builds interventions. Recommender, generator, and store may
// each be nil; every collaborator degrades independently.
type Orchestrator struct {
	recommender source.Recommender
	generator   msggen.Generator
	store       Store
	limit       int
}

// New creates an Orchestrator.
func New(recommender source.Recommender, generator msggen.Generator, store Store) *Orchestrator {
	return &Orchestrator{
		recommender: recommender,
		generator:   generator,
		store:       store,
		limit:       defaultActivityLimit,
	}
}

// Run produces the intervention for one assessment. Never returns an error:
// recommendation failures yield an empty activity list, generation failures
// yield the deterministic template, storage failures are logged and swallowed.
func (o *Orchestrator) Run(ctx context.Context, req Request) model.Intervention {
	score := req.Assessment.Score

	// An assessment without a level is treated as moderate.
	tier := model.TierModerate
	if req.Assessment.Level != "" {
		tier = model.TierFor(req.Assessment.Level, score)
	}

	plan := escalate.PlanFor(tier, score)
	activities := o.fetchActivities(ctx, plan, req)
	message := o.buildMessage(ctx, plan, req, len(activities))

	iv := model.Intervention{
		RiskLevel:   tier,
		RiskScore:   score,
		Message:     message,
		Activities:  activities,
		ActionItems: plan.ActionItems,
	}

	if o.store != nil && req.Assessment.UserID != "" {
		if _, err := o.store.SaveIntervention(req.Assessment.UserID, iv); err != nil {
			fmt.Fprintf(os.Stderr, "intervene: store failed for %s: %v\n", req.Assessment.UserID, err)
		}
	}

	return iv
}

// fetchActivities requests recommendations when the plan allows it and both
// interests and location are known. A recommender failure never blocks
// message delivery.
func (o *Orchestrator) fetchActivities(ctx context.Context, plan escalate.Plan, req Request) []model.Activity {
	if !plan.FetchActivities || o.recommender == nil {
		return nil
	}
	if len(req.Interests) == 0 || req.Location == "" {
		return nil
	}

	activities, err := o.recommender.Recommend(ctx, req.Location, escalate.AnxietyLevel(plan.Tier), req.Interests, o.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "intervene: recommender failed: %v\n", err)
		return nil
	}
	return activities
}

// buildMessage selects the crisis or standard prompt by score, asks the
// generator, and falls back to the per-tier template on any failure.
func (o *Orchestrator) buildMessage(ctx context.Context, plan escalate.Plan, req Request, activityCount int) string {
	if o.generator == nil {
		return escalate.FallbackMessage(plan.Tier)
	}

	var promptCtx string
	if plan.Crisis {
		promptCtx = prompt.Crisis(req.Assessment.Score, req.Assessment.Factors.Lines(), req.UserMessage)
	} else {
		base := prompt.Intervention(
			req.Assessment.Score,
			strings.Join(req.Assessment.Explanation, "\n"),
			req.UserMessage,
			nil, // recurring contacts live with the calendar collaborator
			-1,
		)
		promptCtx = prompt.Context(base, req.Interests, req.Location, activityCount)
	}

	msg, err := o.generator.Generate(ctx, promptCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "intervene: message generation failed, using template: %v\n", err)
		return escalate.FallbackMessage(plan.Tier)
	}
	return msg
}
