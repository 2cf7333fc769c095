// Package recommendation turns tracked activities into coaching feedback via
// a generative AI call, with a deterministic fallback when that call cannot
// be completed or understood.
package recommendation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	shared "github.com/fitsage/server/pkg"
	sentryutil "github.com/fitsage/server/pkg/infrastructure/sentry"
	"github.com/fitsage/server/pkg/types"
)

// Default recommendation content, used whenever the AI call or parse fails.
// Deliberately activity-agnostic so recommendation generation can never
// block activity tracking.
const defaultNarrative = "Keep maintaining consistency in your activity. Regular effort matters more than intensity."

var (
	defaultImprovements = []string{
		"Increase consistency if activity frequency is low",
		"Ensure proper warm-up and cool-down",
		"Track progress weekly",
	}
	defaultSuggestions = []string{
		"Stay hydrated",
		"Maintain proper posture",
		"Allow adequate recovery time",
	}
	defaultSafety = []string{
		"Avoid overtraining",
		"Stop immediately if you feel pain or dizziness",
	}
)

// Generator runs the full pipeline: prompt, transport call, parse, assemble.
type Generator struct {
	ai             shared.AIClient
	store          shared.BlobStore
	artifactBucket string
}

// NewGenerator wires the pipeline. store may be nil (or artifactBucket
// empty) to disable raw-response archiving.
func NewGenerator(ai shared.AIClient, store shared.BlobStore, artifactBucket string) *Generator {
	return &Generator{
		ai:             ai,
		store:          store,
		artifactBucket: artifactBucket,
	}
}

// Generate always returns a usable Recommendation. Transport and parse
// failures are logged, captured, and answered with the default content;
// they never propagate to the caller.
func (g *Generator) Generate(ctx context.Context, activity *types.Activity) *types.Recommendation {
	prompt := BuildPrompt(activity)

	raw, err := g.ai.Send(ctx, prompt)
	if err != nil {
		slog.Error("AI transport call failed, using default recommendation",
			"activity_id", activity.Id,
			"user_id", activity.UserId,
			"error", err,
		)
		sentryutil.CaptureException(err, map[string]interface{}{
			"activity_id": activity.Id,
			"stage":       "transport",
		}, nil)
		return DefaultRecommendation(activity)
	}

	g.archiveResponse(ctx, activity, raw)

	sections, err := ParseResponse(raw)
	if err != nil {
		slog.Error("AI response parse failed, using default recommendation",
			"activity_id", activity.Id,
			"user_id", activity.UserId,
			"error", err,
		)
		sentryutil.CaptureException(err, map[string]interface{}{
			"activity_id": activity.Id,
			"stage":       "parse",
		}, nil)
		return DefaultRecommendation(activity)
	}

	return &types.Recommendation{
		ActivityId:     activity.Id,
		UserId:         activity.UserId,
		ActivityType:   activity.Type,
		Recommendation: sections.Narrative,
		Improvements:   sections.Improvements,
		Suggestions:    sections.Suggestions,
		Safety:         sections.Safety,
		CreatedAt:      time.Now().UTC(),
	}
}

// DefaultRecommendation is the fixed fallback. Identity fields still come
// from the source activity.
func DefaultRecommendation(activity *types.Activity) *types.Recommendation {
	return &types.Recommendation{
		ActivityId:     activity.Id,
		UserId:         activity.UserId,
		ActivityType:   activity.Type,
		Recommendation: defaultNarrative,
		Improvements:   append([]string(nil), defaultImprovements...),
		Suggestions:    append([]string(nil), defaultSuggestions...),
		Safety:         append([]string(nil), defaultSafety...),
		CreatedAt:      time.Now().UTC(),
	}
}

// archiveResponse stores the raw provider response for later inspection.
// Best-effort: archival failures are logged and ignored.
func (g *Generator) archiveResponse(ctx context.Context, activity *types.Activity, raw string) {
	if g.store == nil || g.artifactBucket == "" {
		return
	}
	object := fmt.Sprintf("ai-responses/%s/%s.json", activity.UserId, activity.Id)
	if err := g.store.Write(ctx, g.artifactBucket, object, []byte(raw)); err != nil {
		slog.Warn("Failed to archive AI response", "activity_id", activity.Id, "error", err)
	}
}
