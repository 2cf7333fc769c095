// Package generator is the Pub/Sub-triggered worker that turns tracked
// activities into stored coaching recommendations.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/fitsage/server/pkg/bootstrap"
	"github.com/fitsage/server/pkg/framework"
	"github.com/fitsage/server/pkg/infrastructure/notifications"
	"github.com/fitsage/server/pkg/recommendation"
	"github.com/fitsage/server/pkg/types"
)

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.CloudEvent("GenerateRecommendation", GenerateRecommendation)
}

func initService(ctx context.Context) (*bootstrap.Service, error) {
	if svc != nil {
		return svc, nil
	}
	svcOnce.Do(func() {
		svc, svcErr = bootstrap.NewService(ctx)
		if svcErr != nil {
			slog.Error("Failed to initialize service", "error", svcErr)
		}
	})
	return svc, svcErr
}

// GenerateRecommendation is the entry point
func GenerateRecommendation(ctx context.Context, e event.Event) error {
	svc, err := initService(ctx)
	if err != nil {
		return fmt.Errorf("service init failed: %v", err)
	}
	return framework.WrapCloudEvent("recommendation-generator", svc, generateHandler)(ctx, e)
}

// generateHandler contains the business logic
func generateHandler(ctx context.Context, e event.Event, fwCtx *framework.FrameworkContext) (interface{}, error) {
	var msg types.PubSubMessage
	if err := e.DataAs(&msg); err != nil {
		return nil, fmt.Errorf("event.DataAs: %v", err)
	}

	var activity types.Activity
	if err := json.Unmarshal(msg.Message.Data, &activity); err != nil {
		return nil, fmt.Errorf("unmarshal activity payload: %v", err)
	}
	if activity.Id == "" || activity.UserId == "" {
		return nil, fmt.Errorf("activity payload missing id or userId")
	}

	fwCtx.Logger.Info("Generating recommendation", "activity_id", activity.Id, "activity_type", activity.Type)

	gen := recommendation.NewGenerator(fwCtx.Service.AI, fwCtx.Service.Store, fwCtx.Service.Config.GCSArtifactBucket)
	rec := gen.Generate(ctx, &activity)

	if err := fwCtx.Service.DB.SetRecommendation(ctx, rec); err != nil {
		return nil, fmt.Errorf("save recommendation: %v", err)
	}

	// Push notification is best-effort; the recommendation is already
	// stored and queryable.
	notified := false
	if fwCtx.Service.Notifier != nil {
		if err := notifications.NotifyRecommendationReady(ctx, fwCtx.Service.Notifier, fwCtx.Service.DB, rec); err != nil {
			fwCtx.Logger.Warn("Failed to notify user", "error", err)
		} else {
			notified = true
		}
	}

	return map[string]interface{}{
		"status":        "SUCCESS",
		"activity_id":   rec.ActivityId,
		"activity_type": rec.ActivityType,
		"notified":      notified,
	}, nil
}
