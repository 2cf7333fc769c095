// Package activity implements fitness activity tracking.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	shared "github.com/fitsage/server/pkg"
	infrapubsub "github.com/fitsage/server/pkg/infrastructure/pubsub"
	"github.com/fitsage/server/pkg/types"
)

// TrackRequest is the inbound payload for tracking an activity.
type TrackRequest struct {
	UserId            string                 `json:"userId"`
	Type              string                 `json:"type"`
	Duration          int                    `json:"duration"`
	CaloriesBurned    int                    `json:"caloriesBurned"`
	StartTime         time.Time              `json:"startTime"`
	AdditionalMetrics map[string]interface{} `json:"additionalMetrics,omitempty"`
}

// ValidationError reports a rejected track request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type Service struct {
	db  shared.Database
	pub shared.Publisher
}

func NewService(db shared.Database, pub shared.Publisher) *Service {
	return &Service{db: db, pub: pub}
}

// TrackActivity validates and persists an activity, then publishes an
// activity.tracked event that feeds the recommendation pipeline. Publish
// failures are logged but do not fail tracking; recommendations are a
// best-effort companion to the activity record.
func (s *Service) TrackActivity(ctx context.Context, req *TrackRequest) (*types.Activity, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	// The user must exist; an unknown user is a client error, not a
	// storage miss.
	if _, err := s.db.GetUser(ctx, req.UserId); err != nil {
		if shared.IsNotFound(err) {
			return nil, &ValidationError{Field: "userId", Reason: "unknown user"}
		}
		return nil, fmt.Errorf("validate user: %w", err)
	}

	now := time.Now().UTC()
	act := &types.Activity{
		Id:                uuid.NewString(),
		UserId:            req.UserId,
		Type:              req.Type,
		Duration:          req.Duration,
		CaloriesBurned:    req.CaloriesBurned,
		StartTime:         req.StartTime,
		AdditionalMetrics: req.AdditionalMetrics,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.db.SetActivity(ctx, act); err != nil {
		return nil, fmt.Errorf("save activity: %w", err)
	}

	s.publishTracked(ctx, act)

	return act, nil
}

// GetUserActivities lists a user's activities, empty slice if none.
func (s *Service) GetUserActivities(ctx context.Context, userId string) ([]*types.Activity, error) {
	activities, err := s.db.ListUserActivities(ctx, userId)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []*types.Activity{}
	}
	return activities, nil
}

// GetActivity fetches a single activity; NotFound when the id is unknown.
func (s *Service) GetActivity(ctx context.Context, activityId string) (*types.Activity, error) {
	return s.db.GetActivity(ctx, activityId)
}

func (s *Service) publishTracked(ctx context.Context, act *types.Activity) {
	e, err := infrapubsub.NewCloudEvent(infrapubsub.EventSourceActivityService, infrapubsub.EventTypeActivityTracked, act)
	if err != nil {
		slog.Error("Failed to build activity.tracked event", "activity_id", act.Id, "error", err)
		return
	}

	msgID, err := s.pub.PublishCloudEvent(ctx, shared.TopicActivityTracked, e)
	if err != nil {
		slog.Error("Failed to publish activity.tracked event", "activity_id", act.Id, "error", err)
		return
	}
	slog.Info("Published activity.tracked", "activity_id", act.Id, "message_id", msgID)
}

func validate(req *TrackRequest) error {
	if req.UserId == "" {
		return &ValidationError{Field: "userId", Reason: "required"}
	}
	if req.Type == "" {
		return &ValidationError{Field: "type", Reason: "required"}
	}
	if req.Duration < 0 {
		return &ValidationError{Field: "duration", Reason: "must be non-negative"}
	}
	if req.CaloriesBurned < 0 {
		return &ValidationError{Field: "caloriesBurned", Reason: "must be non-negative"}
	}
	return nil
}
