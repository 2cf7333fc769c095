package activity

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"

	shared "github.com/fitsage/server/pkg"
	infrapubsub "github.com/fitsage/server/pkg/infrastructure/pubsub"
	"github.com/fitsage/server/pkg/testing/mocks"
	"github.com/fitsage/server/pkg/types"
)

func knownUserDB() *mocks.MockDatabase {
	return &mocks.MockDatabase{
		GetUserFunc: func(ctx context.Context, id string) (*types.User, error) {
			return &types.User{Id: id, Email: "runner@example.com"}, nil
		},
	}
}

func validRequest() *TrackRequest {
	return &TrackRequest{
		UserId:         "user-1",
		Type:           "RUNNING",
		Duration:       45,
		CaloriesBurned: 400,
		StartTime:      time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC),
	}
}

func TestTrackActivity_PersistsAndPublishes(t *testing.T) {
	db := knownUserDB()
	var saved *types.Activity
	db.SetActivityFunc = func(ctx context.Context, a *types.Activity) error {
		saved = a
		return nil
	}

	var publishedTopic string
	var published event.Event
	pub := &mocks.MockPublisher{
		PublishCloudEventFunc: func(ctx context.Context, topic string, e event.Event) (string, error) {
			publishedTopic = topic
			published = e
			return "msg-1", nil
		},
	}

	svc := NewService(db, pub)
	act, err := svc.TrackActivity(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if act.Id == "" {
		t.Error("expected a generated activity id")
	}
	if saved == nil || saved.Id != act.Id {
		t.Fatal("activity was not persisted")
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	if publishedTopic != shared.TopicActivityTracked {
		t.Errorf("expected publish on %q, got %q", shared.TopicActivityTracked, publishedTopic)
	}
	if published.Type() != infrapubsub.EventTypeActivityTracked {
		t.Errorf("unexpected event type %q", published.Type())
	}
	var payload types.Activity
	if err := json.Unmarshal(published.Data(), &payload); err != nil {
		t.Fatalf("event payload not an activity: %v", err)
	}
	if payload.Id != act.Id || payload.UserId != "user-1" {
		t.Errorf("event payload mismatch: %+v", payload)
	}
}

func TestTrackActivity_PublishFailureDoesNotFailTracking(t *testing.T) {
	db := knownUserDB()
	pub := &mocks.MockPublisher{
		PublishCloudEventFunc: func(ctx context.Context, topic string, e event.Event) (string, error) {
			return "", errors.New("pubsub unavailable")
		},
	}

	svc := NewService(db, pub)
	act, err := svc.TrackActivity(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("expected tracking to succeed despite publish failure, got %v", err)
	}
	if act == nil {
		t.Fatal("expected activity returned")
	}
}

func TestTrackActivity_UnknownUser(t *testing.T) {
	svc := NewService(&mocks.MockDatabase{}, &mocks.MockPublisher{})

	_, err := svc.TrackActivity(context.Background(), validRequest())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "userId" {
		t.Errorf("expected userId rejected, got %q", verr.Field)
	}
}

func TestTrackActivity_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TrackRequest)
		field  string
	}{
		{"missing user", func(r *TrackRequest) { r.UserId = "" }, "userId"},
		{"missing type", func(r *TrackRequest) { r.Type = "" }, "type"},
		{"negative duration", func(r *TrackRequest) { r.Duration = -1 }, "duration"},
		{"negative calories", func(r *TrackRequest) { r.CaloriesBurned = -10 }, "caloriesBurned"},
	}

	svc := NewService(knownUserDB(), &mocks.MockPublisher{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := svc.TrackActivity(context.Background(), req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected %q rejected, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestGetUserActivities_EmptyIsNotError(t *testing.T) {
	db := &mocks.MockDatabase{
		ListUserActivitiesFunc: func(ctx context.Context, userId string) ([]*types.Activity, error) {
			return nil, nil
		},
	}
	svc := NewService(db, &mocks.MockPublisher{})

	activities, err := svc.GetUserActivities(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if activities == nil || len(activities) != 0 {
		t.Errorf("expected empty slice, got %v", activities)
	}
}

func TestGetActivity_NotFound(t *testing.T) {
	svc := NewService(&mocks.MockDatabase{}, &mocks.MockPublisher{})

	_, err := svc.GetActivity(context.Background(), "missing")
	if !shared.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
