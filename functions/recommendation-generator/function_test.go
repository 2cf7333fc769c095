package generator

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/fitsage/server/pkg/bootstrap"
	"github.com/fitsage/server/pkg/framework"
	"github.com/fitsage/server/pkg/testing/mocks"
	"github.com/fitsage/server/pkg/types"
)

const validAIResponse = `{"candidates":[{"content":{"parts":[{"text":"{\"analysis\":{\"overall\":\"Strong session.\"},\"improvements\":[{\"area\":\"Warm-up\",\"recommendation\":\"Add ten minutes\"}],\"suggestions\":[{\"workout\":\"Tempo run\",\"description\":\"Twice a week\"}],\"safety\":[\"Watch your knees\"]}"}]}}]}`

func activityEvent(t *testing.T, act *types.Activity) event.Event {
	t.Helper()
	data, err := json.Marshal(act)
	if err != nil {
		t.Fatal(err)
	}
	var msg types.PubSubMessage
	msg.Message.Data = data

	e := event.New()
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("//pubsub.googleapis.com/test")
	if err := e.SetData(event.ApplicationJSON, msg); err != nil {
		t.Fatal(err)
	}
	return e
}

func testContext(svc *bootstrap.Service) *framework.FrameworkContext {
	return &framework.FrameworkContext{
		Service:     svc,
		Logger:      slog.Default(),
		ExecutionID: "exec-1",
	}
}

func testActivity() *types.Activity {
	return &types.Activity{Id: "a-1", UserId: "u-1", Type: "RUNNING", Duration: 45, CaloriesBurned: 400}
}

func TestGenerateHandler_StoresRecommendation(t *testing.T) {
	var stored *types.Recommendation
	db := &mocks.MockDatabase{
		SetRecommendationFunc: func(ctx context.Context, rec *types.Recommendation) error {
			stored = rec
			return nil
		},
	}
	svc := &bootstrap.Service{
		DB: db,
		AI: &mocks.MockAIClient{SendFunc: func(ctx context.Context, prompt string) (string, error) {
			return validAIResponse, nil
		}},
		Store:  &mocks.MockBlobStore{},
		Config: &bootstrap.Config{},
	}

	outputs, err := generateHandler(context.Background(), activityEvent(t, testActivity()), testContext(svc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("recommendation was not stored")
	}
	if stored.ActivityId != "a-1" || stored.UserId != "u-1" {
		t.Errorf("stored recommendation has wrong identity: %+v", stored)
	}
	if stored.Recommendation != "OverAll: Strong session." {
		t.Errorf("unexpected narrative %q", stored.Recommendation)
	}
	if len(stored.Improvements) != 1 || stored.Improvements[0] != "Warm-up: Add ten minutes" {
		t.Errorf("unexpected improvements %v", stored.Improvements)
	}
	if len(stored.Suggestions) != 1 || stored.Suggestions[0] != "Tempo run: Twice a week" {
		t.Errorf("unexpected suggestions %v", stored.Suggestions)
	}
	if len(stored.Safety) != 1 || stored.Safety[0] != "Watch your knees" {
		t.Errorf("unexpected safety advice %v", stored.Safety)
	}

	result, ok := outputs.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected outputs type %T", outputs)
	}
	if result["status"] != "SUCCESS" || result["activity_id"] != "a-1" {
		t.Errorf("unexpected outputs: %v", result)
	}
}

func TestGenerateHandler_AIFailureStillStoresDefault(t *testing.T) {
	var stored *types.Recommendation
	db := &mocks.MockDatabase{
		SetRecommendationFunc: func(ctx context.Context, rec *types.Recommendation) error {
			stored = rec
			return nil
		},
	}
	svc := &bootstrap.Service{
		DB: db,
		AI: &mocks.MockAIClient{SendFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", context.DeadlineExceeded
		}},
		Store:  &mocks.MockBlobStore{},
		Config: &bootstrap.Config{},
	}

	if _, err := generateHandler(context.Background(), activityEvent(t, testActivity()), testContext(svc)); err != nil {
		t.Fatalf("expected default recommendation instead of error, got %v", err)
	}
	if stored == nil {
		t.Fatal("default recommendation was not stored")
	}
	if len(stored.Improvements) == 0 || len(stored.Suggestions) == 0 || len(stored.Safety) == 0 {
		t.Error("default recommendation must carry non-empty advice lists")
	}
}

func TestGenerateHandler_RejectsIncompletePayload(t *testing.T) {
	svc := &bootstrap.Service{
		DB:     &mocks.MockDatabase{},
		AI:     &mocks.MockAIClient{},
		Store:  &mocks.MockBlobStore{},
		Config: &bootstrap.Config{},
	}

	_, err := generateHandler(context.Background(), activityEvent(t, &types.Activity{Type: "RUNNING"}), testContext(svc))
	if err == nil {
		t.Fatal("expected error for payload without id/userId")
	}
}

func TestGenerateHandler_NotifiesOwner(t *testing.T) {
	var notifiedUser string
	var notifiedData map[string]string
	db := &mocks.MockDatabase{
		GetUserFunc: func(ctx context.Context, id string) (*types.User, error) {
			return &types.User{Id: id, FcmTokens: []string{"tok-1"}}, nil
		},
	}
	svc := &bootstrap.Service{
		DB: db,
		AI: &mocks.MockAIClient{SendFunc: func(ctx context.Context, prompt string) (string, error) {
			return validAIResponse, nil
		}},
		Store: &mocks.MockBlobStore{},
		Notifier: &mocks.MockNotificationService{
			SendPushNotificationFunc: func(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error {
				notifiedUser = userID
				notifiedData = data
				return nil
			},
		},
		Config: &bootstrap.Config{},
	}

	outputs, err := generateHandler(context.Background(), activityEvent(t, testActivity()), testContext(svc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifiedUser != "u-1" {
		t.Errorf("expected owner notified, got %q", notifiedUser)
	}
	if notifiedData["activityId"] != "a-1" {
		t.Errorf("notification data missing activity id: %v", notifiedData)
	}
	if result := outputs.(map[string]interface{}); result["notified"] != true {
		t.Errorf("expected notified=true in outputs, got %v", result["notified"])
	}
}

func TestGenerateHandler_NotificationFailureIsNonFatal(t *testing.T) {
	db := &mocks.MockDatabase{
		GetUserFunc: func(ctx context.Context, id string) (*types.User, error) {
			return &types.User{Id: id, FcmTokens: []string{"tok-1"}}, nil
		},
	}
	svc := &bootstrap.Service{
		DB: db,
		AI: &mocks.MockAIClient{SendFunc: func(ctx context.Context, prompt string) (string, error) {
			return validAIResponse, nil
		}},
		Store: &mocks.MockBlobStore{},
		Notifier: &mocks.MockNotificationService{
			SendPushNotificationFunc: func(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error {
				return context.DeadlineExceeded
			},
		},
		Config: &bootstrap.Config{},
	}

	outputs, err := generateHandler(context.Background(), activityEvent(t, testActivity()), testContext(svc))
	if err != nil {
		t.Fatalf("expected success despite notification failure, got %v", err)
	}
	if result := outputs.(map[string]interface{}); result["notified"] != false {
		t.Errorf("expected notified=false in outputs, got %v", result["notified"])
	}
}
