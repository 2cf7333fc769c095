// Package mocks provides hand-rolled test doubles for the shared interfaces.
// Each mock delegates to an optional func field so tests override only what
// they care about.
package mocks

import (
	"context"

	"github.com/cloudevents/sdk-go/v2/event"

	shared "github.com/fitsage/server/pkg"
	"github.com/fitsage/server/pkg/types"
)

// --- Mock Database ---

type MockDatabase struct {
	GetUserFunc                   func(ctx context.Context, id string) (*types.User, error)
	GetUserByEmailFunc            func(ctx context.Context, email string) (*types.User, error)
	SetUserFunc                   func(ctx context.Context, user *types.User) error
	SetActivityFunc               func(ctx context.Context, activity *types.Activity) error
	GetActivityFunc               func(ctx context.Context, id string) (*types.Activity, error)
	ListUserActivitiesFunc        func(ctx context.Context, userId string) ([]*types.Activity, error)
	SetRecommendationFunc         func(ctx context.Context, rec *types.Recommendation) error
	GetActivityRecommendationFunc func(ctx context.Context, activityId string) (*types.Recommendation, error)
	ListUserRecommendationsFunc   func(ctx context.Context, userId string) ([]*types.Recommendation, error)
	SetExecutionFunc              func(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecutionFunc           func(ctx context.Context, id string, data map[string]interface{}) error
}

func (m *MockDatabase) GetUser(ctx context.Context, id string) (*types.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, &shared.NotFoundError{Kind: "user", ID: id}
}

func (m *MockDatabase) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return nil, &shared.NotFoundError{Kind: "user", ID: email}
}

func (m *MockDatabase) SetUser(ctx context.Context, user *types.User) error {
	if m.SetUserFunc != nil {
		return m.SetUserFunc(ctx, user)
	}
	return nil
}

func (m *MockDatabase) SetActivity(ctx context.Context, activity *types.Activity) error {
	if m.SetActivityFunc != nil {
		return m.SetActivityFunc(ctx, activity)
	}
	return nil
}

func (m *MockDatabase) GetActivity(ctx context.Context, id string) (*types.Activity, error) {
	if m.GetActivityFunc != nil {
		return m.GetActivityFunc(ctx, id)
	}
	return nil, &shared.NotFoundError{Kind: "activity", ID: id}
}

func (m *MockDatabase) ListUserActivities(ctx context.Context, userId string) ([]*types.Activity, error) {
	if m.ListUserActivitiesFunc != nil {
		return m.ListUserActivitiesFunc(ctx, userId)
	}
	return []*types.Activity{}, nil
}

func (m *MockDatabase) SetRecommendation(ctx context.Context, rec *types.Recommendation) error {
	if m.SetRecommendationFunc != nil {
		return m.SetRecommendationFunc(ctx, rec)
	}
	return nil
}

func (m *MockDatabase) GetActivityRecommendation(ctx context.Context, activityId string) (*types.Recommendation, error) {
	if m.GetActivityRecommendationFunc != nil {
		return m.GetActivityRecommendationFunc(ctx, activityId)
	}
	return nil, &shared.NotFoundError{Kind: "recommendation", ID: activityId}
}

func (m *MockDatabase) ListUserRecommendations(ctx context.Context, userId string) ([]*types.Recommendation, error) {
	if m.ListUserRecommendationsFunc != nil {
		return m.ListUserRecommendationsFunc(ctx, userId)
	}
	return []*types.Recommendation{}, nil
}

func (m *MockDatabase) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	if m.SetExecutionFunc != nil {
		return m.SetExecutionFunc(ctx, record)
	}
	return nil
}

func (m *MockDatabase) UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error {
	if m.UpdateExecutionFunc != nil {
		return m.UpdateExecutionFunc(ctx, id, data)
	}
	return nil
}

// --- Mock Publisher ---

type MockPublisher struct {
	PublishCloudEventFunc func(ctx context.Context, topic string, e event.Event) (string, error)
}

func (m *MockPublisher) PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error) {
	if m.PublishCloudEventFunc != nil {
		return m.PublishCloudEventFunc(ctx, topic, e)
	}
	return "msg-id", nil
}

// --- Mock Storage ---

type MockBlobStore struct {
	WriteFunc func(ctx context.Context, bucket, object string, data []byte) error
	ReadFunc  func(ctx context.Context, bucket, object string) ([]byte, error)
}

func (m *MockBlobStore) Write(ctx context.Context, bucket, object string, data []byte) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, bucket, object, data)
	}
	return nil
}

func (m *MockBlobStore) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, bucket, object)
	}
	return []byte("mock-data"), nil
}

// --- Mock AI Client ---

type MockAIClient struct {
	SendFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *MockAIClient) Send(ctx context.Context, prompt string) (string, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, prompt)
	}
	return "{}", nil
}

// --- Mock Notifications ---

type MockNotificationService struct {
	SendPushNotificationFunc func(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error
}

func (m *MockNotificationService) SendPushNotification(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error {
	if m.SendPushNotificationFunc != nil {
		return m.SendPushNotificationFunc(ctx, userID, title, body, tokens, data)
	}
	return nil
}
