package shared

import (
	"context"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/fitsage/server/pkg/types"
)

// --- Persistence Interfaces ---

type Database interface {
	// Users
	GetUser(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	SetUser(ctx context.Context, user *types.User) error

	// Activities
	SetActivity(ctx context.Context, activity *types.Activity) error
	GetActivity(ctx context.Context, id string) (*types.Activity, error)
	ListUserActivities(ctx context.Context, userId string) ([]*types.Activity, error)

	// Recommendations (one per activity, keyed by activity id)
	SetRecommendation(ctx context.Context, rec *types.Recommendation) error
	GetActivityRecommendation(ctx context.Context, activityId string) (*types.Recommendation, error)
	ListUserRecommendations(ctx context.Context, userId string) ([]*types.Recommendation, error)

	// Executions
	SetExecution(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error
}

// --- Messaging Interfaces ---

type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}

// --- Storage Interfaces ---

type BlobStore interface {
	Write(ctx context.Context, bucket, object string, data []byte) error
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}

// --- AI Interfaces ---

// AIClient sends a text prompt to a generative model endpoint and returns
// the raw response body. Callers own all interpretation of that text.
type AIClient interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// --- Notification Interfaces ---

type NotificationService interface {
	SendPushNotification(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error
}
