package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shared "github.com/fitsage/server/pkg"
	storage "github.com/fitsage/server/pkg/storage/firestore"
	"github.com/fitsage/server/pkg/types"
)

// FirestoreAdapter provides database operations using Firestore.
// It wraps our typed storage client and translates Firestore's NotFound
// status into shared.NotFoundError.
type FirestoreAdapter struct {
	Client  *firestore.Client
	storage *storage.Client // internal typed wrapper
}

func NewFirestoreAdapter(client *firestore.Client) *FirestoreAdapter {
	return &FirestoreAdapter{
		Client:  client,
		storage: storage.NewClient(client),
	}
}

func notFoundOr(err error, kind, id string) error {
	if status.Code(err) == codes.NotFound {
		return &shared.NotFoundError{Kind: kind, ID: id}
	}
	return err
}

// --- Users ---

func (a *FirestoreAdapter) GetUser(ctx context.Context, id string) (*types.User, error) {
	user, err := a.storage.Users().Doc(id).Get(ctx)
	if err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	return user, nil
}

func (a *FirestoreAdapter) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	users, err := a.storage.Users().Where(ctx, "email", email)
	if err != nil {
		return nil, fmt.Errorf("query users by email: %w", err)
	}
	if len(users) == 0 {
		return nil, &shared.NotFoundError{Kind: "user", ID: email}
	}
	return users[0], nil
}

func (a *FirestoreAdapter) SetUser(ctx context.Context, user *types.User) error {
	return a.storage.Users().Doc(user.Id).Set(ctx, user)
}

// --- Activities ---

func (a *FirestoreAdapter) SetActivity(ctx context.Context, activity *types.Activity) error {
	return a.storage.Activities().Doc(activity.Id).Set(ctx, activity)
}

func (a *FirestoreAdapter) GetActivity(ctx context.Context, id string) (*types.Activity, error) {
	activity, err := a.storage.Activities().Doc(id).Get(ctx)
	if err != nil {
		return nil, notFoundOr(err, "activity", id)
	}
	return activity, nil
}

func (a *FirestoreAdapter) ListUserActivities(ctx context.Context, userId string) ([]*types.Activity, error) {
	return a.storage.Activities().Where(ctx, "user_id", userId)
}

// --- Recommendations ---

func (a *FirestoreAdapter) SetRecommendation(ctx context.Context, rec *types.Recommendation) error {
	return a.storage.Recommendations().Doc(rec.ActivityId).Set(ctx, rec)
}

func (a *FirestoreAdapter) GetActivityRecommendation(ctx context.Context, activityId string) (*types.Recommendation, error) {
	rec, err := a.storage.Recommendations().Doc(activityId).Get(ctx)
	if err != nil {
		return nil, notFoundOr(err, "recommendation", activityId)
	}
	return rec, nil
}

func (a *FirestoreAdapter) ListUserRecommendations(ctx context.Context, userId string) ([]*types.Recommendation, error) {
	return a.storage.Recommendations().Where(ctx, "user_id", userId)
}

// --- Executions ---

func (a *FirestoreAdapter) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	return a.storage.Executions().Doc(record.ExecutionId).Set(ctx, record)
}

func (a *FirestoreAdapter) UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error {
	return a.storage.Executions().Doc(id).Update(ctx, data)
}
