package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fitsage/server/pkg/activity"
	"github.com/fitsage/server/pkg/recommendation"
	"github.com/fitsage/server/pkg/testing/mocks"
	"github.com/fitsage/server/pkg/types"
	"github.com/fitsage/server/pkg/user"
)

func newTestServer(db *mocks.MockDatabase) *Server {
	return NewServer(
		activity.NewService(db, &mocks.MockPublisher{}),
		user.NewService(db),
		recommendation.NewQueryService(db),
		nil,
	)
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestTrackActivityEndpoint(t *testing.T) {
	db := &mocks.MockDatabase{
		GetUserFunc: func(ctx context.Context, id string) (*types.User, error) {
			return &types.User{Id: id}, nil
		},
	}
	srv := newTestServer(db)

	rec := doRequest(t, srv, http.MethodPost, "/api/activities", activity.TrackRequest{
		UserId:         "user-1",
		Type:           "CYCLING",
		Duration:       60,
		CaloriesBurned: 550,
		StartTime:      time.Now().UTC(),
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created types.Activity
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Id == "" || created.UserId != "user-1" {
		t.Errorf("unexpected response body: %+v", created)
	}
}

func TestTrackActivityEndpoint_Validation(t *testing.T) {
	srv := newTestServer(&mocks.MockDatabase{})

	rec := doRequest(t, srv, http.MethodPost, "/api/activities", activity.TrackRequest{
		UserId: "", Type: "RUNNING",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/activities", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", rec.Code)
	}
}

func TestListActivitiesEndpoint(t *testing.T) {
	db := &mocks.MockDatabase{
		ListUserActivitiesFunc: func(ctx context.Context, userId string) ([]*types.Activity, error) {
			return []*types.Activity{{Id: "a-1", UserId: userId}}, nil
		},
	}
	srv := newTestServer(db)

	rec := doRequest(t, srv, http.MethodGet, "/api/activities?userId=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []*types.Activity
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Id != "a-1" {
		t.Errorf("unexpected list: %+v", list)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/activities", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without userId, got %d", rec.Code)
	}
}

func TestGetActivityEndpoint_NotFound(t *testing.T) {
	srv := newTestServer(&mocks.MockDatabase{})

	rec := doRequest(t, srv, http.MethodGet, "/api/activities/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestActivityRecommendationEndpoint(t *testing.T) {
	db := &mocks.MockDatabase{
		GetActivityRecommendationFunc: func(ctx context.Context, activityId string) (*types.Recommendation, error) {
			return &types.Recommendation{ActivityId: activityId, Recommendation: "Solid effort."}, nil
		},
	}
	srv := newTestServer(db)

	rec := doRequest(t, srv, http.MethodGet, "/api/recommendations/activity/a-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got types.Recommendation
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ActivityId != "a-1" {
		t.Errorf("unexpected body: %+v", got)
	}
}

func TestActivityRecommendationEndpoint_NotFound(t *testing.T) {
	srv := newTestServer(&mocks.MockDatabase{})

	rec := doRequest(t, srv, http.MethodGet, "/api/recommendations/activity/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserRecommendationsEndpoint_EmptyList(t *testing.T) {
	srv := newTestServer(&mocks.MockDatabase{})

	rec := doRequest(t, srv, http.MethodGet, "/api/recommendations/user/user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestRegisterEndpoint(t *testing.T) {
	srv := newTestServer(&mocks.MockDatabase{})

	rec := doRequest(t, srv, http.MethodPost, "/api/users/register", user.RegisterRequest{
		Email:    "runner@example.com",
		Password: "s3cret-pw",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("s3cret")) {
		t.Error("response must not leak the password")
	}
}

func TestRegisterEndpoint_Conflict(t *testing.T) {
	db := &mocks.MockDatabase{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*types.User, error) {
			return &types.User{Id: "existing", Email: email}, nil
		},
	}
	srv := newTestServer(db)

	rec := doRequest(t, srv, http.MethodPost, "/api/users/register", user.RegisterRequest{
		Email:    "runner@example.com",
		Password: "s3cret-pw",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestValidateUserEndpoint(t *testing.T) {
	db := &mocks.MockDatabase{
		GetUserFunc: func(ctx context.Context, id string) (*types.User, error) {
			return &types.User{Id: id}, nil
		},
	}
	srv := newTestServer(db)

	rec := doRequest(t, srv, http.MethodGet, "/api/users/user-1/validate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if !payload["valid"] {
		t.Error("expected valid=true")
	}

	rec = doRequest(t, newTestServer(&mocks.MockDatabase{}), http.MethodGet, "/api/users/absent/validate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown user, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload["valid"] {
		t.Error("expected valid=false for unknown user")
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&mocks.MockDatabase{})
	rec := doRequest(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
