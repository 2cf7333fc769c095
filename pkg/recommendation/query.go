package recommendation

import (
	"context"

	shared "github.com/fitsage/server/pkg"
	"github.com/fitsage/server/pkg/types"
)

// QueryService answers read requests for stored recommendations.
type QueryService struct {
	db shared.Database
}

func NewQueryService(db shared.Database) *QueryService {
	return &QueryService{db: db}
}

// GetUserRecommendations lists all recommendations for a user. A user with
// none gets an empty slice, not an error.
func (s *QueryService) GetUserRecommendations(ctx context.Context, userId string) ([]*types.Recommendation, error) {
	recs, err := s.db.ListUserRecommendations(ctx, userId)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []*types.Recommendation{}
	}
	return recs, nil
}

// GetActivityRecommendation looks up the recommendation for one activity.
// Unlike generation, this surfaces NotFound: the caller asked about a
// specific artifact and there is no sensible default to invent.
func (s *QueryService) GetActivityRecommendation(ctx context.Context, activityId string) (*types.Recommendation, error) {
	return s.db.GetActivityRecommendation(ctx, activityId)
}
