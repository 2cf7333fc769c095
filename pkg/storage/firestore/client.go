package firestore

import (
	"cloud.google.com/go/firestore"

	shared "github.com/fitsage/server/pkg"
	"github.com/fitsage/server/pkg/types"
)

type Client struct {
	fs *firestore.Client
}

func NewClient(client *firestore.Client) *Client {
	return &Client{fs: client}
}

func (c *Client) Close() error {
	return c.fs.Close()
}

func (c *Client) Users() *Collection[types.User] {
	return &Collection[types.User]{
		Ref:           c.fs.Collection(shared.CollectionUsers),
		ToFirestore:   UserToFirestore,
		FromFirestore: FirestoreToUser,
	}
}

func (c *Client) Activities() *Collection[types.Activity] {
	return &Collection[types.Activity]{
		Ref:           c.fs.Collection(shared.CollectionActivities),
		ToFirestore:   ActivityToFirestore,
		FromFirestore: FirestoreToActivity,
	}
}

// Recommendations are keyed by activity id: recommendations/{activity_id}.
// Regeneration overwrites the document as a whole.
func (c *Client) Recommendations() *Collection[types.Recommendation] {
	return &Collection[types.Recommendation]{
		Ref:           c.fs.Collection(shared.CollectionRecommendations),
		ToFirestore:   RecommendationToFirestore,
		FromFirestore: FirestoreToRecommendation,
	}
}

func (c *Client) Executions() *Collection[types.ExecutionRecord] {
	return &Collection[types.ExecutionRecord]{
		Ref:           c.fs.Collection(shared.CollectionExecutions),
		ToFirestore:   ExecutionToFirestore,
		FromFirestore: FirestoreToExecution,
	}
}
