// Package types holds the domain records shared across services.
package types

import "time"

// Activity is a tracked fitness activity. It is created by the activity
// service and treated as read-only everywhere else.
type Activity struct {
	Id                string                 `json:"id"`
	UserId            string                 `json:"userId"`
	Type              string                 `json:"type"`
	Duration          int                    `json:"duration"`
	CaloriesBurned    int                    `json:"caloriesBurned"`
	StartTime         time.Time              `json:"startTime"`
	AdditionalMetrics map[string]interface{} `json:"additionalMetrics,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// Recommendation is the coaching feedback produced for a single activity.
// It is written exactly once; regenerating replaces the document wholesale
// rather than mutating it.
type Recommendation struct {
	ActivityId     string    `json:"activityId"`
	UserId         string    `json:"userId"`
	ActivityType   string    `json:"activityType"`
	Recommendation string    `json:"recommendation"`
	Improvements   []string  `json:"improvements"`
	Suggestions    []string  `json:"suggestions"`
	Safety         []string  `json:"safety"`
	CreatedAt      time.Time `json:"createdAt"`
}

// User is a registered account.
type User struct {
	Id           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	FcmTokens    []string  `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Execution statuses recorded by the framework wrapper.
const (
	ExecutionStatusStarted = "started"
	ExecutionStatusSuccess = "success"
	ExecutionStatusFailed  = "failed"
)

// ExecutionRecord tracks a single function invocation for observability.
type ExecutionRecord struct {
	ExecutionId string
	Service     string
	UserId      string
	TriggerType string
	Status      string
	Error       string
	StartedAt   time.Time
	CompletedAt time.Time
}

// PubSubMessage is the envelope delivered to CloudEvent-triggered functions
// by the Pub/Sub push adapter.
type PubSubMessage struct {
	Message struct {
		Data       []byte            `json:"data"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
