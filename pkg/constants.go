package shared

const (
	ProjectID = "fitsage-project" // Can be overridden by env var in main if needed

	TopicActivityTracked = "topic-activity-tracked" // Recommendation pipeline entry point

	CollectionUsers           = "users"
	CollectionActivities      = "activities"
	CollectionRecommendations = "recommendations"
	CollectionExecutions      = "executions"
)
