package firestore

import (
	"time"

	"github.com/fitsage/server/pkg/types"
)

// Helper to safely get string from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Helper to safely get int from map (Firestore stores integers as int64)
func getInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case int64:
			return int(n)
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return 0
}

// Helper to safely get time from map (handles time.Time from Firestore)
func getTime(m map[string]interface{}, key string) time.Time {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// Helper to safely get a string slice from map
func getStringSlice(m map[string]interface{}, key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mv, ok := v.(map[string]interface{}); ok {
			return mv
		}
	}
	return nil
}

// --- User Converters ---

func UserToFirestore(u *types.User) map[string]interface{} {
	m := map[string]interface{}{
		"user_id":    u.Id,
		"email":      u.Email,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
	if u.PasswordHash != "" {
		m["password_hash"] = u.PasswordHash
	}
	if u.FirstName != "" {
		m["first_name"] = u.FirstName
	}
	if u.LastName != "" {
		m["last_name"] = u.LastName
	}
	if len(u.FcmTokens) > 0 {
		m["fcm_tokens"] = u.FcmTokens
	}
	return m
}

func FirestoreToUser(m map[string]interface{}) *types.User {
	return &types.User{
		Id:           getString(m, "user_id"),
		Email:        getString(m, "email"),
		PasswordHash: getString(m, "password_hash"),
		FirstName:    getString(m, "first_name"),
		LastName:     getString(m, "last_name"),
		FcmTokens:    getStringSlice(m, "fcm_tokens"),
		CreatedAt:    getTime(m, "created_at"),
		UpdatedAt:    getTime(m, "updated_at"),
	}
}

// --- Activity Converters ---

func ActivityToFirestore(a *types.Activity) map[string]interface{} {
	m := map[string]interface{}{
		"activity_id":     a.Id,
		"user_id":         a.UserId,
		"type":            a.Type,
		"duration":        a.Duration,
		"calories_burned": a.CaloriesBurned,
		"start_time":      a.StartTime,
		"created_at":      a.CreatedAt,
		"updated_at":      a.UpdatedAt,
	}
	if len(a.AdditionalMetrics) > 0 {
		m["additional_metrics"] = a.AdditionalMetrics
	}
	return m
}

func FirestoreToActivity(m map[string]interface{}) *types.Activity {
	return &types.Activity{
		Id:                getString(m, "activity_id"),
		UserId:            getString(m, "user_id"),
		Type:              getString(m, "type"),
		Duration:          getInt(m, "duration"),
		CaloriesBurned:    getInt(m, "calories_burned"),
		StartTime:         getTime(m, "start_time"),
		AdditionalMetrics: getMap(m, "additional_metrics"),
		CreatedAt:         getTime(m, "created_at"),
		UpdatedAt:         getTime(m, "updated_at"),
	}
}

// --- Recommendation Converters ---

func RecommendationToFirestore(r *types.Recommendation) map[string]interface{} {
	return map[string]interface{}{
		"activity_id":    r.ActivityId,
		"user_id":        r.UserId,
		"activity_type":  r.ActivityType,
		"recommendation": r.Recommendation,
		"improvements":   r.Improvements,
		"suggestions":    r.Suggestions,
		"safety":         r.Safety,
		"created_at":     r.CreatedAt,
	}
}

func FirestoreToRecommendation(m map[string]interface{}) *types.Recommendation {
	return &types.Recommendation{
		ActivityId:     getString(m, "activity_id"),
		UserId:         getString(m, "user_id"),
		ActivityType:   getString(m, "activity_type"),
		Recommendation: getString(m, "recommendation"),
		Improvements:   getStringSlice(m, "improvements"),
		Suggestions:    getStringSlice(m, "suggestions"),
		Safety:         getStringSlice(m, "safety"),
		CreatedAt:      getTime(m, "created_at"),
	}
}

// --- ExecutionRecord Converters ---

func ExecutionToFirestore(e *types.ExecutionRecord) map[string]interface{} {
	m := map[string]interface{}{
		"execution_id": e.ExecutionId,
		"service":      e.Service,
		"trigger_type": e.TriggerType,
		"status":       e.Status,
		"started_at":   e.StartedAt,
	}
	if e.UserId != "" {
		m["user_id"] = e.UserId
	}
	if e.Error != "" {
		m["error"] = e.Error
	}
	if !e.CompletedAt.IsZero() {
		m["completed_at"] = e.CompletedAt
	}
	return m
}

func FirestoreToExecution(m map[string]interface{}) *types.ExecutionRecord {
	return &types.ExecutionRecord{
		ExecutionId: getString(m, "execution_id"),
		Service:     getString(m, "service"),
		UserId:      getString(m, "user_id"),
		TriggerType: getString(m, "trigger_type"),
		Status:      getString(m, "status"),
		Error:       getString(m, "error"),
		StartedAt:   getTime(m, "started_at"),
		CompletedAt: getTime(m, "completed_at"),
	}
}
