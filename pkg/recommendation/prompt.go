package recommendation

import (
	"fmt"

	"github.com/fitsage/server/pkg/types"
)

// promptTemplate is a contract with the AI provider: the reply schema it
// spells out is what the parser expects to unwrap. Keep the two in sync.
const promptTemplate = `Analyze this fitness activity and provide detailed recommendations in the following EXACT JSON format:
{
  "analysis": {
    "overall": "Overall analysis here",
    "pace": "Pace analysis here",
    "heartRate": "Heart rate analysis here",
    "caloriesBurned": "Calories analysis here"
  },
  "improvements": [
    {
      "area": "Area name",
      "recommendation": "Detailed recommendation"
    }
  ],
  "suggestions": [
    {
      "workout": "Workout name",
      "description": "Detailed workout description"
    }
  ],
  "safety": [
    "Safety point 1",
    "Safety point 2"
  ]
}

Analyze this activity:
Activity Type: %s
Duration: %d minutes
Calories Burned: %d
Additional Metrics: %v

Provide detailed analysis focusing on performance, improvements, next workout suggestions, and safety guidelines.
Ensure the response follows the EXACT JSON format shown above.`

// BuildPrompt renders the activity into the instruction prompt. Pure; the
// same activity always produces the same text.
func BuildPrompt(activity *types.Activity) string {
	return fmt.Sprintf(promptTemplate,
		activity.Type,
		activity.Duration,
		activity.CaloriesBurned,
		activity.AdditionalMetrics,
	)
}
