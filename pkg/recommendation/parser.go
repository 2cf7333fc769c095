package recommendation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParsedSections is the decoded AI payload before assembly into a
// Recommendation.
type ParsedSections struct {
	Narrative    string
	Improvements []string
	Suggestions  []string
	Safety       []string
}

// envelope mirrors the provider's response wrapper. Only the first
// candidate's first text part is used.
type envelope struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// analysisSections fixes both the label text and the order the narrative is
// assembled in. Keys absent from the payload are skipped silently.
var analysisSections = []struct {
	key   string
	label string
}{
	{"overall", "OverAll: "},
	{"pace", "Pace: "},
	{"heartRate", "Heart Rate: "},
	{"caloriesBurned", "Calories: "},
}

// sectionFallbacks substitutes a single-element list for any section the
// payload left absent or empty. Adding an extractable list section means
// adding a row here.
var sectionFallbacks = map[string]string{
	"improvements": "No specific improvements provided",
	"suggestions":  "No specific Suggestions provided",
	"safety":       "Follow general safety protocols",
}

// ParseResponse decodes a raw provider response into sections.
//
// The provider double-encodes the payload: the outer envelope is JSON whose
// candidates[0].content.parts[0].text value is itself a JSON document,
// sometimes wrapped in a markdown code fence. Both decode steps can fail and
// the caller is expected to fall back; once the inner document parses,
// extraction never fails, it only degrades per section.
func ParseResponse(raw string) (*ParsedSections, error) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("parse response envelope: %w", err)
	}

	if len(env.Candidates) == 0 || len(env.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("response envelope has no candidate text")
	}
	text := env.Candidates[0].Content.Parts[0].Text

	cleaned := strings.ReplaceAll(text, "```json\n", "")
	cleaned = strings.ReplaceAll(cleaned, "\n```", "")
	cleaned = strings.TrimSpace(cleaned)

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, fmt.Errorf("parse inner payload: %w", err)
	}

	return &ParsedSections{
		Narrative:    extractNarrative(doc),
		Improvements: orFallback(extractPairs(doc, "improvements", "area", "recommendation"), "improvements"),
		Suggestions:  orFallback(extractPairs(doc, "suggestions", "workout", "description"), "suggestions"),
		Safety:       orFallback(extractStrings(doc, "safety"), "safety"),
	}, nil
}

func extractNarrative(doc map[string]interface{}) string {
	analysis, _ := doc["analysis"].(map[string]interface{})

	var b strings.Builder
	for _, section := range analysisSections {
		value, ok := analysis[section.key]
		if !ok {
			continue
		}
		b.WriteString(section.label)
		b.WriteString(asString(value))
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

// extractPairs walks an array of objects and formats each as "key: value".
// Items that are not objects, or objects missing either field, degrade to
// empty strings around the separator rather than dropping the item.
func extractPairs(doc map[string]interface{}, section, leftKey, rightKey string) []string {
	items, _ := doc[section].([]interface{})

	var out []string
	for _, item := range items {
		obj, _ := item.(map[string]interface{})
		out = append(out, fmt.Sprintf("%s: %s", asString(obj[leftKey]), asString(obj[rightKey])))
	}
	return out
}

func extractStrings(doc map[string]interface{}, section string) []string {
	items, _ := doc[section].([]interface{})

	var out []string
	for _, item := range items {
		out = append(out, asString(item))
	}
	return out
}

func orFallback(items []string, section string) []string {
	if len(items) > 0 {
		return items
	}
	return []string{sectionFallbacks[section]}
}

// asString coerces JSON scalars to their text form; objects, arrays and nil
// become "".
func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
