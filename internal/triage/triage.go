// Package triage implements the symptom triage decision engine: an ordered
// keyword table mapping free-text messages to urgency levels and guidance.
// It is a deterministic substring matcher, not a diagnostic tool.
package triage

import "strings"

// UrgencyLevel is one of five ordered severity tiers.
type UrgencyLevel string

const (
	UrgencyEmergency UrgencyLevel = "emergency"
	UrgencyUrgent    UrgencyLevel = "urgent"
	UrgencyModerate  UrgencyLevel = "moderate"
	UrgencyRoutine   UrgencyLevel = "routine"
	UrgencyInfo      UrgencyLevel = "info"
)

// severityRank orders levels most severe first. Used only to sanity-check
// the pattern table ordering in tests.
var severityRank = map[UrgencyLevel]int{
	UrgencyEmergency: 0,
	UrgencyUrgent:    1,
	UrgencyModerate:  2,
	UrgencyRoutine:   3,
	UrgencyInfo:      4,
}

// Pattern maps a keyword set to canned guidance.
type Pattern struct {
	Keywords     []string
	UrgencyLevel UrgencyLevel
	Category     string
	Response     string
	FollowUp     []string
}

// Result is the structured assessment for one message.
type Result struct {
	UrgencyLevel         UrgencyLevel `json:"urgencyLevel"`
	Category             string       `json:"category"`
	Response             string       `json:"response"`
	FollowUp             []string     `json:"followUp"`
	ShowContactButton    bool         `json:"showContactButton"`
	ShowEmergencyWarning bool         `json:"showEmergencyWarning"`
}

// Classify maps a free-text message to a triage result. It is total: any
// input, including the empty string, produces a result.
//
// Greetings are checked before the symptom table. The table is scanned in
// order with emergency patterns first, so a message containing both an
// emergency keyword and a lower-severity keyword always classifies as
// emergency. Matching is substring-based on purpose: recall over precision.
func Classify(message string) Result {
	// The Hebrew keyword table is unaffected by lowercasing; kept as a
	// safety net should Latin-script keywords be added.
	normalized := strings.ToLower(message)

	for _, greeting := range greetingTokens {
		if strings.Contains(normalized, greeting) {
			return greetingResult
		}
	}

	for _, pattern := range symptomPatterns {
		for _, keyword := range pattern.Keywords {
			if strings.Contains(normalized, keyword) {
				return Result{
					UrgencyLevel:         pattern.UrgencyLevel,
					Category:             pattern.Category,
					Response:             pattern.Response,
					FollowUp:             pattern.FollowUp,
					ShowContactButton:    pattern.UrgencyLevel != UrgencyEmergency,
					ShowEmergencyWarning: pattern.UrgencyLevel == UrgencyEmergency,
				}
			}
		}
	}

	return defaultResult
}

// UrgencyLabel returns the display string for an urgency level. Total over
// the closed enum.
func UrgencyLabel(level UrgencyLevel) string {
	return urgencyLabels[level]
}

var urgencyLabels = map[UrgencyLevel]string{
	UrgencyEmergency: "חירום - פנו מיד לטיפול רפואי",
	UrgencyUrgent:    "דחוף - מומלץ לפנות לרופא היום",
	UrgencyModerate:  "מתון - מומלץ לקבוע תור בקרוב",
	UrgencyRoutine:   "שגרתי - ניתן לקבוע תור",
	UrgencyInfo:      "מידע",
}
