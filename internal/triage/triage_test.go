package triage

import "testing"

func TestEmergencyKeywordClassifiesEmergency(t *testing.T) {
	result := Classify("קוצר נשימה")
	if result.UrgencyLevel != UrgencyEmergency {
		t.Fatalf("expected emergency, got %s", result.UrgencyLevel)
	}
	if !result.ShowEmergencyWarning {
		t.Error("expected emergency warning")
	}
	if result.ShowContactButton {
		t.Error("contact button must be hidden for emergencies")
	}
}

func TestEmergencyShortCircuitsLowerSeverity(t *testing.T) {
	// Both an emergency keyword and a routine keyword: emergency must win
	// regardless of position in the message.
	messages := []string{
		"יש לי נזלת וגם קוצר נשימה",
		"רציתי לקבוע תור אבל פתאום נפיחות בלשון",
		"הבן שלי סובל מגרד ועכשיו איבוד הכרה",
	}
	for _, msg := range messages {
		result := Classify(msg)
		if result.UrgencyLevel != UrgencyEmergency {
			t.Errorf("Classify(%q) = %s, want emergency", msg, result.UrgencyLevel)
		}
	}
}

func TestDefaultFallback(t *testing.T) {
	for _, msg := range []string{"", "asdkjasd"} {
		result := Classify(msg)
		if result.UrgencyLevel != UrgencyInfo {
			t.Errorf("Classify(%q) urgency = %s, want info", msg, result.UrgencyLevel)
		}
		if result.Category != "שאלה כללית" {
			t.Errorf("Classify(%q) category = %s, want default", msg, result.Category)
		}
		if !result.ShowContactButton {
			t.Errorf("Classify(%q) should show contact button", msg)
		}
		if result.ShowEmergencyWarning {
			t.Errorf("Classify(%q) should not warn", msg)
		}
	}
}

func TestGreetingPrecedesSymptomScan(t *testing.T) {
	result := Classify("שלום")
	if result.Category != "ברכה" {
		t.Fatalf("expected greeting category, got %s", result.Category)
	}

	// A greeting token anywhere in the message wins even when a symptom
	// keyword co-occurs; the greeting check runs before the pattern scan.
	result = Classify("שלום, יש לי פריחה")
	if result.Category != "ברכה" {
		t.Fatalf("greeting must precede symptom scan, got category %s", result.Category)
	}
	if result.ShowContactButton {
		t.Error("greeting result does not force the contact button")
	}
}

func TestSubstringOverMatchIsIntentional(t *testing.T) {
	// "נפיחות" matches inside "התנפחות" by design: the matcher trades
	// precision for recall. This fixture documents the known over-match.
	result := Classify("יש התנפחות קלה ביד")
	if result.UrgencyLevel != UrgencyUrgent {
		t.Fatalf("expected urgent via substring match, got %s / %s", result.UrgencyLevel, result.Category)
	}
	if result.Category != "בצקת אלרגית" {
		t.Fatalf("unexpected category %s", result.Category)
	}

	// The greeting token "הי" likewise fires inside longer words; that
	// behavior is accepted for the same reason.
	if got := Classify("הילד התעטש"); got.Category != "ברכה" {
		t.Fatalf("expected greeting over-match, got %s", got.Category)
	}
}

func TestSpecificEmergencyCategories(t *testing.T) {
	tests := []struct {
		message  string
		category string
	}{
		{"התנפחות גרון", "חירום נשימתי"},
		{"שפתיים נפוחות", "אנגיואדמה"},
		{"התעלפתי הבוקר", "אנפילקסיס"},
		{"הלם אלרגי", "אנפילקסיס"},
	}
	for _, tc := range tests {
		result := Classify(tc.message)
		if result.UrgencyLevel != UrgencyEmergency {
			t.Errorf("Classify(%q) = %s, want emergency", tc.message, result.UrgencyLevel)
		}
		if result.Category != tc.category {
			t.Errorf("Classify(%q) category = %s, want %s", tc.message, result.Category, tc.category)
		}
	}
}

func TestLowerTiers(t *testing.T) {
	tests := []struct {
		message string
		level   UrgencyLevel
	}{
		{"פריחה מפושטת בכל הגוף", UrgencyUrgent},
		{"עקיצת דבורה אתמול", UrgencyUrgent},
		{"העור מגרד לי", UrgencyModerate},
		{"נזלת ועיניים דומעות", UrgencyModerate},
		{"אפשר לעשות בדיקת אלרגיה?", UrgencyRoutine},
		{"אלרגיה לבוטנים אצל הבת שלי", UrgencyRoutine},
		{"כמה עולה ביקור?", UrgencyInfo},
	}
	for _, tc := range tests {
		result := Classify(tc.message)
		if result.UrgencyLevel != tc.level {
			t.Errorf("Classify(%q) = %s (%s), want %s", tc.message, result.UrgencyLevel, result.Category, tc.level)
		}
	}
}

func TestPatternTableOrderedBySeverity(t *testing.T) {
	// The safety contract: every emergency pattern precedes every urgent
	// pattern, and so on down the tiers.
	prev := 0
	for i, p := range symptomPatterns {
		rank, ok := severityRank[p.UrgencyLevel]
		if !ok {
			t.Fatalf("pattern %d has unknown urgency %q", i, p.UrgencyLevel)
		}
		if rank < prev {
			t.Fatalf("pattern %d (%s, %s) out of severity order", i, p.UrgencyLevel, p.Category)
		}
		prev = rank
	}
}

func TestUrgencyLabelTotal(t *testing.T) {
	levels := []UrgencyLevel{UrgencyEmergency, UrgencyUrgent, UrgencyModerate, UrgencyRoutine, UrgencyInfo}
	for _, level := range levels {
		if UrgencyLabel(level) == "" {
			t.Errorf("UrgencyLabel(%s) is empty", level)
		}
	}
}

func TestResultCopiesPatternFields(t *testing.T) {
	result := Classify("אסטמה")
	if result.Category != "אסטמה אלרגית" {
		t.Fatalf("unexpected category %s", result.Category)
	}
	if len(result.FollowUp) != 3 {
		t.Fatalf("expected 3 follow-up actions, got %d", len(result.FollowUp))
	}
	if result.Response == "" {
		t.Fatal("expected canned response text")
	}
}
