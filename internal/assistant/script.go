package assistant

// The guided conversation is closed-vocabulary: a fixed question sequence
// with preset options, plus canned terminal responses. Free text gets the
// single fallback response unless triage routing is enabled.

// Question is one scripted step with its preset options.
type Question struct {
	Text    string
	Options []string
}

var scriptedQuestions = []Question{
	{
		Text: "מה מביא אתכם אלינו היום?",
		Options: []string{
			"תסמיני אלרגיה",
			"שאלות על בדיקות אלרגיה",
			"מעקב אחרי טיפול",
			"משהו אחר",
		},
	},
	{
		Text: "האם מופיע כרגע אחד מהתסמינים הבאים?",
		Options: []string{
			"קוצר נשימה חמור",
			"נפיחות בלשון או בשפתיים",
			"עילפון או סחרחורת חזקה",
			"אף אחד מאלה",
		},
	},
	{
		Text: "כמה זמן נמשכים התסמינים?",
		Options: []string{
			"פחות מיממה",
			"מספר ימים",
			"יותר משבוע",
			"חודשים או יותר",
		},
	},
}

// emergencyTriggers short-circuit the script to the emergency terminal.
// Matched as substrings of the chosen option, independent of the triage
// pattern table: this is a smaller hardcoded safety list.
var emergencyTriggers = []string{"קוצר נשימה חמור", "נפיחות בלשון", "עילפון"}

const (
	welcomeText = "שלום! אני העוזר הדיגיטלי של ד״ר אנה ברמלי. אעזור לכם להבין האם כדאי לפנות לבדיקה מקצועית. נתחיל?"

	emergencyText = "התסמינים שתיארתם עלולים להעיד על תגובה אלרגית חמורה. במקרה חירום יש לחייג 101 או לפנות מיד למיון. אל תחכו - פנו לקבלת עזרה רפואית עכשיו."

	recommendationText = "על סמך התשובות שלכם, מומלץ לקבוע תור לבדיקה אצל מומחית לאלרגיה. אבחון מקצועי יעזור לזהות את הגורם ולבנות תוכנית טיפול מתאימה."

	ctaText = "רוצים לקבוע תור עם ד״ר אנה ברמלי?"

	thankYouText = "תודה! אם תצטרכו עזרה נוספת, אני כאן. שמרו על עצמכם!"

	fallbackText = "תודה על ההודעה! לשאלות מפורטות מומלץ לקבוע תור לייעוץ אישי עם ד״ר ברמלי, או להשתמש בכפתורי הבחירה למעלה."
)

const (
	ctaOptionBook  = "כן, אשמח לקבוע תור"
	ctaOptionLater = "תודה, אחזור מאוחר יותר"
)

var ctaOptions = []string{ctaOptionBook, ctaOptionLater}
