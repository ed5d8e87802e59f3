package triage

// The symptom table below is the clinic's medical decision tree, ordered by
// urgency with every emergency pattern before any lower tier. First match
// wins, so within a tier order decides which category claims overlapping
// keywords. Maintainers adding patterns must keep the tier ordering; the
// package tests enforce it.
var symptomPatterns = []Pattern{
	// EMERGENCY - requires immediate medical attention
	{
		Keywords:     []string{"קוצר נשימה", "קושי לנשום", "נחנק", "לא מצליח לנשום", "התנפחות גרון"},
		UrgencyLevel: UrgencyEmergency,
		Category:     "חירום נשימתי",
		Response:     "סימנים אלו עלולים להצביע על תגובה אלרגית חמורה. במקרה חירום יש לפנות לרופא המטפל או לחייג 101 לקבלת סיוע.",
		FollowUp: []string{
			"חייגו 101 לקבלת סיוע",
			"פנו לרופא המטפל",
		},
	},
	{
		Keywords:     []string{"נפיחות בלשון", "לשון נפוחה", "שפתיים נפוחות", "נפיחות בפנים", "נפיחות בגרון"},
		UrgencyLevel: UrgencyEmergency,
		Category:     "אנגיואדמה",
		Response:     "נפיחות באזור הפנים, שפתיים, לשון או גרון היא סימן לתגובה אלרגית חמורה. במקרה חירום יש לפנות לרופא המטפל או לחייג 101 לקבלת סיוע.",
		FollowUp: []string{
			"חייגו 101 לקבלת סיוע",
			"פנו לרופא המטפל",
		},
	},
	{
		Keywords:     []string{"עילפון", "התעלפתי", "איבוד הכרה", "סחרחורת חזקה", "חיוורון חמור"},
		UrgencyLevel: UrgencyEmergency,
		Category:     "אנפילקסיס",
		Response:     "עילפון או סחרחורת חזקה עלולים להעיד על תגובה אנפילקטית. במקרה חירום יש לפנות לרופא המטפל או לחייג 101 לקבלת סיוע.",
		FollowUp: []string{
			"חייגו 101 לקבלת סיוע",
			"פנו לרופא המטפל",
		},
	},
	{
		Keywords:     []string{"אנפילקסיס", "הלם אלרגי", "תגובה אנפילקטית"},
		UrgencyLevel: UrgencyEmergency,
		Category:     "אנפילקסיס",
		Response:     "אנפילקסיס הוא מצב חירום מסכן חיים. במקרה חירום יש לפנות לרופא המטפל או לחייג 101 לקבלת סיוע.",
		FollowUp: []string{
			"חייגו 101 לקבלת סיוע",
			"פנו לרופא המטפל",
		},
	},

	// URGENT - needs medical attention within hours
	{
		Keywords:     []string{"פריחה מפושטת", "פריחה בכל הגוף", "אורטיקריה חמורה", "סרפדת קשה"},
		UrgencyLevel: UrgencyUrgent,
		Category:     "תגובה עורית חמורה",
		Response:     "פריחה מפושטת עלולה להעיד על תגובה אלרגית משמעותית. מומלץ לפנות לרופא בהקדם לאבחון וטיפול.",
		FollowUp: []string{
			"הימנעו מהחשוד כגורם לתגובה",
			"קחו אנטיהיסטמין אם אפשרי",
			"פנו לרופא היום",
		},
	},
	{
		Keywords:     []string{"הקאות", "הקאה", "בחילות חזקות", "כאבי בטן חזקים"},
		UrgencyLevel: UrgencyUrgent,
		Category:     "תגובה במערכת העיכול",
		Response:     "הקאות או כאבי בטן חזקים לאחר אכילה עלולים להעיד על אלרגיה למזון. יש לפנות לרופא לאבחון.",
		FollowUp: []string{
			"הפסיקו לאכול את המזון החשוד",
			"שתו נוזלים לאט",
			"פנו לרופא אם לא משתפר",
		},
	},
	{
		Keywords:     []string{"נפיחות", "התנפחות", "בצקת"},
		UrgencyLevel: UrgencyUrgent,
		Category:     "בצקת אלרגית",
		Response:     "נפיחות מקומית עלולה להעיד על תגובה אלרגית. חשוב לעקוב אחר התפתחות הנפיחות ולפנות לרופא.",
		FollowUp: []string{
			"עקבו אחר התפשטות הנפיחות",
			"צרו קשר עם רופא",
			"אם מתפשט לפנים/גרון - פנו למיון",
		},
	},
	{
		Keywords:     []string{"עקיצת דבורה", "עקיצת צרעה", "עקיצה", "דבורה", "צרעה"},
		UrgencyLevel: UrgencyUrgent,
		Category:     "אלרגיה לעקיצות",
		Response:     "תגובה לעקיצת דבורה או צרעה דורשת מעקב. אם יש תגובה מעבר למקום העקיצה, יש לפנות לרופא.",
		FollowUp: []string{
			"הסירו את העוקץ אם נשאר",
			"קררו את האזור",
			"עקבו אחר תגובות נוספות",
		},
	},

	// MODERATE - should see a doctor soon
	{
		Keywords:     []string{"גרד", "מגרד", "גירוד", "עור מגרד"},
		UrgencyLevel: UrgencyModerate,
		Category:     "גרד אלרגי",
		Response:     "גרד עלול להיות סימן לאלרגיה או רגישות עורית. מומלץ להתייעץ עם מומחה לאלרגיה לאבחון הסיבה.",
		FollowUp: []string{
			"הימנעו מגירוד",
			"מרחו קרם מרגיע",
			"קבעו תור לאבחון",
		},
	},
	{
		Keywords:     []string{"פריחה", "אדמומיות", "אגזמה", "עור יבש"},
		UrgencyLevel: UrgencyModerate,
		Category:     "תגובה עורית",
		Response:     "פריחה או אדמומיות עלולות להעיד על אלרגיה עורית. אבחון מקצועי יעזור לזהות את הגורם ולקבל טיפול מתאים.",
		FollowUp: []string{
			"תעדו מתי הופיעה הפריחה",
			"חשבו מה נגעתם/אכלתם",
			"קבעו תור לבדיקה",
		},
	},
	{
		Keywords:     []string{"אסטמה", "התקף אסטמה", "צפצופים", "שיעול כרוני"},
		UrgencyLevel: UrgencyModerate,
		Category:     "אסטמה אלרגית",
		Response:     "אסטמה אלרגית מצריכה מעקב וטיפול קבוע. מומלץ לקבוע תור לבדיקה ובניית תוכנית טיפול.",
		FollowUp: []string{
			"השתמשו במשאף אם יש",
			"הימנעו מטריגרים ידועים",
			"קבעו תור לייעוץ",
		},
	},
	{
		Keywords:     []string{"נזלת", "עיניים דומעות", "גודש באף", "קדחת השחת", "אביב"},
		UrgencyLevel: UrgencyModerate,
		Category:     "אלרגיה עונתית",
		Response:     "תסמיני אלרגיה עונתית (נזלת, עיניים דומעות) ניתנים לטיפול יעיל. מומלץ להתייעץ לגבי טיפול מונע.",
		FollowUp: []string{
			"נסו אנטיהיסטמין ללא מרשם",
			"הימנעו מיציאה בשעות אבקה גבוהה",
			"שקלו בדיקת אלרגיה",
		},
	},

	// ROUTINE - can schedule a regular appointment
	{
		Keywords:     []string{"בדיקת אלרגיה", "בדיקה", "אבחון", "לבדוק אם יש לי"},
		UrgencyLevel: UrgencyRoutine,
		Category:     "בדיקות אלרגיה",
		Response:     "בדיקות אלרגיה כוללות מבחני עור ובדיקות דם שיכולים לזהות רגישות לאלרגנים שונים. ד״ר ברמלי מבצעת מגוון בדיקות אלרגיה לילדים.",
		FollowUp: []string{
			"קבעו תור לייעוץ ראשוני",
			"הביאו רשימת תסמינים",
			"ציינו מזונות/חומרים חשודים",
		},
	},
	{
		Keywords:     []string{"אלרגיה למזון", "אלרגיה לחלב", "אלרגיה לביצים", "אלרגיה לבוטנים", "אלרגיה לאגוזים", "אלרגיה לחיטה", "אלרגיה לדגים"},
		UrgencyLevel: UrgencyRoutine,
		Category:     "אלרגיה למזון",
		Response:     "אלרגיות מזון נפוצות בילדים וניתנות לאבחון באמצעות בדיקות ייעודיות. אבחון מדויק מאפשר ניהול בטוח של התזונה.",
		FollowUp: []string{
			"רשמו תגובות לאחר אכילה",
			"הימנעו מהמזון החשוד עד לאבחון",
			"קבעו תור לבדיקת אלרגיה",
		},
	},
	{
		Keywords:     []string{"אלרגיה לתרופות", "תגובה לתרופה", "אלרגיה לאנטיביוטיקה", "אלרגיה לפניצילין"},
		UrgencyLevel: UrgencyRoutine,
		Category:     "אלרגיה לתרופות",
		Response:     "אלרגיה לתרופות דורשת אבחון מקצועי. חשוב לתעד את התרופה והתגובה. ד״ר ברמלי מתמחה באבחון אלרגיות לתרופות.",
		FollowUp: []string{
			"שמרו על שם התרופה המדויק",
			"תעדו את סוג התגובה",
			"קבעו תור לייעוץ",
		},
	},
	{
		Keywords:     []string{"ילד", "ילדים", "תינוק", "פעוט"},
		UrgencyLevel: UrgencyRoutine,
		Category:     "אלרגיות בילדים",
		Response:     "אלרגיות בילדים דורשות טיפול מותאם גיל. ד״ר ברמלי מתמחה בטיפול באלרגיות בילדים ומעניקה יחס חם ומקצועי.",
		FollowUp: []string{
			"קבעו תור לייעוץ",
			"הביאו מידע על התסמינים",
			"ציינו היסטוריה משפחתית",
		},
	},

	// INFO - general information
	{
		Keywords:     []string{"תור", "לקבוע תור", "פגישה", "ביקור"},
		UrgencyLevel: UrgencyInfo,
		Category:     "קביעת תור",
		Response:     "ניתן לקבוע תור עם ד״ר אנה ברמלי בטלפון 03-1234567 או באמצעות טופס הפנייה באתר. המרפאה פועלת בימים א׳-ה׳.",
		FollowUp: []string{
			"מלאו את טופס הפנייה",
			"או התקשרו ל-03-1234567",
		},
	},
	{
		Keywords:     []string{"מחיר", "עלות", "כמה עולה", "תשלום"},
		UrgencyLevel: UrgencyInfo,
		Category:     "מידע מנהלתי",
		Response:     "לפרטים על עלויות ומחירים, אנא צרו קשר ישירות עם המרפאה בטלפון 03-1234567.",
		FollowUp: []string{
			"התקשרו למרפאה לפרטים",
			"שאלו על הסכמי קופות חולים",
		},
	},
	{
		Keywords:     []string{"כתובת", "איפה", "מיקום", "מרפאה"},
		UrgencyLevel: UrgencyInfo,
		Category:     "מידע על המרפאה",
		Response:     "המרפאה ממוקמת ברחוב הרצל 45, תל אביב. ניתן להגיע בתחבורה ציבורית או ברכב פרטי (חניון בסמוך).",
		FollowUp: []string{
			"ראו מפה באתר",
			"יש חניה בסמוך",
		},
	},
	{
		Keywords:     []string{"שעות", "פתוח", "שעות קבלה"},
		UrgencyLevel: UrgencyInfo,
		Category:     "שעות פעילות",
		Response:     "שעות הפעילות של המרפאה: ימים א׳-ה׳ 08:00-18:00. מומלץ לתאם תור מראש.",
		FollowUp: []string{
			"קבעו תור מראש",
			"התקשרו בשעות הפעילות",
		},
	},
}

// greetingTokens short-circuit the symptom scan entirely.
var greetingTokens = []string{"שלום", "היי", "הי", "בוקר טוב", "ערב טוב", "מה שלומך"}

var greetingResult = Result{
	UrgencyLevel: UrgencyInfo,
	Category:     "ברכה",
	Response:     "שלום וברוכים הבאים! אני העוזר הדיגיטלי של ד״ר אנה ברמלי, מומחית לאלרגיה ואימונולוגיה. כיצד אוכל לעזור לך היום? ספרו לי על התסמינים או השאלות שלכם.",
	FollowUp: []string{
		"ספרו על התסמינים",
		"שאלו שאלות על אלרגיות",
		"קבעו תור",
	},
	ShowContactButton:    false,
	ShowEmergencyWarning: false,
}

var defaultResult = Result{
	UrgencyLevel: UrgencyInfo,
	Category:     "שאלה כללית",
	Response:     "תודה על פנייתך. על מנת לקבל מענה מדויק לשאלתך, מומלץ לקבוע תור לייעוץ אישי עם ד״ר אנה ברמלי. היא תוכל לבחון את המקרה הספציפי שלך ולתת הנחיות מותאמות.",
	FollowUp: []string{
		"קבעו תור לייעוץ אישי",
		"התקשרו ל-03-1234567",
		"או מלאו את טופס הפנייה",
	},
	ShowContactButton:    true,
	ShowEmergencyWarning: false,
}
