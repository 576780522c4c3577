package catalog

import "health-ai-server/internal/models"

// ConditionEntry is one knowledge-base row: a condition, the symptoms that
// signal it, and the advisory content returned when it matches. Entries are
// loaded once at startup and immutable thereafter.
//
// Prior optionally attenuates the overlap score; it must lie in (0, 1].
// The zero value means "unweighted" and scores pass through unchanged.
type ConditionEntry struct {
	Condition         string
	SignatureSymptoms []string
	BaseSeverity      models.Severity
	BaseUrgency       models.Urgency
	Prior             float64
	Description       string
	Recommendations   []string
	Sources           []string
}

// defaultConditions is the built-in knowledge base. Content is advisory and
// deliberately conservative; it is not a diagnostic reference.
var defaultConditions = []ConditionEntry{
	{
		Condition:         "Cardiac concern",
		SignatureSymptoms: []string{"Chest pain", "Shortness of breath", "Dizziness"},
		BaseSeverity:      models.SeveritySevere,
		BaseUrgency:       models.UrgencyHigh,
		Description:       "Chest pain together with breathing difficulty can indicate a heart problem.",
		Recommendations: []string{
			"Seek urgent medical attention",
			"Avoid physical exertion until evaluated",
			"Do not drive yourself to a facility",
		},
		Sources: []string{"WHO cardiovascular disease fact sheet", "AHA warning signs guidance"},
	},
	{
		Condition:         "Possible stroke",
		SignatureSymptoms: []string{"Numbness", "Slurred speech", "Confusion", "Blurred vision"},
		BaseSeverity:      models.SeveritySevere,
		BaseUrgency:       models.UrgencyHigh,
		Description:       "Sudden neurological changes can indicate reduced blood flow to the brain.",
		Recommendations: []string{
			"Seek urgent medical attention",
			"Note the time symptoms started",
		},
		Sources: []string{"WHO stroke overview"},
	},
	{
		Condition:         "Influenza",
		SignatureSymptoms: []string{"Fever", "Cough", "Muscle aches", "Fatigue", "Chills"},
		BaseSeverity:      models.SeverityModerate,
		BaseUrgency:       models.UrgencyMedium,
		Description:       "A viral infection with fever, body aches and respiratory symptoms.",
		Recommendations: []string{
			"Rest and drink plenty of fluids",
			"Monitor your temperature",
			"See a health worker if symptoms worsen after three days",
		},
		Sources: []string{"WHO influenza fact sheet"},
	},
	{
		Condition:         "Common cold",
		SignatureSymptoms: []string{"Runny nose", "Sore throat", "Cough", "Headache"},
		BaseSeverity:      models.SeverityMild,
		BaseUrgency:       models.UrgencyLow,
		Prior:             0.9,
		Description:       "A mild viral infection of the nose and throat.",
		Recommendations: []string{
			"Rest and drink plenty of fluids",
			"Warm salt-water gargles can ease a sore throat",
		},
		Sources: []string{"NHS common cold guidance"},
	},
	{
		Condition:         "Asthma flare-up",
		SignatureSymptoms: []string{"Wheezing", "Shortness of breath", "Chest tightness", "Cough"},
		BaseSeverity:      models.SeverityModerate,
		BaseUrgency:       models.UrgencyMedium,
		Description:       "Narrowed airways causing wheeze and breathlessness.",
		Recommendations: []string{
			"Use a prescribed reliever inhaler if available",
			"Sit upright and try to keep calm",
			"Seek urgent care if breathing does not improve",
		},
		Sources: []string{"GINA patient guide"},
	},
	{
		Condition:         "Pneumonia",
		SignatureSymptoms: []string{"Fever", "Cough", "Shortness of breath", "Chest pain", "Chills"},
		BaseSeverity:      models.SeveritySevere,
		BaseUrgency:       models.UrgencyHigh,
		Description:       "A lung infection that inflames the air sacs, which may fill with fluid.",
		Recommendations: []string{
			"See a health worker promptly",
			"Rest and drink plenty of fluids",
		},
		Sources: []string{"WHO pneumonia fact sheet"},
	},
	{
		Condition:         "Gastroenteritis",
		SignatureSymptoms: []string{"Nausea", "Vomiting", "Diarrhea", "Abdominal pain", "Fever"},
		BaseSeverity:      models.SeverityModerate,
		BaseUrgency:       models.UrgencyMedium,
		Description:       "Irritation of the stomach and intestines, commonly from infection.",
		Recommendations: []string{
			"Take small sips of oral rehydration solution",
			"Avoid solid food until vomiting settles",
			"Seek care if there are signs of dehydration",
		},
		Sources: []string{"WHO diarrhoeal disease fact sheet"},
	},
	{
		Condition:         "Dehydration",
		SignatureSymptoms: []string{"Dehydration", "Dizziness", "Fatigue", "Confusion"},
		BaseSeverity:      models.SeverityModerate,
		BaseUrgency:       models.UrgencyMedium,
		Description:       "The body losing more fluid than it takes in.",
		Recommendations: []string{
			"Take small sips of oral rehydration solution",
			"Rest in a cool place",
		},
		Sources: []string{"WHO rehydration guidance"},
	},
	{
		Condition:         "Migraine",
		SignatureSymptoms: []string{"Headache", "Sensitivity to light", "Nausea", "Blurred vision"},
		BaseSeverity:      models.SeverityModerate,
		BaseUrgency:       models.UrgencyLow,
		Description:       "A recurring headache disorder, often one-sided and throbbing.",
		Recommendations: []string{
			"Rest in a quiet, dark room",
			"Keep a note of possible triggers",
		},
		Sources: []string{"WHO headache disorders fact sheet"},
	},
	{
		Condition:         "Generalized anxiety",
		SignatureSymptoms: []string{"Anxiety", "Trouble sleeping", "Irritability", "Difficulty concentrating", "Palpitations"},
		BaseSeverity:      models.SeverityMild,
		BaseUrgency:       models.UrgencyLow,
		Description:       "Persistent worry that interferes with daily activities.",
		Recommendations: []string{
			"Practice slow breathing exercises",
			"Keep a regular sleep routine",
			"Talk to a health worker about available support",
		},
		Sources: []string{"WHO mental health resources"},
	},
	{
		Condition:         "Depressive episode",
		SignatureSymptoms: []string{"Low mood", "Loss of interest", "Fatigue", "Trouble sleeping", "Loss of appetite"},
		BaseSeverity:      models.SeverityModerate,
		BaseUrgency:       models.UrgencyMedium,
		Description:       "A sustained period of low mood and reduced energy.",
		Recommendations: []string{
			"Talk to a health worker about available support",
			"Stay connected with people you trust",
		},
		Sources: []string{"WHO depression fact sheet"},
	},
	{
		Condition:         "Arthritis flare",
		SignatureSymptoms: []string{"Joint pain", "Stiffness", "Swelling"},
		BaseSeverity:      models.SeverityMild,
		BaseUrgency:       models.UrgencyLow,
		Description:       "Joint inflammation causing pain and restricted movement.",
		Recommendations: []string{
			"Apply a cold compress to swollen joints",
			"Gentle movement helps prevent stiffness",
		},
		Sources: []string{"NHS arthritis guidance"},
	},
}
