package catalog

// SymptomCategory groups symptoms by body system for presentation.
type SymptomCategory string

const (
	CategoryRespiratory      SymptomCategory = "Respiratory"
	CategoryCardiovascular   SymptomCategory = "Cardiovascular"
	CategoryNeurological     SymptomCategory = "Neurological"
	CategoryGastrointestinal SymptomCategory = "Gastrointestinal"
	CategoryMusculoskeletal  SymptomCategory = "Musculoskeletal"
	CategoryMentalHealth     SymptomCategory = "MentalHealth"
	CategoryGeneral          SymptomCategory = "General"
)

// Symptom is an immutable taxonomy entry. A label may legitimately appear
// under more than one category ("Dizziness" is both cardiovascular and
// neurological); matching is by label alone, regardless of category.
type Symptom struct {
	Label    string          `json:"label"`
	Category SymptomCategory `json:"category"`
}

// defaultSymptoms is the built-in symptom taxonomy presented to patients.
var defaultSymptoms = []Symptom{
	{"Cough", CategoryRespiratory},
	{"Shortness of breath", CategoryRespiratory},
	{"Wheezing", CategoryRespiratory},
	{"Sore throat", CategoryRespiratory},
	{"Runny nose", CategoryRespiratory},
	{"Chest tightness", CategoryRespiratory},

	{"Chest pain", CategoryCardiovascular},
	{"Palpitations", CategoryCardiovascular},
	{"Dizziness", CategoryCardiovascular},
	{"Swollen ankles", CategoryCardiovascular},
	{"Cold sweats", CategoryCardiovascular},

	{"Headache", CategoryNeurological},
	{"Dizziness", CategoryNeurological},
	{"Numbness", CategoryNeurological},
	{"Blurred vision", CategoryNeurological},
	{"Confusion", CategoryNeurological},
	{"Slurred speech", CategoryNeurological},
	{"Sensitivity to light", CategoryNeurological},

	{"Nausea", CategoryGastrointestinal},
	{"Vomiting", CategoryGastrointestinal},
	{"Diarrhea", CategoryGastrointestinal},
	{"Abdominal pain", CategoryGastrointestinal},
	{"Loss of appetite", CategoryGastrointestinal},
	{"Bloating", CategoryGastrointestinal},

	{"Joint pain", CategoryMusculoskeletal},
	{"Muscle aches", CategoryMusculoskeletal},
	{"Back pain", CategoryMusculoskeletal},
	{"Stiffness", CategoryMusculoskeletal},
	{"Swelling", CategoryMusculoskeletal},

	{"Anxiety", CategoryMentalHealth},
	{"Low mood", CategoryMentalHealth},
	{"Trouble sleeping", CategoryMentalHealth},
	{"Irritability", CategoryMentalHealth},
	{"Difficulty concentrating", CategoryMentalHealth},
	{"Loss of interest", CategoryMentalHealth},

	{"Fever", CategoryGeneral},
	{"Fatigue", CategoryGeneral},
	{"Chills", CategoryGeneral},
	{"Weight loss", CategoryGeneral},
	{"Night sweats", CategoryGeneral},
	{"Dehydration", CategoryGeneral},
}
