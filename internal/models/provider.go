package models

// Provider is a registered healthcare provider a patient can route an
// assessment to. Provider lifecycle (onboarding, verification) is managed
// outside this subsystem; here the directory is read-only reference data.
type Provider struct {
	BaseModel
	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255;not null" json:"email"`
}
