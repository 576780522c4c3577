// Package catalog holds the static symptom taxonomy and condition knowledge
// base. Both are read-only after Load; a process shares one instance with no
// locking.
package catalog

import "fmt"

// Catalog bundles the taxonomy and knowledge base behind one validated load.
type Catalog struct {
	symptoms   []Symptom
	conditions []ConditionEntry
}

// Load validates the given tables and returns an immutable catalog.
// Malformed catalog data is a programming error: callers are expected to
// abort startup on a non-nil error rather than continue degraded.
func Load(symptoms []Symptom, conditions []ConditionEntry) (*Catalog, error) {
	if len(symptoms) == 0 {
		return nil, fmt.Errorf("catalog: symptom taxonomy is empty")
	}
	for i, s := range symptoms {
		if s.Label == "" {
			return nil, fmt.Errorf("catalog: symptom %d has an empty label", i)
		}
		if s.Category == "" {
			return nil, fmt.Errorf("catalog: symptom %q has no category", s.Label)
		}
	}

	if len(conditions) == 0 {
		return nil, fmt.Errorf("catalog: condition knowledge base is empty")
	}
	for i, c := range conditions {
		if c.Condition == "" {
			return nil, fmt.Errorf("catalog: condition %d has an empty name", i)
		}
		if len(c.SignatureSymptoms) == 0 {
			return nil, fmt.Errorf("catalog: condition %q has no signature symptoms", c.Condition)
		}
		// Prior zero means unweighted; anything else must sit in (0,1].
		if c.Prior < 0 || c.Prior > 1 {
			return nil, fmt.Errorf("catalog: condition %q prior %v out of range", c.Condition, c.Prior)
		}
		if len(c.Recommendations) == 0 {
			return nil, fmt.Errorf("catalog: condition %q has no recommendations", c.Condition)
		}
	}

	return &Catalog{symptoms: symptoms, conditions: conditions}, nil
}

// LoadDefault loads the built-in taxonomy and knowledge base.
func LoadDefault() (*Catalog, error) {
	return Load(defaultSymptoms, defaultConditions)
}

// Symptoms returns the taxonomy in catalog order.
func (c *Catalog) Symptoms() []Symptom {
	return c.symptoms
}

// Conditions returns the knowledge base in catalog order.
func (c *Catalog) Conditions() []ConditionEntry {
	return c.conditions
}
