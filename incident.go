package elephantlog

import (
	"slices"
	"strings"
)

// IncidentType labels the nature of a reported elephant event.
type IncidentType string

// Incident types.
const (
	IncidentSighting       IncidentType = "sighting"
	IncidentAttack         IncidentType = "attack"
	IncidentDeath          IncidentType = "death"
	IncidentCropDamage     IncidentType = "crop_damage"
	IncidentPropertyDamage IncidentType = "property_damage"
	IncidentConflict       IncidentType = "conflict"
	IncidentOther          IncidentType = "other"
)

// IncidentPrecedence returns all incident types in tie-break order,
// most severe first.
func IncidentPrecedence() []IncidentType {
	return []IncidentType{
		IncidentDeath,
		IncidentAttack,
		IncidentConflict,
		IncidentCropDamage,
		IncidentPropertyDamage,
		IncidentSighting,
		IncidentOther,
	}
}

// ParseIncidentType returns the incident type named by s.
// Spaces and hyphens are accepted in place of underscores.
func ParseIncidentType(s string) (IncidentType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	for _, t := range IncidentPrecedence() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// DamageType is a category of damage caused by elephants.
type DamageType string

// Damage types.
const (
	DamageCrop     DamageType = "crop"
	DamageProperty DamageType = "property"
	DamageOther    DamageType = "other"
)

// DamageTypes returns all damage types in canonical order.
func DamageTypes() []DamageType {
	return []DamageType{DamageCrop, DamageProperty, DamageOther}
}

// DamageSet is a set of damage types kept in canonical order.
type DamageSet []DamageType

// NewDamageSet returns the set of the given types in canonical order,
// dropping duplicates.
func NewDamageSet(types ...DamageType) DamageSet {
	var set DamageSet
	for _, t := range DamageTypes() {
		if slices.Contains(types, t) {
			set = append(set, t)
		}
	}
	return set
}

// Has reports whether t is in the set.
func (s DamageSet) Has(t DamageType) bool {
	return slices.Contains(s, t)
}

// String joins the set for the Damage column, e.g. "crop, property".
func (s DamageSet) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// ParseDamageSet parses the form produced by DamageSet.String.
// Unknown entries are ignored.
func ParseDamageSet(s string) DamageSet {
	var types []DamageType
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		for _, t := range DamageTypes() {
			if part == string(t) {
				types = append(types, t)
			}
		}
	}
	return NewDamageSet(types...)
}

// Counts holds numbers extracted from article text.
// A nil field means the text never stated it; zero means it was stated as zero.
type Counts struct {
	ElephantCount  *int `json:"elephantCount,omitempty"`
	HumanDeaths    *int `json:"humanDeaths,omitempty"`
	ElephantDeaths *int `json:"elephantDeaths,omitempty"`
}

// Classification is the incident label and damage categories for an article.
type Classification struct {
	IncidentType IncidentType `json:"incidentType"`
	Damage       DamageSet    `json:"damage"`
}

// IncidentRecord is one accepted article in canonical form.
// Records are never mutated after assembly.
type IncidentRecord struct {
	Date           Date         `json:"date"`
	Location       Location     `json:"location"`
	ElephantCount  *int         `json:"elephantCount,omitempty"`
	IncidentType   IncidentType `json:"incidentType"`
	HumanDeaths    int          `json:"humanDeaths"`
	ElephantDeaths int          `json:"elephantDeaths"`
	Damage         DamageSet    `json:"damage"`
	Source         string       `json:"source"`
	URL            string       `json:"url"`
}

// Validate returns an error if the record breaks a schema invariant.
func (r *IncidentRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	if r.Location.State == "" {
		return Errorf(EINVALID, "record state required")
	}
	if r.HumanDeaths < 0 || r.ElephantDeaths < 0 {
		return Errorf(EINVALID, "record death counts must be non-negative")
	}
	if r.ElephantCount != nil && *r.ElephantCount < 0 {
		return Errorf(EINVALID, "record elephant count must be non-negative")
	}
	return nil
}

// Int returns a pointer to n.
func Int(n int) *int {
	return &n
}
