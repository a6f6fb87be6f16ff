package elephantlog

import "strings"

// State is one of the recognized Indian states.
type State string

// The five Central Indian states records are restricted to.
const (
	MadhyaPradesh State = "Madhya Pradesh"
	Chhattisgarh  State = "Chhattisgarh"
	Telangana     State = "Telangana"
	AndhraPradesh State = "Andhra Pradesh"
	Maharashtra   State = "Maharashtra"
)

// RecognizedStates returns the default state restriction in a stable order.
func RecognizedStates() []State {
	return []State{MadhyaPradesh, Chhattisgarh, Telangana, AndhraPradesh, Maharashtra}
}

// ParseState returns the recognized state matching name, ignoring case and
// surrounding whitespace.
func ParseState(name string) (State, bool) {
	name = strings.TrimSpace(name)
	for _, s := range RecognizedStates() {
		if strings.EqualFold(name, string(s)) {
			return s, true
		}
	}
	return "", false
}

// Location is the administrative hierarchy an incident was resolved to.
// State is always one of the recognized states; finer levels are empty
// when the text names no recognizable place at that level.
type Location struct {
	State    State  `json:"state"`
	District string `json:"district,omitempty"`
	Block    string `json:"block,omitempty"`
	Village  string `json:"village,omitempty"`
}

// IsZero reports whether the location is unresolved.
func (l Location) IsZero() bool {
	return l.State == ""
}
