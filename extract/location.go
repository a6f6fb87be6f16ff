package extract

import (
	"regexp"
	"slices"
	"strings"

	"github.com/fwojciec/elephantlog"
)

// LocationResolver maps place mentions in article text to a state and,
// when recognizable, a district, block, and village.
type LocationResolver struct {
	gazetteer *Gazetteer
	states    []elephantlog.State
}

// NewLocationResolver returns a resolver restricted to states.
func NewLocationResolver(g *Gazetteer, states []elephantlog.State) *LocationResolver {
	return &LocationResolver{gazetteer: g, states: states}
}

// Resolve returns the location named by text.
//
// The state with the most distinct place mentions at any level wins; ties go
// to the state mentioned first. Finer levels come from gazetteer matches
// within the winning state and must agree with the chosen parent. When the
// gazetteer knows no block or village, "X village" and "X block" phrases in
// the text fill them. Returns false when no allowed state is mentioned.
func (r *LocationResolver) Resolve(text string) (elephantlog.Location, bool) {
	mentions := r.gazetteer.Mentions(text)

	type tally struct {
		places int
		first  int
	}
	tallies := make(map[elephantlog.State]*tally)
	for _, m := range mentions {
		if !slices.Contains(r.states, m.Place.State) {
			continue
		}
		t, ok := tallies[m.Place.State]
		if !ok {
			tallies[m.Place.State] = &tally{places: 1, first: m.Pos}
			continue
		}
		t.places++
		t.first = min(t.first, m.Pos)
	}

	var winner elephantlog.State
	var best *tally
	for _, s := range r.states {
		t, ok := tallies[s]
		if !ok {
			continue
		}
		if best == nil || t.places > best.places || (t.places == best.places && t.first < best.first) {
			winner, best = s, t
		}
	}
	if best == nil {
		return elephantlog.Location{}, false
	}

	loc := elephantlog.Location{State: winner}
	fill := func(level Level) *Place {
		for _, m := range mentions {
			p := m.Place
			if p.State != winner || p.Level != level {
				continue
			}
			if loc.District != "" && p.District != loc.District {
				continue
			}
			if level == LevelVillage && loc.Block != "" && p.Block != loc.Block {
				continue
			}
			return p
		}
		return nil
	}

	if p := fill(LevelDistrict); p != nil {
		loc.District = p.District
	}
	if p := fill(LevelBlock); p != nil {
		loc.District, loc.Block = p.District, p.Block
	}
	if p := fill(LevelVillage); p != nil {
		loc.District, loc.Block, loc.Village = p.District, p.Block, p.Name
	}

	if loc.Block == "" {
		loc.Block = firstPlacePhrase(text, blockPhrases)
	}
	if loc.Village == "" {
		loc.Village = firstPlacePhrase(text, villagePhrases)
	}
	return loc, true
}

// CanonicalState returns the recognized state named by name, accepting
// gazetteer aliases such as "Chattisgarh".
func (r *LocationResolver) CanonicalState(name string) (elephantlog.State, bool) {
	p, ok := r.gazetteer.Lookup(name, LevelState, "")
	if !ok || !slices.Contains(r.states, p.State) {
		return "", false
	}
	return p.State, true
}

// CanonicalPlace returns the gazetteer spelling of name at level within state,
// or name trimmed of a trailing level word when the gazetteer does not know it.
func (r *LocationResolver) CanonicalPlace(name string, level Level, state elephantlog.State) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = levelSuffix.ReplaceAllString(name, "")
	if p, ok := r.gazetteer.Lookup(name, level, state); ok {
		return p.Name
	}
	return name
}

var levelSuffix = regexp.MustCompile(`(?i)\s+(?:district|block|tehsil|taluka|taluk|mandal|village)$`)

const placeName = `([A-Z][a-z]+(?:[ -][A-Z][a-z]+)?)`

var (
	villagePhrases = []*regexp.Regexp{
		regexp.MustCompile(`\b` + placeName + `\s+village\b`),
		regexp.MustCompile(`\bvillages?\s+(?:of|called|named)\s+` + placeName),
	}
	blockPhrases = []*regexp.Regexp{
		regexp.MustCompile(`\b` + placeName + `\s+(?:block|tehsil|taluka|taluk|mandal)\b`),
		regexp.MustCompile(`\b(?:block|tehsil|taluka|taluk|mandal)\s+of\s+` + placeName),
	}
)

// notPlaceWords are capitalized words that precede "village" or "block"
// without naming a place.
var notPlaceWords = map[string]bool{
	"a": true, "an": true, "the": true, "this": true, "that": true, "one": true,
	"another": true, "same": true, "each": true, "every": true, "their": true,
	"his": true, "her": true, "our": true, "forest": true, "department": true,
	"range": true, "reserve": true, "tribal": true, "remote": true, "nearby": true,
	"local": true, "neighbouring": true, "neighboring": true, "adjoining": true,
	"model": true, "officials": true, "police": true, "development": true,
}

// firstPlacePhrase returns the earliest place name captured by any pattern.
func firstPlacePhrase(text string, patterns []*regexp.Regexp) string {
	best, bestPos := "", -1
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			name := cleanPlaceName(text[m[2]:m[3]])
			if name == "" {
				continue
			}
			if bestPos < 0 || m[2] < bestPos {
				best, bestPos = name, m[2]
			}
			break
		}
	}
	return best
}

// cleanPlaceName drops leading words that are not part of a place name.
func cleanPlaceName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == ' ' })
	for len(words) > 0 && notPlaceWords[strings.ToLower(words[0])] {
		words = words[1:]
	}
	for _, w := range words {
		if notPlaceWords[strings.ToLower(w)] {
			return ""
		}
	}
	return strings.Join(words, " ")
}
