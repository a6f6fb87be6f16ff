package extract

import (
	_ "embed"
	"sort"
	"strings"
	"sync"

	"github.com/fwojciec/elephantlog"
	"gopkg.in/yaml.v3"
)

//go:embed gazetteer.yaml
var gazetteerYAML []byte

// Level is an administrative level in the gazetteer.
type Level int

// Administrative levels, coarsest first.
const (
	LevelState Level = iota
	LevelDistrict
	LevelBlock
	LevelVillage
)

// Place is one gazetteer entry with its parents filled in.
type Place struct {
	Name     string
	Level    Level
	State    elephantlog.State
	District string
	Block    string
}

// Mention is a place found in text and the offset of its first occurrence
// in the folded text.
type Mention struct {
	Place *Place
	Pos   int
}

// Gazetteer maps place names to their administrative hierarchy.
// It is immutable after loading and safe for concurrent use.
type Gazetteer struct {
	places  []*Place
	terms   []string
	owners  [][]int // term index -> place indices
	matcher *termMatcher
}

type gazetteerFile struct {
	States []struct {
		Name      string   `yaml:"name"`
		Aliases   []string `yaml:"aliases"`
		Districts []struct {
			Name      string   `yaml:"name"`
			Aliases   []string `yaml:"aliases"`
			Qualified bool     `yaml:"qualified"`
			Blocks    []struct {
				Name     string   `yaml:"name"`
				Aliases  []string `yaml:"aliases"`
				Villages []string `yaml:"villages"`
			} `yaml:"blocks"`
		} `yaml:"districts"`
	} `yaml:"states"`
}

var defaultGazetteer = sync.OnceValues(func() (*Gazetteer, error) {
	return LoadGazetteer(gazetteerYAML)
})

// DefaultGazetteer returns the embedded gazetteer of the five recognized states.
func DefaultGazetteer() (*Gazetteer, error) {
	return defaultGazetteer()
}

// LoadGazetteer parses a YAML gazetteer.
func LoadGazetteer(data []byte) (*Gazetteer, error) {
	var f gazetteerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, elephantlog.Errorf(elephantlog.EINVALID, "parsing gazetteer: %v", err)
	}

	g := &Gazetteer{}
	index := make(map[string]int)
	add := func(p *Place, names ...string) {
		g.places = append(g.places, p)
		pi := len(g.places) - 1
		for _, name := range names {
			term := foldTerm(name)
			if term == "" {
				continue
			}
			ti, ok := index[term]
			if !ok {
				ti = len(g.terms)
				index[term] = ti
				g.terms = append(g.terms, term)
				g.owners = append(g.owners, nil)
			}
			g.owners[ti] = append(g.owners[ti], pi)
		}
	}

	for _, s := range f.States {
		state, ok := elephantlog.ParseState(s.Name)
		if !ok {
			return nil, elephantlog.Errorf(elephantlog.EINVALID, "gazetteer state %q is not recognized", s.Name)
		}
		add(&Place{Name: string(state), Level: LevelState, State: state}, append([]string{s.Name}, s.Aliases...)...)

		for _, d := range s.Districts {
			names := append([]string{d.Name}, d.Aliases...)
			if d.Qualified {
				names = []string{d.Name + " district"}
				for _, a := range d.Aliases {
					names = append(names, a+" district")
				}
			}
			add(&Place{Name: d.Name, Level: LevelDistrict, State: state, District: d.Name}, names...)

			for _, b := range d.Blocks {
				add(&Place{Name: b.Name, Level: LevelBlock, State: state, District: d.Name, Block: b.Name},
					append([]string{b.Name}, b.Aliases...)...)

				for _, v := range b.Villages {
					add(&Place{Name: v, Level: LevelVillage, State: state, District: d.Name, Block: b.Name}, v)
				}
			}
		}
	}

	g.matcher = newTermMatcher(g.terms)
	return g, nil
}

// Mentions returns the distinct places named in text, ordered by first
// occurrence. A name shared by several places yields a mention of each.
func (g *Gazetteer) Mentions(text string) []Mention {
	folded := foldText(text)

	first := make(map[int]int)
	for _, ti := range g.matcher.match(folded) {
		pos := strings.Index(folded, g.terms[ti])
		if pos < 0 {
			continue
		}
		for _, pi := range g.owners[ti] {
			if cur, ok := first[pi]; !ok || pos < cur {
				first[pi] = pos
			}
		}
	}

	mentions := make([]Mention, 0, len(first))
	for pi, pos := range first {
		mentions = append(mentions, Mention{Place: g.places[pi], Pos: pos})
	}
	sort.Slice(mentions, func(i, j int) bool {
		a, b := mentions[i], mentions[j]
		if a.Pos != b.Pos {
			return a.Pos < b.Pos
		}
		if a.Place.Level != b.Place.Level {
			return a.Place.Level < b.Place.Level
		}
		return a.Place.Name < b.Place.Name
	})
	return mentions
}

// Lookup returns the place at level within state whose name or alias equals
// name after folding. An empty state matches any state.
func (g *Gazetteer) Lookup(name string, level Level, state elephantlog.State) (*Place, bool) {
	term := foldTerm(name)
	if term == "" {
		return nil, false
	}
	qualified := foldTerm(name + " district")
	for ti, t := range g.terms {
		if t != term && t != qualified {
			continue
		}
		for _, pi := range g.owners[ti] {
			p := g.places[pi]
			if p.Level == level && (state == "" || p.State == state) {
				return p, true
			}
		}
	}
	return nil, false
}
