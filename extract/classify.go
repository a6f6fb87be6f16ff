package extract

import (
	_ "embed"
	"sync"

	"github.com/fwojciec/elephantlog"
	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var keywordsYAML []byte

type keywordsFile struct {
	Incidents map[string][]string `yaml:"incidents"`
	Damage    map[string][]string `yaml:"damage"`
}

// Classifier labels text with an incident type and damage categories by
// keyword scoring. It is safe for concurrent use.
type Classifier struct {
	incidents *keywordIndex[elephantlog.IncidentType]
	damage    *keywordIndex[elephantlog.DamageType]
}

// keywordIndex maps each folded keyword to the labels it counts toward.
type keywordIndex[L comparable] struct {
	owners  [][]L
	matcher *termMatcher
}

func newKeywordIndex[L comparable](labels map[L][]string) *keywordIndex[L] {
	idx := make(map[string]int)
	var terms []string
	var owners [][]L
	for label, words := range labels {
		for _, w := range words {
			term := foldTerm(w)
			if term == "" {
				continue
			}
			i, ok := idx[term]
			if !ok {
				i = len(terms)
				idx[term] = i
				terms = append(terms, term)
				owners = append(owners, nil)
			}
			owners[i] = append(owners[i], label)
		}
	}
	return &keywordIndex[L]{owners: owners, matcher: newTermMatcher(terms)}
}

// scores returns the number of distinct keywords hit per label.
func (k *keywordIndex[L]) scores(folded string) map[L]int {
	scores := make(map[L]int)
	for _, i := range k.matcher.match(folded) {
		for _, label := range k.owners[i] {
			scores[label]++
		}
	}
	return scores
}

var defaultClassifier = sync.OnceValues(func() (*Classifier, error) {
	return LoadClassifier(keywordsYAML)
})

// DefaultClassifier returns the classifier built from the embedded keyword sets.
func DefaultClassifier() (*Classifier, error) {
	return defaultClassifier()
}

// LoadClassifier parses YAML keyword sets keyed by incident type and damage type.
func LoadClassifier(data []byte) (*Classifier, error) {
	var f keywordsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, elephantlog.Errorf(elephantlog.EINVALID, "parse keywords: %v", err)
	}

	incidents := make(map[elephantlog.IncidentType][]string, len(f.Incidents))
	for name, words := range f.Incidents {
		t, ok := elephantlog.ParseIncidentType(name)
		if !ok {
			return nil, elephantlog.Errorf(elephantlog.EINVALID, "unknown incident type %q", name)
		}
		incidents[t] = append(incidents[t], words...)
	}

	damage := make(map[elephantlog.DamageType][]string, len(f.Damage))
	for name, words := range f.Damage {
		set := elephantlog.ParseDamageSet(name)
		if len(set) != 1 {
			return nil, elephantlog.Errorf(elephantlog.EINVALID, "unknown damage type %q", name)
		}
		damage[set[0]] = append(damage[set[0]], words...)
	}

	return &Classifier{
		incidents: newKeywordIndex(incidents),
		damage:    newKeywordIndex(damage),
	}, nil
}

// Classify picks the incident type with the most distinct keyword hits,
// breaking ties by severity, and collects every damage category with at
// least one hit. Text with no incident keywords is IncidentOther.
func (c *Classifier) Classify(text string) elephantlog.Classification {
	folded := foldText(text)

	scores := c.incidents.scores(folded)
	best, bestScore := elephantlog.IncidentOther, 0
	for _, t := range elephantlog.IncidentPrecedence() {
		if scores[t] > bestScore {
			best, bestScore = t, scores[t]
		}
	}

	var damage []elephantlog.DamageType
	for t, n := range c.damage.scores(folded) {
		if n > 0 {
			damage = append(damage, t)
		}
	}

	return elephantlog.Classification{
		IncidentType: best,
		Damage:       elephantlog.NewDamageSet(damage...),
	}
}

// IncidentType resolves a free-form incident label, such as one returned by
// a model, to an incident type. Known labels map directly; anything else is
// scored as text.
func (c *Classifier) IncidentType(label string) elephantlog.IncidentType {
	if t, ok := elephantlog.ParseIncidentType(label); ok {
		return t
	}
	return c.Classify(label).IncidentType
}

// DamageSet resolves a free-form damage description to damage categories.
func (c *Classifier) DamageSet(description string) elephantlog.DamageSet {
	if set := elephantlog.ParseDamageSet(description); len(set) > 0 {
		return set
	}
	return c.Classify(description).Damage
}
