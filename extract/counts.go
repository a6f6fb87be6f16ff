package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/elephantlog"
)

// MaxPlausibleCount caps extracted counts. Larger numbers are years,
// rupee amounts, or areas rather than elephants or people.
const MaxPlausibleCount = 500

// countPattern captures a number in group 1, or yields value when the
// pattern has no group. An active pattern ends in a verb like "killed"
// and is skipped when a direct object follows ("killed a farmer"), since
// then the subject did the killing.
type countPattern struct {
	re     *regexp.Regexp
	value  int
	active bool
}

func captured(expr string) countPattern {
	return countPattern{re: regexp.MustCompile(expr)}
}

func fixed(expr string, value int) countPattern {
	return countPattern{re: regexp.MustCompile(expr), value: value}
}

func (p countPattern) passiveOnly() countPattern {
	p.active = true
	return p
}

const (
	elephantWord = `(?:elephants?|pachyderms?|jumbos?|tuskers?)`
	singleWord   = `(?:elephant|pachyderm|jumbo|tusker)`
	personWord   = `(?:people|persons?|villagers?|men|women|farmers?|labou?rers?|residents?|children|individuals?|youths?)`
	oneWord      = `(?:man|woman|person|villager|farmer|labou?rer|boy|girl|youth|child|resident)`
	modifier     = `(?:[\w-]+\s+)?`
	passive      = `(?:were\s+|was\s+|have\s+been\s+|has\s+been\s+|had\s+been\s+|got\s+)?`
	qualifier    = `(?:(?:about|around|nearly|over|some|at\s+least|more\s+than)\s+)?`
	deathVerb    = `(?:killed|trampled|died|dead|crushed)`
	killVerb     = `(?:kill(?:s|ed)|trampl(?:es|ed)|crush(?:es|ed))`
	dyingVerb    = `(?:killed|dead|died|electrocuted|poisoned|poached)`
)

// Patterns run over lowercased text with number words already turned into
// digits, except the zero patterns which need the words ("no one").
var (
	elephantCountPatterns = []countPattern{
		captured(`\b(\d+)\s+` + modifier + elephantWord + `\b`),
		captured(`\bherd\s+of\s+` + qualifier + `(\d+)\b`),
		captured(`\b(\d+)[\s-]+(?:member|strong)\s+herd\b`),
		fixed(`\b(?:a|an|1|lone)\s+(?:(?:wild|lone|rogue|male|female|young|adult|baby|single|solitary|stray|dead|injured)\s+)?`+singleWord+`\b`, 1),
		fixed(`\bherds?\b`, 2),
	}
	humanDeathPatterns = []countPattern{
		captured(`\b(\d+)\s+` + modifier + personWord + `\s+` + passive + deathVerb + `\b`),
		captured(`\b` + killVerb + `\s+(?:to\s+death\s+)?(\d+)\s+` + modifier + personWord + `\b`),
		captured(`\b(\d+)\s+(?:human\s+)?(?:deaths|fatalities|casualties|victims)\b`),
		captured(`\bdeath\s+toll\s+(?:rose\s+to|of|at|is|stands\s+at|reached)\s+(\d+)\b`),
		fixed(`\b(?:a|an|1)\s+`+modifier+oneWord+`\s+`+passive+deathVerb+`\b`, 1),
		fixed(`\b`+killVerb+`\s+(?:to\s+death\s+)?(?:a|an|1)\s+`+modifier+oneWord+`\b`, 1),
	}
	elephantDeathPatterns = []countPattern{
		captured(`\b(\d+)\s+` + modifier + elephantWord + `\s+` + passive + `(?:found\s+)?` + dyingVerb + `\b`).passiveOnly(),
		captured(`\bcarcass(?:es)?\s+of\s+(\d+)\s+` + modifier + elephantWord),
		captured(`\b(\d+)\s+elephant\s+(?:deaths|carcasses)\b`),
		fixed(`\b(?:a|an|1|the)\s+`+modifier+singleWord+`\s+`+passive+`(?:found\s+)?`+dyingVerb+`\b`, 1).passiveOnly(),
		fixed(`\bdead\s+`+singleWord+`\b`, 1),
		fixed(`\b`+singleWord+`\s+(?:carcass|death)\b`, 1),
	}
)

var (
	elephantZeroPatterns = []countPattern{
		fixed(`\bno\s+elephants?\s+(?:were\s+|was\s+)?(?:seen|spotted|sighted|present|involved)`, 0),
	}
	humanZeroPatterns = []countPattern{
		fixed(`\bno\s+(?:human\s+)?(?:casualties|casualty|deaths|fatalities|injuries)\b`, 0),
		fixed(`\bno\s+(?:loss\s+of\s+(?:human\s+)?life|human\s+loss)\b`, 0),
		fixed(`\b(?:no\s+one|nobody|none)\s+(?:was\s+|were\s+)?(?:killed|hurt|injured|harmed)\b`, 0),
	}
	elephantDeathZeroPatterns = []countPattern{
		fixed(`\bno\s+elephants?\s+(?:were\s+|was\s+)?(?:killed|harmed|hurt|died)\b`, 0),
	}
)

// directObject follows an active killing verb: "killed a farmer", "killed 2 people".
var directObject = regexp.MustCompile(`^\s+(?:a|an|the|his|her|their|\d+)\b`)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40,
	"fifty": 50, "dozen": 12, "couple": 2, "pair": 2,
}

var (
	numberWord = regexp.MustCompile(`\b(?:a\s+)?(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty|thirty|forty|fifty|dozen)\b|\b(?:a\s+)?(couple|pair)\s+of\b`)
	tensHyphen = regexp.MustCompile(`\b([2-5]0)[\s-]([1-9])\b`)
	digitGroup = regexp.MustCompile(`(\d),(\d{3})\b`)
)

// normalizeNumerals lowercases text and rewrites number words as digits,
// so "twenty-two elephants" and "a dozen elephants" read as numbers.
func normalizeNumerals(text string) string {
	s := strings.ToLower(text)
	s = digitGroup.ReplaceAllString(s, "$1$2")
	s = numberWord.ReplaceAllStringFunc(s, func(m string) string {
		sub := numberWord.FindStringSubmatch(m)
		w := sub[1]
		if w == "" {
			w = sub[2]
		}
		return strconv.Itoa(numberWords[w])
	})
	return tensHyphen.ReplaceAllStringFunc(s, func(m string) string {
		parts := tensHyphen.FindStringSubmatch(m)
		tens, _ := strconv.Atoi(parts[1])
		ones, _ := strconv.Atoi(parts[2])
		return strconv.Itoa(tens + ones)
	})
}

// ExtractCounts pulls the elephant count and the human and elephant death
// counts from text. For each field every pattern match is considered and the
// largest value wins. A field with no match is nil; an explicit statement of
// zero ("no casualties") yields 0.
func ExtractCounts(text string) elephantlog.Counts {
	lower := strings.ToLower(text)
	digits := normalizeNumerals(text)
	return elephantlog.Counts{
		ElephantCount:  maxCount(lower, digits, elephantZeroPatterns, elephantCountPatterns),
		HumanDeaths:    maxCount(lower, digits, humanZeroPatterns, humanDeathPatterns),
		ElephantDeaths: maxCount(lower, digits, elephantDeathZeroPatterns, elephantDeathPatterns),
	}
}

func maxCount(lower, digits string, zero, patterns []countPattern) *int {
	best := -1
	for _, p := range zero {
		if p.re.MatchString(lower) {
			best = max(best, p.value)
		}
	}
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(digits, -1) {
			if p.active && directObject.MatchString(digits[loc[1]:]) {
				continue
			}
			v := p.value
			if len(loc) > 2 {
				n, err := strconv.Atoi(digits[loc[2]:loc[3]])
				if err != nil || n > MaxPlausibleCount {
					continue
				}
				v = n
			}
			best = max(best, v)
		}
	}
	if best < 0 {
		return nil
	}
	return &best
}
