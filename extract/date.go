package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fwojciec/elephantlog"
)

// DateNormalizer parses free-form date text into calendar dates.
type DateNormalizer struct {
	// Now is the reference time for relative forms such as "2 days ago".
	Now func() time.Time

	StartYear int
	EndYear   int
}

// NewDateNormalizer returns a normalizer bounded by the configured years.
func NewDateNormalizer(cfg elephantlog.Config) *DateNormalizer {
	return &DateNormalizer{
		Now:       time.Now,
		StartYear: cfg.StartYear,
		EndYear:   cfg.EndYear,
	}
}

// Normalize returns the date of the first candidate that parses, provided it
// falls within the year bounds. A parsed but out-of-range date is unresolved.
func (n *DateNormalizer) Normalize(candidates []string) (elephantlog.Date, bool) {
	d, ok := n.Parse(candidates)
	if !ok || d.Year < n.StartYear || d.Year > n.EndYear {
		return elephantlog.Date{}, false
	}
	return d, true
}

// Parse returns the date of the first candidate that parses, without
// applying bounds. Later candidates are never consulted once one parses.
func (n *DateNormalizer) Parse(candidates []string) (elephantlog.Date, bool) {
	for _, c := range candidates {
		if d, ok := n.parseOne(c); ok {
			return d, true
		}
	}
	return elephantlog.Date{}, false
}

type dateFormat func(s string, now time.Time) (elephantlog.Date, bool)

func (n *DateNormalizer) parseOne(raw string) (elephantlog.Date, bool) {
	s := cleanDate(raw)
	if s == "" {
		return elephantlog.Date{}, false
	}
	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}
	for _, f := range []dateFormat{
		parseISO,
		parseDayMonthYear,
		parseMonthDayYear,
		parseNumericDayFirst,
		parseNumericYearFirst,
		parseRelative,
		parseAny,
	} {
		if d, ok := f(s, now); ok && d.Valid() {
			return d, true
		}
	}
	return elephantlog.Date{}, false
}

var (
	dateLabel     = regexp.MustCompile(`^(?:last\s+)?(?:first\s+)?(?:published|updated|posted|modified|dated?)\s*(?:on|at)?\s*[:\-]?\s*`)
	weekdayPrefix = regexp.MustCompile(`^(?:mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)(?:day|nesday|rsday|urday)?\.?,?\s+`)
	clockSuffix   = regexp.MustCompile(`(?:\s+|\s*[,|]\s*)(?:at\s+)?\d{1,2}:\d{2}(?::\d{2})?\s*(?:am|pm)?\s*(?:ist|utc|gmt)?$`)
	zoneSuffix    = regexp.MustCompile(`\s+(?:ist|utc|gmt)$`)
)

// cleanDate lowercases s and strips labels, weekdays, and clock times that
// news sites put around dates, e.g. "Updated: Monday, Jan 15, 2024 10:30 IST".
func cleanDate(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	s = dateLabel.ReplaceAllString(s, "")
	s = weekdayPrefix.ReplaceAllString(s, "")
	s = clockSuffix.ReplaceAllString(s, "")
	s = zoneSuffix.ReplaceAllString(s, "")
	return strings.TrimSpace(strings.TrimRight(s, ",|"))
}

var months = map[string]int{
	"jan": 1, "january": 1, "feb": 2, "february": 2, "mar": 3, "march": 3,
	"apr": 4, "april": 4, "may": 5, "jun": 6, "june": 6, "jul": 7, "july": 7,
	"aug": 8, "august": 8, "sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10, "nov": 11, "november": 11, "dec": 12, "december": 12,
}

var (
	isoDate          = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:t[\d:.]+(?:z|[+-]\d{2}:?\d{2})?)?$`)
	dayMonthYear     = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?[\s-]+(?:of\s+)?([a-z]+)\.?,?[\s-]+(\d{4})$`)
	monthDayYear     = regexp.MustCompile(`^([a-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})$`)
	numericDayFirst  = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})$`)
	numericYearFirst = regexp.MustCompile(`^(\d{4})[/.](\d{1,2})[/.](\d{1,2})$`)
	relativeDay      = regexp.MustCompile(`^(today|yesterday|just now)$`)
	relativeAgo      = regexp.MustCompile(`^(\d+|an?)\s+(minute|min|hour|hr|day|week|month|year)s?\s+ago$`)
)

func ymd(y, m, d string) (elephantlog.Date, bool) {
	year, err1 := strconv.Atoi(y)
	month, err2 := strconv.Atoi(m)
	day, err3 := strconv.Atoi(d)
	if err1 != nil || err2 != nil || err3 != nil {
		return elephantlog.Date{}, false
	}
	return elephantlog.Date{Year: year, Month: month, Day: day}, true
}

func parseISO(s string, _ time.Time) (elephantlog.Date, bool) {
	m := isoDate.FindStringSubmatch(s)
	if m == nil {
		return elephantlog.Date{}, false
	}
	return ymd(m[1], m[2], m[3])
}

func parseDayMonthYear(s string, _ time.Time) (elephantlog.Date, bool) {
	m := dayMonthYear.FindStringSubmatch(s)
	if m == nil {
		return elephantlog.Date{}, false
	}
	month, ok := months[m[2]]
	if !ok {
		return elephantlog.Date{}, false
	}
	return ymd(m[3], strconv.Itoa(month), m[1])
}

func parseMonthDayYear(s string, _ time.Time) (elephantlog.Date, bool) {
	m := monthDayYear.FindStringSubmatch(s)
	if m == nil {
		return elephantlog.Date{}, false
	}
	month, ok := months[m[1]]
	if !ok {
		return elephantlog.Date{}, false
	}
	return ymd(m[3], strconv.Itoa(month), m[2])
}

// parseNumericDayFirst reads DD/MM/YYYY, DD-MM-YYYY, and DD.MM.YYYY.
// Indian publications write the day first.
func parseNumericDayFirst(s string, _ time.Time) (elephantlog.Date, bool) {
	m := numericDayFirst.FindStringSubmatch(s)
	if m == nil {
		return elephantlog.Date{}, false
	}
	return ymd(m[3], m[2], m[1])
}

func parseNumericYearFirst(s string, _ time.Time) (elephantlog.Date, bool) {
	m := numericYearFirst.FindStringSubmatch(s)
	if m == nil {
		return elephantlog.Date{}, false
	}
	return ymd(m[1], m[2], m[3])
}

func parseRelative(s string, now time.Time) (elephantlog.Date, bool) {
	if m := relativeDay.FindStringSubmatch(s); m != nil {
		if m[1] == "yesterday" {
			return elephantlog.NewDate(now.AddDate(0, 0, -1)), true
		}
		return elephantlog.NewDate(now), true
	}

	m := relativeAgo.FindStringSubmatch(s)
	if m == nil {
		return elephantlog.Date{}, false
	}
	n := 1
	if m[1] != "a" && m[1] != "an" {
		v, err := strconv.Atoi(m[1])
		if err != nil {
			return elephantlog.Date{}, false
		}
		n = v
	}
	switch m[2] {
	case "minute", "min":
		return elephantlog.NewDate(now.Add(-time.Duration(n) * time.Minute)), true
	case "hour", "hr":
		return elephantlog.NewDate(now.Add(-time.Duration(n) * time.Hour)), true
	case "day":
		return elephantlog.NewDate(now.AddDate(0, 0, -n)), true
	case "week":
		return elephantlog.NewDate(now.AddDate(0, 0, -7*n)), true
	case "month":
		return elephantlog.NewDate(now.AddDate(0, -n, 0)), true
	default:
		return elephantlog.NewDate(now.AddDate(-n, 0, 0)), true
	}
}

// parseAny is the last resort for layouts the patterns above miss,
// such as "Mon Jan 2 15:04:05 MST 2006".
func parseAny(s string, _ time.Time) (elephantlog.Date, bool) {
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return elephantlog.Date{}, false
	}
	return elephantlog.NewDate(t), true
}

var datesInText = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?\s+\d{4}\b`),
	regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{4}\b`),
	regexp.MustCompile(`\b\d{4}[/.]\d{1,2}[/.]\d{1,2}\b`),
}

// FindDates returns the date expressions in text in document order.
// Relative forms are not collected since body text is relative to an
// unknown publication day.
func FindDates(text string) []string {
	type span struct{ start, end int }
	var spans []span
	for _, re := range datesInText {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{loc[0], loc[1]})
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var out []string
	end := -1
	for _, sp := range spans {
		if sp.start < end {
			continue
		}
		out = append(out, text[sp.start:sp.end])
		end = sp.end
	}
	return out
}

// DateCandidates returns the ordered date candidates for an article:
// the metadata date first, then dates in the title, then dates in the body.
func DateCandidates(a *elephantlog.Article) []string {
	var c []string
	if a.Published != "" {
		c = append(c, a.Published)
	}
	c = append(c, FindDates(a.Title)...)
	c = append(c, FindDates(a.Text)...)
	return c
}
