package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/elephantlog"
	"github.com/spf13/cast"
)

// MaxPromptText caps the article text sent to a model, in runes.
const MaxPromptText = 12000

// SystemPrompt instructs the model to act as a field extractor.
const SystemPrompt = "You are an expert data extraction specialist. " +
	"You extract structured information about elephant incidents from news articles " +
	"and reply with a single JSON object and nothing else."

// Response keys, matching the output column names except for damage.
const (
	keyDamage = "Damage (Crop/Property/Other)"
)

// BuildPrompt renders the extraction prompt for article.
func BuildPrompt(article *elephantlog.Article, cfg *elephantlog.Config) string {
	text := article.FullText()
	if r := []rune(text); len(r) > MaxPromptText {
		text = string(r[:MaxPromptText])
	}

	states := make([]string, len(cfg.States))
	for i, s := range cfg.States {
		states[i] = string(s)
	}
	stateList := strings.Join(states, ", ")

	var b strings.Builder
	b.WriteString("Extract structured information about elephant incidents from the following news article.\n\n")
	fmt.Fprintf(&b, "Article Text: %s\n", text)
	fmt.Fprintf(&b, "Source URL: %s\n", article.URL)
	fmt.Fprintf(&b, "Source Domain: %s\n\n", sourceName(article))
	b.WriteString("Return ONLY a valid JSON object with these exact field names:\n\n{\n")
	fields := [][2]string{
		{elephantlog.ColumnDate, "YYYY-MM-DD format or null if not available"},
		{elephantlog.ColumnState, "One of: " + stateList + " (or null if not mentioned or not in these states)"},
		{elephantlog.ColumnDistrict, "District name or null if not available"},
		{elephantlog.ColumnBlock, "Block/Tehsil name or null if not available"},
		{elephantlog.ColumnVillage, "Village name or null if not available"},
		{elephantlog.ColumnElephants, "Number of elephants involved (integer or null)"},
		{elephantlog.ColumnIncidentType, "One of: sighting, attack, death, crop_damage, property_damage, conflict, other"},
		{elephantlog.ColumnHumanDeaths, "Number of human deaths (integer or null)"},
		{elephantlog.ColumnElephantDeaths, "Number of elephant deaths (integer or null)"},
		{keyDamage, "Comma-separated list of crop, property, other, or null"},
		{elephantlog.ColumnSource, "News source name"},
		{elephantlog.ColumnURL, "Article URL"},
	}
	for i, f := range fields {
		sep := ","
		if i == len(fields)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    %q: %q%s\n", f[0], f[1], sep)
	}
	b.WriteString("}\n\nImportant rules:\n")
	fmt.Fprintf(&b, "1. Only include states from the specified list: %s\n", stateList)
	b.WriteString("2. If the article is not about these states, set State to null\n")
	fmt.Fprintf(&b, "3. Focus on incidents from %d-%d\n", cfg.StartYear, cfg.EndYear)
	b.WriteString("4. Extract numbers as integers, not strings\n")
	b.WriteString("5. If information is not available, use null\n")
	b.WriteString("6. Return ONLY the JSON object, no additional text or explanation\n")
	return b.String()
}

var leadingInt = regexp.MustCompile(`^\s*(\d+)`)

// ParseRawRecord decodes a model reply into a RawRecord. Code fences and
// text around the outermost JSON object are ignored. Numbers given as
// strings are accepted; null, empty, and unparseable values become nil.
func ParseRawRecord(reply string) (*elephantlog.RawRecord, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "no JSON object in model reply")
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(reply[start:end+1]), &fields); err != nil {
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "decode model reply: %v", err)
	}

	// Accept keys regardless of case and the bare "Damage" column name.
	norm := make(map[string]any, len(fields))
	for k, v := range fields {
		norm[strings.ToLower(strings.TrimSpace(k))] = v
	}
	get := func(keys ...string) any {
		for _, k := range keys {
			if v, ok := norm[strings.ToLower(k)]; ok {
				return v
			}
		}
		return nil
	}

	return &elephantlog.RawRecord{
		Date:           toString(get(elephantlog.ColumnDate)),
		State:          toString(get(elephantlog.ColumnState)),
		District:       toString(get(elephantlog.ColumnDistrict)),
		Block:          toString(get(elephantlog.ColumnBlock)),
		Village:        toString(get(elephantlog.ColumnVillage)),
		ElephantCount:  toInt(get(elephantlog.ColumnElephants)),
		IncidentType:   toString(get(elephantlog.ColumnIncidentType)),
		HumanDeaths:    toInt(get(elephantlog.ColumnHumanDeaths)),
		ElephantDeaths: toInt(get(elephantlog.ColumnElephantDeaths)),
		Damage:         toString(get(keyDamage, elephantlog.ColumnDamage)),
		Source:         toString(get(elephantlog.ColumnSource)),
		URL:            toString(get(elephantlog.ColumnURL)),
	}, nil
}

func toString(v any) *string {
	if v == nil {
		return nil
	}
	if list, ok := v.([]any); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if s := toString(item); s != nil {
				parts = append(parts, *s)
			}
		}
		v = strings.Join(parts, ", ")
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "none", "n/a", "na", "unknown", "not available":
		return nil
	}
	return &s
}

func toInt(v any) *int {
	if v == nil {
		return nil
	}
	if f, ok := v.(float64); ok {
		if f < 0 {
			return nil
		}
		return elephantlog.Int(int(f))
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		s := toString(v)
		if s == nil {
			return nil
		}
		m := leadingInt.FindStringSubmatch(*s)
		if m == nil {
			return nil
		}
		if n, err = strconv.Atoi(m[1]); err != nil {
			return nil
		}
	}
	if n < 0 {
		return nil
	}
	return &n
}
