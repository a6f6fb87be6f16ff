package main

import (
	"os"
	"time"

	"github.com/fwojciec/elephantlog"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "ELEPHANTLOG_CONFIG"
	dbPathEnv        = "ELEPHANTLOG_DB"
	startYearEnv     = "ELEPHANTLOG_START_YEAR"
	endYearEnv       = "ELEPHANTLOG_END_YEAR"
	filterByDateEnv  = "ELEPHANTLOG_FILTER_BY_DATE"
	delayEnv         = "ELEPHANTLOG_DELAY"
	geminiAPIKeyEnv  = "GEMINI_API_KEY"
	openAIAPIKeyEnv  = "OPENAI_API_KEY"
	openAIBaseURLEnv = "OPENAI_BASE_URL"
)

// Settings is the configuration resolved from defaults, the config file,
// and the environment. Command-line flags are applied on top by each command.
type Settings struct {
	Config elephantlog.Config

	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
}

// fileConfig mirrors elephantlog.Config with optional fields so a file can
// override a default with a zero value.
type fileConfig struct {
	StartYear    *int           `yaml:"startYear"`
	EndYear      *int           `yaml:"endYear"`
	FilterByDate *bool          `yaml:"filterByDate"`
	States       []string       `yaml:"states"`
	FetchTimeout *time.Duration `yaml:"fetchTimeout"`
	MaxRetries   *int           `yaml:"maxRetries"`
	RequestDelay *time.Duration `yaml:"requestDelay"`
	RateLimit    *float64       `yaml:"rateLimit"`
	UserAgent    string         `yaml:"userAgent"`
	AITimeout    *time.Duration `yaml:"aiTimeout"`
	AIRetries    *int           `yaml:"aiRetries"`
	GeminiModel  string         `yaml:"geminiModel"`
	OpenAIModel  string         `yaml:"openaiModel"`
}

// LoadSettings reads the YAML file at path (or named by ELEPHANTLOG_CONFIG
// when path is empty) over the defaults, then applies environment
// overrides. Unreadable or invalid configuration is an ECONFIG error.
func LoadSettings(path string, getenv func(string) string) (*Settings, error) {
	s := &Settings{Config: elephantlog.DefaultConfig()}

	if path == "" {
		path = getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, elephantlog.Errorf(elephantlog.ECONFIG, "cannot read config %s: %v", path, err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return nil, elephantlog.Errorf(elephantlog.ECONFIG, "cannot parse config %s: %v", path, err)
		}
		if err := mergeConfig(&s.Config, fc); err != nil {
			return nil, err
		}
	}

	if err := s.applyEnvOverrides(getenv); err != nil {
		return nil, err
	}
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) applyEnvOverrides(getenv func(string) string) error {
	if v := getenv(startYearEnv); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return elephantlog.Errorf(elephantlog.ECONFIG, "invalid %s %q", startYearEnv, v)
		}
		s.Config.StartYear = n
	}
	if v := getenv(endYearEnv); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return elephantlog.Errorf(elephantlog.ECONFIG, "invalid %s %q", endYearEnv, v)
		}
		s.Config.EndYear = n
	}
	if v := getenv(filterByDateEnv); v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return elephantlog.Errorf(elephantlog.ECONFIG, "invalid %s %q", filterByDateEnv, v)
		}
		s.Config.FilterByDate = b
	}
	if v := getenv(delayEnv); v != "" {
		secs, err := cast.ToFloat64E(v)
		if err != nil {
			return elephantlog.Errorf(elephantlog.ECONFIG, "invalid %s %q", delayEnv, v)
		}
		s.Config.RequestDelay = time.Duration(secs * float64(time.Second))
	}

	s.GeminiAPIKey = getenv(geminiAPIKeyEnv)
	s.OpenAIAPIKey = getenv(openAIAPIKeyEnv)
	s.OpenAIBaseURL = getenv(openAIBaseURLEnv)
	return nil
}

func mergeConfig(base *elephantlog.Config, override fileConfig) error {
	if override.StartYear != nil {
		base.StartYear = *override.StartYear
	}
	if override.EndYear != nil {
		base.EndYear = *override.EndYear
	}
	if override.FilterByDate != nil {
		base.FilterByDate = *override.FilterByDate
	}
	if len(override.States) > 0 {
		states := make([]elephantlog.State, 0, len(override.States))
		for _, name := range override.States {
			st, ok := elephantlog.ParseState(name)
			if !ok {
				return elephantlog.Errorf(elephantlog.ECONFIG, "unrecognized state %q", name)
			}
			states = append(states, st)
		}
		base.States = states
	}
	if override.FetchTimeout != nil {
		base.FetchTimeout = *override.FetchTimeout
	}
	if override.MaxRetries != nil {
		base.MaxRetries = *override.MaxRetries
	}
	if override.RequestDelay != nil {
		base.RequestDelay = *override.RequestDelay
	}
	if override.RateLimit != nil {
		base.RateLimit = *override.RateLimit
	}
	if override.UserAgent != "" {
		base.UserAgent = override.UserAgent
	}
	if override.AITimeout != nil {
		base.AITimeout = *override.AITimeout
	}
	if override.AIRetries != nil {
		base.AIRetries = *override.AIRetries
	}
	if override.GeminiModel != "" {
		base.GeminiModel = override.GeminiModel
	}
	if override.OpenAIModel != "" {
		base.OpenAIModel = override.OpenAIModel
	}
	return nil
}
