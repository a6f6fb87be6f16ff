package elephantlog

import (
	"slices"
	"time"
)

// Default configuration values.
const (
	DefaultStartYear    = 2000
	DefaultEndYear      = 2025
	DefaultFetchTimeout = 10 * time.Second
	DefaultMaxRetries   = 3
	DefaultRequestDelay = 2 * time.Second
	DefaultRateLimit    = 1.0
	DefaultAITimeout    = 30 * time.Second
	DefaultAIRetries    = 3
	DefaultGeminiModel  = "gemini-2.0-flash"
	DefaultOpenAIModel  = "gpt-4o-mini"
)

// Config holds the options that shape extraction and the run loop.
type Config struct {
	// StartYear and EndYear bound accepted dates, inclusive.
	StartYear int `yaml:"startYear"`
	EndYear   int `yaml:"endYear"`

	// FilterByDate disables the date gate when false.
	FilterByDate bool `yaml:"filterByDate"`

	// States restricts accepted records. Must be a subset of RecognizedStates.
	States []State `yaml:"states"`

	FetchTimeout time.Duration `yaml:"fetchTimeout"`
	MaxRetries   int           `yaml:"maxRetries"`
	RequestDelay time.Duration `yaml:"requestDelay"`

	// RateLimit is the per-domain request rate in requests per second.
	RateLimit float64 `yaml:"rateLimit"`

	UserAgent string `yaml:"userAgent"`

	AITimeout   time.Duration `yaml:"aiTimeout"`
	AIRetries   int           `yaml:"aiRetries"`
	GeminiModel string        `yaml:"geminiModel"`
	OpenAIModel string        `yaml:"openaiModel"`
}

// DefaultConfig returns the configuration used when no option is given.
func DefaultConfig() Config {
	return Config{
		StartYear:    DefaultStartYear,
		EndYear:      DefaultEndYear,
		FilterByDate: true,
		States:       RecognizedStates(),
		FetchTimeout: DefaultFetchTimeout,
		MaxRetries:   DefaultMaxRetries,
		RequestDelay: DefaultRequestDelay,
		RateLimit:    DefaultRateLimit,
		UserAgent:    DefaultUserAgent,
		AITimeout:    DefaultAITimeout,
		AIRetries:    DefaultAIRetries,
		GeminiModel:  DefaultGeminiModel,
		OpenAIModel:  DefaultOpenAIModel,
	}
}

// Validate returns an ECONFIG error if the configuration is unusable.
func (c *Config) Validate() error {
	if c.StartYear > c.EndYear {
		return Errorf(ECONFIG, "start year %d is after end year %d", c.StartYear, c.EndYear)
	}
	if len(c.States) == 0 {
		return Errorf(ECONFIG, "at least one state required")
	}
	for _, s := range c.States {
		if _, ok := ParseState(string(s)); !ok {
			return Errorf(ECONFIG, "unrecognized state %q", s)
		}
	}
	if c.MaxRetries < 0 || c.AIRetries < 0 {
		return Errorf(ECONFIG, "retry counts must be non-negative")
	}
	if c.FetchTimeout < 0 || c.RequestDelay < 0 || c.AITimeout < 0 {
		return Errorf(ECONFIG, "durations must be non-negative")
	}
	if c.RateLimit < 0 {
		return Errorf(ECONFIG, "rate limit must be non-negative")
	}
	return nil
}

// DateInRange reports whether d is resolved and within the year bounds.
func (c *Config) DateInRange(d Date) bool {
	return !d.IsZero() && d.Year >= c.StartYear && d.Year <= c.EndYear
}

// StateAllowed reports whether s passes the state restriction.
func (c *Config) StateAllowed(s State) bool {
	return s != "" && slices.Contains(c.States, s)
}

// RetryDelays returns the fetch backoff schedule: 1s, 2s, 4s, ...
// with one entry per retry.
func (c *Config) RetryDelays() []time.Duration {
	delays := make([]time.Duration, c.MaxRetries)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}
