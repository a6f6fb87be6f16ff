package elephantlog_test

import (
	"testing"
	"time"

	"github.com/fwojciec/elephantlog"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := elephantlog.DefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 2000, cfg.StartYear)
	assert.Equal(t, 2025, cfg.EndYear)
	assert.True(t, cfg.FilterByDate)
	assert.Len(t, cfg.States, 5)
	assert.Equal(t, 2*time.Second, cfg.RequestDelay)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, cfg.RetryDelays())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("rejects inverted year bounds", func(t *testing.T) {
		t.Parallel()

		cfg := elephantlog.DefaultConfig()
		cfg.StartYear = 2030
		assert.Equal(t, elephantlog.ECONFIG, elephantlog.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects states outside the recognized five", func(t *testing.T) {
		t.Parallel()

		cfg := elephantlog.DefaultConfig()
		cfg.States = []elephantlog.State{elephantlog.Chhattisgarh, "Odisha"}
		assert.Equal(t, elephantlog.ECONFIG, elephantlog.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects negative retries", func(t *testing.T) {
		t.Parallel()

		cfg := elephantlog.DefaultConfig()
		cfg.MaxRetries = -1
		assert.Equal(t, elephantlog.ECONFIG, elephantlog.ErrorCode(cfg.Validate()))
	})
}

func TestConfig_DateInRange(t *testing.T) {
	t.Parallel()

	cfg := elephantlog.DefaultConfig()

	assert.True(t, cfg.DateInRange(elephantlog.Date{Year: 2000, Month: 1, Day: 1}))
	assert.True(t, cfg.DateInRange(elephantlog.Date{Year: 2025, Month: 12, Day: 31}))
	assert.False(t, cfg.DateInRange(elephantlog.Date{Year: 1999, Month: 12, Day: 31}))
	assert.False(t, cfg.DateInRange(elephantlog.Date{}))
}

func TestConfig_StateAllowed(t *testing.T) {
	t.Parallel()

	cfg := elephantlog.DefaultConfig()
	cfg.States = []elephantlog.State{elephantlog.Telangana}

	assert.True(t, cfg.StateAllowed(elephantlog.Telangana))
	assert.False(t, cfg.StateAllowed(elephantlog.Maharashtra))
	assert.False(t, cfg.StateAllowed(""))
}
