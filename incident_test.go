package elephantlog_test

import (
	"testing"

	"github.com/fwojciec/elephantlog"
	"github.com/stretchr/testify/assert"
)

func TestParseIncidentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want elephantlog.IncidentType
		ok   bool
	}{
		{"death", elephantlog.IncidentDeath, true},
		{"Crop Damage", elephantlog.IncidentCropDamage, true},
		{"property-damage", elephantlog.IncidentPropertyDamage, true},
		{" sighting ", elephantlog.IncidentSighting, true},
		{"rampage", "", false},
	}
	for _, tt := range tests {
		got, ok := elephantlog.ParseIncidentType(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestIncidentPrecedence(t *testing.T) {
	t.Parallel()

	p := elephantlog.IncidentPrecedence()

	assert.Equal(t, elephantlog.IncidentDeath, p[0])
	assert.Equal(t, elephantlog.IncidentAttack, p[1])
	assert.Equal(t, elephantlog.IncidentOther, p[len(p)-1])
}

func TestDamageSet(t *testing.T) {
	t.Parallel()

	t.Run("orders canonically and drops duplicates", func(t *testing.T) {
		t.Parallel()

		s := elephantlog.NewDamageSet(elephantlog.DamageOther, elephantlog.DamageCrop, elephantlog.DamageCrop)
		assert.Equal(t, elephantlog.DamageSet{elephantlog.DamageCrop, elephantlog.DamageOther}, s)
		assert.Equal(t, "crop, other", s.String())
		assert.True(t, s.Has(elephantlog.DamageCrop))
		assert.False(t, s.Has(elephantlog.DamageProperty))
	})

	t.Run("parses the column form", func(t *testing.T) {
		t.Parallel()

		s := elephantlog.ParseDamageSet("property, Crop, fence")
		assert.Equal(t, elephantlog.DamageSet{elephantlog.DamageCrop, elephantlog.DamageProperty}, s)
		assert.Empty(t, elephantlog.ParseDamageSet(""))
	})
}

func TestIncidentRecord_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *elephantlog.IncidentRecord {
		return &elephantlog.IncidentRecord{
			URL:      "https://example.com/a",
			Location: elephantlog.Location{State: elephantlog.Chhattisgarh},
		}
	}

	assert.NoError(t, valid().Validate())

	r := valid()
	r.URL = ""
	assert.Equal(t, elephantlog.EINVALID, elephantlog.ErrorCode(r.Validate()))

	r = valid()
	r.Location.State = ""
	assert.Equal(t, elephantlog.EINVALID, elephantlog.ErrorCode(r.Validate()))

	r = valid()
	r.ElephantCount = elephantlog.Int(-1)
	assert.Equal(t, elephantlog.EINVALID, elephantlog.ErrorCode(r.Validate()))
}

func TestParseState(t *testing.T) {
	t.Parallel()

	s, ok := elephantlog.ParseState("  andhra pradesh ")
	assert.True(t, ok)
	assert.Equal(t, elephantlog.AndhraPradesh, s)

	_, ok = elephantlog.ParseState("Odisha")
	assert.False(t, ok)
}
