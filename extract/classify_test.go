package extract_test

import (
	"testing"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassifier(t *testing.T) *extract.Classifier {
	t.Helper()
	c, err := extract.DefaultClassifier()
	require.NoError(t, err)
	return c
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("ties break toward the more severe type", func(t *testing.T) {
		t.Parallel()

		got := newClassifier(t).Classify("The elephant attack led to a death in the village.")
		assert.Equal(t, elephantlog.IncidentDeath, got.IncidentType)
	})

	t.Run("higher score beats precedence", func(t *testing.T) {
		t.Parallel()

		got := newClassifier(t).Classify("A herd was spotted roaming near the road; after the sighting one man reported an attack.")
		assert.Equal(t, elephantlog.IncidentSighting, got.IncidentType)
	})

	t.Run("crop raid with a herd", func(t *testing.T) {
		t.Parallel()

		got := newClassifier(t).Classify("On 14 March 2021, a herd of elephants entered a village in Bastar, Chhattisgarh, damaging crops. No casualties reported.")
		assert.Equal(t, elephantlog.IncidentCropDamage, got.IncidentType)
		assert.Equal(t, elephantlog.DamageSet{elephantlog.DamageCrop}, got.Damage)
	})

	t.Run("no keywords is other", func(t *testing.T) {
		t.Parallel()

		got := newClassifier(t).Classify("Officials held a meeting on Tuesday.")
		assert.Equal(t, elephantlog.IncidentOther, got.IncidentType)
		assert.Empty(t, got.Damage)
	})

	t.Run("damage categories are not exclusive", func(t *testing.T) {
		t.Parallel()

		got := newClassifier(t).Classify("Elephants damaged houses, trampled paddy fields and killed cattle.")
		assert.Equal(t, elephantlog.DamageSet{elephantlog.DamageCrop, elephantlog.DamageProperty, elephantlog.DamageOther}, got.Damage)
	})

	t.Run("matches whole words only", func(t *testing.T) {
		t.Parallel()

		got := newClassifier(t).Classify("The deadline for the warehouse was extended.")
		assert.Equal(t, elephantlog.IncidentOther, got.IncidentType)
		assert.Empty(t, got.Damage)
	})
}

func TestClassifier_Labels(t *testing.T) {
	t.Parallel()

	c := newClassifier(t)

	assert.Equal(t, elephantlog.IncidentCropDamage, c.IncidentType("Crop Damage"))
	assert.Equal(t, elephantlog.IncidentDeath, c.IncidentType("a man was trampled to death"))
	assert.Equal(t, elephantlog.IncidentOther, c.IncidentType("unclear"))

	assert.Equal(t, elephantlog.DamageSet{elephantlog.DamageCrop, elephantlog.DamageProperty}, c.DamageSet("Crop, Property"))
	assert.Equal(t, elephantlog.DamageSet{elephantlog.DamageCrop}, c.DamageSet("destroyed paddy fields"))
}

func TestLoadClassifier(t *testing.T) {
	t.Parallel()

	t.Run("rejects unknown incident types", func(t *testing.T) {
		t.Parallel()

		_, err := extract.LoadClassifier([]byte("incidents:\n  stampede: [ran]\n"))
		assert.Equal(t, elephantlog.EINVALID, elephantlog.ErrorCode(err))
	})

	t.Run("rejects unknown damage types", func(t *testing.T) {
		t.Parallel()

		_, err := extract.LoadClassifier([]byte("damage:\n  emotional: [fear]\n"))
		assert.Equal(t, elephantlog.EINVALID, elephantlog.ErrorCode(err))
	})

	t.Run("a keyword may count toward several types", func(t *testing.T) {
		t.Parallel()

		c, err := extract.LoadClassifier([]byte("incidents:\n  attack: [charged]\n  conflict: [charged, protest]\n"))
		require.NoError(t, err)
		assert.Equal(t, elephantlog.IncidentConflict, c.Classify("villagers charged and staged a protest").IncidentType)
		assert.Equal(t, elephantlog.IncidentAttack, c.Classify("the tusker charged").IncidentType)
	})
}
