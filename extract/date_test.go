package extract_test

import (
	"testing"
	"time"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNormalizer() *extract.DateNormalizer {
	n := extract.NewDateNormalizer(elephantlog.DefaultConfig())
	n.Now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }
	return n
}

func TestDateNormalizer_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want elephantlog.Date
	}{
		{"ISO date", "2021-03-14", elephantlog.Date{Year: 2021, Month: 3, Day: 14}},
		{"ISO timestamp", "2021-03-14T10:30:00+05:30", elephantlog.Date{Year: 2021, Month: 3, Day: 14}},
		{"day month year", "14 March 2021", elephantlog.Date{Year: 2021, Month: 3, Day: 14}},
		{"ordinal day", "14th Mar, 2021", elephantlog.Date{Year: 2021, Month: 3, Day: 14}},
		{"month day year", "March 14, 2021", elephantlog.Date{Year: 2021, Month: 3, Day: 14}},
		{"numeric day first", "14/03/2021", elephantlog.Date{Year: 2021, Month: 3, Day: 14}},
		{"numeric year first", "2021/03/14", elephantlog.Date{Year: 2021, Month: 3, Day: 14}},
		{"labelled with weekday and clock", "Updated: Monday, Jan 15, 2024 10:30 IST", elephantlog.Date{Year: 2024, Month: 1, Day: 15}},
		{"yesterday", "yesterday", elephantlog.Date{Year: 2024, Month: 1, Day: 14}},
		{"days ago", "2 days ago", elephantlog.Date{Year: 2024, Month: 1, Day: 13}},
		{"a week ago", "a week ago", elephantlog.Date{Year: 2024, Month: 1, Day: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := newNormalizer().Parse([]string{tt.in})
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("first candidate that parses wins", func(t *testing.T) {
		t.Parallel()

		got, ok := newNormalizer().Parse([]string{"not a date", "14 March 2021", "2020-01-01"})
		require.True(t, ok)
		assert.Equal(t, elephantlog.Date{Year: 2021, Month: 3, Day: 14}, got)
	})

	t.Run("unresolved when nothing parses", func(t *testing.T) {
		t.Parallel()

		_, ok := newNormalizer().Parse([]string{"", "sometime last spring"})
		assert.False(t, ok)
	})

	t.Run("rejects impossible calendar days", func(t *testing.T) {
		t.Parallel()

		_, ok := newNormalizer().Parse([]string{"2021-02-30"})
		assert.False(t, ok)
	})
}

func TestDateNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("returns in-range dates unchanged", func(t *testing.T) {
		t.Parallel()

		for _, y := range []int{2000, 2012, 2025} {
			d := elephantlog.Date{Year: y, Month: 6, Day: 1}
			got, ok := newNormalizer().Normalize([]string{d.String()})
			require.True(t, ok, y)
			assert.Equal(t, d, got)
		}
	})

	t.Run("out-of-range dates are unresolved", func(t *testing.T) {
		t.Parallel()

		_, ok := newNormalizer().Normalize([]string{"12 June 1999"})
		assert.False(t, ok)

		_, ok = newNormalizer().Normalize([]string{"2026-01-01"})
		assert.False(t, ok)
	})

	t.Run("an out-of-range first candidate is not skipped", func(t *testing.T) {
		t.Parallel()

		_, ok := newNormalizer().Normalize([]string{"1999-05-01", "2021-03-14"})
		assert.False(t, ok)
	})
}

func TestFindDates(t *testing.T) {
	t.Parallel()

	got := extract.FindDates("Reported on 14 March 2021 and again on 2021-03-20, then on 02/04/2021.")
	assert.Equal(t, []string{"14 March 2021", "2021-03-20", "02/04/2021"}, got)
}

func TestDateCandidates(t *testing.T) {
	t.Parallel()

	a := &elephantlog.Article{
		URL:       "https://example.com/a",
		Title:     "Herd sighted on March 2, 2021",
		Text:      "The herd returned on 14 March 2021.",
		Published: "2021-03-15",
	}
	assert.Equal(t, []string{"2021-03-15", "March 2, 2021", "14 March 2021"}, extract.DateCandidates(a))
}
