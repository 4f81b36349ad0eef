package entity_test

import (
	"testing"
	"time"

	"pet-rental/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string) entity.DateRange {
	t.Helper()
	rng, err := entity.ParseDateRange(start, end)
	require.NoError(t, err)
	return rng
}

func TestParseDateRange(t *testing.T) {
	rng := mustRange(t, "2026-03-10", "2026-03-14")
	assert.Equal(t, "2026-03-10", entity.FormatDate(rng.StartDate))
	assert.Equal(t, "2026-03-14", entity.FormatDate(rng.EndDate))

	_, err := entity.ParseDateRange("2026-03-14", "2026-03-10")
	assert.ErrorIs(t, err, entity.ErrInvalidDateRange)

	_, err = entity.ParseDateRange("not-a-date", "2026-03-10")
	assert.Error(t, err)
}

func TestSingleDayRange(t *testing.T) {
	rng := mustRange(t, "2026-03-10", "2026-03-10")
	assert.Equal(t, 1, rng.TotalDays())
	assert.Len(t, rng.Days(), 1)
}

func TestOverlaps(t *testing.T) {
	base := mustRange(t, "2026-03-10", "2026-03-14")

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"identical", "2026-03-10", "2026-03-14", true},
		{"contained", "2026-03-11", "2026-03-13", true},
		{"shared end day", "2026-03-14", "2026-03-20", true},
		{"shared start day", "2026-03-01", "2026-03-10", true},
		{"adjacent before", "2026-03-01", "2026-03-09", false},
		{"adjacent after", "2026-03-15", "2026-03-20", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := mustRange(t, tt.start, tt.end)
			assert.Equal(t, tt.want, base.Overlaps(other))
			assert.Equal(t, tt.want, other.Overlaps(base))
		})
	}
}

func TestTotalDaysInclusive(t *testing.T) {
	assert.Equal(t, 5, mustRange(t, "2026-03-10", "2026-03-14").TotalDays())
	assert.Equal(t, 2, mustRange(t, "2026-02-28", "2026-03-01").TotalDays())
}

func TestDays(t *testing.T) {
	days := mustRange(t, "2026-03-30", "2026-04-02").Days()
	require.Len(t, days, 4)
	assert.Equal(t, "2026-03-30", entity.FormatDate(days[0]))
	assert.Equal(t, "2026-04-02", entity.FormatDate(days[3]))
}

func TestIntersect(t *testing.T) {
	a := mustRange(t, "2026-03-10", "2026-03-14")
	b := mustRange(t, "2026-03-13", "2026-03-20")

	overlap, ok := a.Intersect(b)
	require.True(t, ok)
	assert.Equal(t, "2026-03-13", entity.FormatDate(overlap.StartDate))
	assert.Equal(t, "2026-03-14", entity.FormatDate(overlap.EndDate))

	c := mustRange(t, "2026-04-01", "2026-04-05")
	_, ok = a.Intersect(c)
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	rng := mustRange(t, "2026-03-10", "2026-03-14")

	day, _ := time.Parse("2006-01-02", "2026-03-10")
	assert.True(t, rng.Contains(day))

	day, _ = time.Parse("2006-01-02", "2026-03-15")
	assert.False(t, rng.Contains(day))
}

func TestNormalizeDateDropsTime(t *testing.T) {
	ts := time.Date(2026, 3, 10, 17, 45, 12, 0, time.UTC)
	day := entity.NormalizeDate(ts)
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, "2026-03-10", entity.FormatDate(day))
}
