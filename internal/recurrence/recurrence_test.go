package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		n      int
		want   time.Time
	}{
		{"zero months", date(2025, 1, 15), 0, date(2025, 1, 15)},
		{"keeps day of month", date(2025, 1, 15), 2, date(2025, 3, 15)},
		{"clamps to february", date(2025, 1, 31), 1, date(2025, 2, 28)},
		{"clamps to leap february", date(2024, 1, 31), 1, date(2024, 2, 29)},
		{"clamps to thirty day month", date(2025, 3, 31), 1, date(2025, 4, 30)},
		{"does not carry clamp forward", date(2025, 1, 31), 2, date(2025, 3, 31)},
		{"crosses year boundary", date(2025, 11, 30), 3, date(2026, 2, 28)},
		{"drops time of day", time.Date(2025, 5, 10, 18, 30, 0, 0, time.UTC), 1, date(2025, 6, 10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AddMonths(tc.anchor, tc.n))
		})
	}
}

func TestValidateInstallments(t *testing.T) {
	assert.NoError(t, ValidateInstallments(1))
	assert.NoError(t, ValidateInstallments(MaxInstallments))
	assert.ErrorIs(t, ValidateInstallments(0), ErrInvalidInstallments)
	assert.ErrorIs(t, ValidateInstallments(-3), ErrInvalidInstallments)
	assert.ErrorIs(t, ValidateInstallments(MaxInstallments+1), ErrInvalidInstallments)
}

func TestExpand(t *testing.T) {
	t.Run("produces n monthly dates with shared end date", func(t *testing.T) {
		s, err := Expand(date(2025, 1, 15), 3)
		require.NoError(t, err)

		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []time.Time{date(2025, 1, 15), date(2025, 2, 15), date(2025, 3, 15)}, s.Dates)
		assert.Equal(t, date(2025, 3, 15), s.EndDate)
	})

	t.Run("single installment ends on anchor", func(t *testing.T) {
		s, err := Expand(date(2025, 7, 1), 1)
		require.NoError(t, err)

		assert.Equal(t, []time.Time{date(2025, 7, 1)}, s.Dates)
		assert.Equal(t, date(2025, 7, 1), s.EndDate)
	})

	t.Run("each date is computed from the anchor", func(t *testing.T) {
		s, err := Expand(date(2025, 1, 31), 4)
		require.NoError(t, err)

		assert.Equal(t, []time.Time{
			date(2025, 1, 31), date(2025, 2, 28), date(2025, 3, 31), date(2025, 4, 30),
		}, s.Dates)
	})

	t.Run("rejects invalid counts", func(t *testing.T) {
		_, err := Expand(date(2025, 1, 1), 0)
		assert.ErrorIs(t, err, ErrInvalidInstallments)
	})
}

func TestNewGroupID(t *testing.T) {
	a, b := NewGroupID(), NewGroupID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
