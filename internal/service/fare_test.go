package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot/internal/db"
)

func TestCalculateFare(t *testing.T) {
	entry := time.Date(2025, 1, 18, 14, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		exit        time.Time
		hourlyPrice float64
		expected    float64
	}{
		{
			name:        "two and a half hours",
			exit:        entry.Add(2*time.Hour + 30*time.Minute),
			hourlyPrice: 5.00,
			expected:    12.50,
		},
		{
			name:        "exact hours",
			exit:        entry.Add(3 * time.Hour),
			hourlyPrice: 5.00,
			expected:    15.00,
		},
		{
			name:        "partial hour is billed proportionally, not rounded up",
			exit:        entry.Add(45 * time.Minute),
			hourlyPrice: 5.00,
			expected:    3.75,
		},
		{
			name:        "one minute",
			exit:        entry.Add(time.Minute),
			hourlyPrice: 6.00,
			expected:    0.10,
		},
		{
			name:        "half a cent rounds up",
			exit:        entry.Add(30 * time.Minute),
			hourlyPrice: 0.01,
			expected:    0.01,
		},
		{
			name:        "zero price",
			exit:        entry.Add(4 * time.Hour),
			hourlyPrice: 0,
			expected:    0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := CalculateFare(entry, tc.exit, tc.hourlyPrice)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, amount, 0.0001)
		})
	}
}

func TestCalculateFareRejectsNonPositiveDuration(t *testing.T) {
	entry := time.Date(2025, 1, 18, 14, 0, 0, 0, time.UTC)

	_, err := CalculateFare(entry, entry, 5.00)
	assert.True(t, errors.Is(err, db.ErrInvalidDuration), "exit equal to entry must be rejected")

	_, err = CalculateFare(entry, entry.Add(-time.Second), 5.00)
	assert.True(t, errors.Is(err, db.ErrInvalidDuration), "exit before entry must be rejected")

	_, err = CalculateFare(entry, entry.Add(-time.Hour), 0)
	assert.True(t, errors.Is(err, db.ErrInvalidDuration), "hourly price does not bypass the duration check")
}
