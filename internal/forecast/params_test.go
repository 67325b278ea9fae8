package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams_Defaults(t *testing.T) {
	today := time.Date(2025, time.October, 20, 15, 4, 5, 0, time.UTC)

	p, err := ParseParams(DefaultParams(today), "", "", "")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.October, 20), p.StartDate)
	assert.Equal(t, DefaultMonthsToProject, p.MonthsToProject)
	assert.True(t, dec("100").Equal(p.Buffer))
	assert.Equal(t, date(2026, time.January, 20), p.EndDate())
}

func TestParseParams_Explicit(t *testing.T) {
	p, err := ParseParams(DefaultParams(time.Now()), "2025-01-31", "1", "250.75")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.January, 31), p.StartDate)
	assert.Equal(t, 1, p.MonthsToProject)
	assert.True(t, dec("250.75").Equal(p.Buffer))
	assert.Equal(t, date(2025, time.February, 28), p.EndDate())
}

func TestParseParams_Invalid(t *testing.T) {
	tests := []struct {
		name                  string
		start, months, buffer string
	}{
		{"malformed date", "2025/01/31", "", ""},
		{"negative horizon", "", "-1", ""},
		{"non-numeric horizon", "", "three", ""},
		{"non-numeric buffer", "", "", "lots"},
		{"negative buffer", "", "", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseParams(DefaultParams(time.Now()), tt.start, tt.months, tt.buffer)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestParseDays(t *testing.T) {
	n, err := ParseDays("", 30)
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	n, err = ParseDays("14", 30)
	require.NoError(t, err)
	assert.Equal(t, 14, n)

	_, err = ParseDays("-3", 30)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
