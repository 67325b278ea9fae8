package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths_ClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		months int
		want   time.Time
	}{
		{"jan 31 to feb non-leap", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"jan 31 to feb leap", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"year rollover", date(2025, time.December, 15), 1, date(2026, time.January, 15)},
		{"quarter from mar 31", date(2025, time.March, 31), 3, date(2025, time.June, 30)},
		{"leap day plus a year", date(2024, time.February, 29), 12, date(2025, time.February, 28)},
		{"zero months", date(2025, time.May, 31), 0, date(2025, time.May, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.from, tt.months))
		})
	}
}

func TestAddMonths_IteratedClampingKeepsShortDay(t *testing.T) {
	d := date(2025, time.January, 31)
	d = AddMonths(d, 1)
	assert.Equal(t, date(2025, time.February, 28), d)
	d = AddMonths(d, 1)
	assert.Equal(t, date(2025, time.March, 28), d)
}

func TestNextWeekday(t *testing.T) {
	// 2025-10-22 is a Wednesday
	assert.Equal(t, date(2025, time.October, 24), NextPayDate(date(2025, time.October, 22)))
	// a Friday is its own next pay date
	assert.Equal(t, date(2025, time.October, 24), NextPayDate(date(2025, time.October, 24)))
	// Saturday rolls to the following Friday
	assert.Equal(t, date(2025, time.October, 31), NextPayDate(date(2025, time.October, 25)))
}

func TestDay_TruncatesClock(t *testing.T) {
	in := time.Date(2025, time.October, 22, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, date(2025, time.October, 22), Day(in))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.February, 28), d)

	_, err = ParseDate("28/02/2025")
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = ParseDate("2025-02-30")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
