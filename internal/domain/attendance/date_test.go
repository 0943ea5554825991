package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBusinessDate(t *testing.T) {
	d, err := ParseBusinessDate("2025-01-30")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-30", d.String())
	assert.Equal(t, Month{Year: 2025, Month: time.January}, d.Month())

	_, err = ParseBusinessDate("30-01-2025")
	assert.Error(t, err)

	_, err = ParseBusinessDate("")
	assert.Error(t, err)
}

func TestBusinessDateOfUsesWallClockDate(t *testing.T) {
	// 23:30 local on Jan 1 stays Jan 1 regardless of what instant it is in UTC.
	loc := time.FixedZone("plus5", 5*3600)
	local := time.Date(2025, time.January, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, "2025-01-01", BusinessDateOf(local).String())
}

func TestBusinessDateAddDays(t *testing.T) {
	d, _ := ParseBusinessDate("2025-01-31")
	assert.Equal(t, "2025-02-01", d.AddDays(1).String())
	assert.Equal(t, "2025-01-30", d.AddDays(-1).String())

	// Leap year
	d, _ = ParseBusinessDate("2024-02-28")
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
}

func TestBusinessDateDaysUntil(t *testing.T) {
	start, _ := ParseBusinessDate("2025-01-30")
	end, _ := ParseBusinessDate("2025-02-01")

	assert.Equal(t, 3, start.DaysUntil(end))
	assert.Equal(t, 1, start.DaysUntil(start))
	assert.Equal(t, 0, end.DaysUntil(start))
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-02")
	require.NoError(t, err)
	assert.Equal(t, "2025-02", m.String())
	assert.False(t, m.IsZero())

	_, err = ParseMonth("2025-2")
	assert.Error(t, err)

	assert.True(t, Month{}.IsZero())
}

func TestParseShiftTime(t *testing.T) {
	st, err := ParseShiftTime("09:00")
	require.NoError(t, err)
	assert.Equal(t, 540, st.Minutes())
	assert.Equal(t, "09:00", st.String())

	for _, bad := range []string{"9", "24:00", "09:60", "ab:cd", ""} {
		_, err := ParseShiftTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestShiftWindowCrossesMidnight(t *testing.T) {
	day, err := ParseShiftWindow("09:00", "17:00")
	require.NoError(t, err)
	assert.False(t, day.CrossesMidnight())

	night, err := ParseShiftWindow("22:00", "06:00")
	require.NoError(t, err)
	assert.True(t, night.CrossesMidnight())
}
