package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWorkDay(t *testing.T, day, start, end string) WorkDay {
	t.Helper()
	wd, err := NewWorkDay(day, start, end)
	require.NoError(t, err)
	return wd
}

func TestResolveTodayShift_AnchorsToReferenceDate(t *testing.T) {
	lagos, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)

	days := []WorkDay{mustWorkDay(t, "Monday", "09:00", "17:00")}
	// 2024-06-03 is a Monday.
	ref := time.Date(2024, 6, 3, 9, 30, 0, 0, lagos)

	window, err := ResolveTodayShift(days, ref)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, window.Day)
	assert.True(t, window.Start.Equal(time.Date(2024, 6, 3, 9, 0, 0, 0, lagos)))
	assert.True(t, window.End.Equal(time.Date(2024, 6, 3, 17, 0, 0, 0, lagos)))
}

func TestResolveTodayShift_UsesLocalCalendarDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	days := []WorkDay{mustWorkDay(t, "Tue", "08:00", "16:00")}
	// Monday 23:30 UTC is already Tuesday 08:30 in Tokyo.
	utc := time.Date(2024, 6, 3, 23, 30, 0, 0, time.UTC)

	_, err = ResolveTodayShift(days, utc)
	assert.ErrorIs(t, err, ErrNotScheduled)

	window, err := ResolveTodayShift(days, utc.In(tokyo))
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, window.Day)
	assert.Equal(t, 4, window.Start.Day())
}

func TestResolveTodayShift_NotScheduled(t *testing.T) {
	days := []WorkDay{
		mustWorkDay(t, "Monday", "09:00", "17:00"),
		mustWorkDay(t, "Tuesday", "09:00", "17:00"),
	}
	// 2024-06-05 is a Wednesday.
	_, err := ResolveTodayShift(days, time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNotScheduled)

	_, err = ResolveTodayShift(nil, time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNotScheduled)
}

func TestResolveTodayShift_FirstDuplicateWins(t *testing.T) {
	days := []WorkDay{
		mustWorkDay(t, "Monday", "07:00", "15:00"),
		mustWorkDay(t, "Monday", "09:00", "17:00"),
	}
	window, err := ResolveTodayShift(days, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 7, window.Start.Hour())
	assert.Equal(t, 15, window.End.Hour())
}

func TestValidateWorkDays(t *testing.T) {
	ok := []WorkDay{
		mustWorkDay(t, "Mon", "09:00", "17:00"),
		mustWorkDay(t, "Fri", "10:00", "14:30"),
	}
	assert.NoError(t, ValidateWorkDays(ok))

	dup := append(ok, mustWorkDay(t, "monday", "06:00", "10:00"))
	assert.ErrorIs(t, ValidateWorkDays(dup), ErrDuplicateWorkDay)

	backwards := []WorkDay{mustWorkDay(t, "Sat", "22:00", "06:00")}
	assert.ErrorIs(t, ValidateWorkDays(backwards), ErrShiftEndsBefore)
}

func TestParseClockTime(t *testing.T) {
	cases := map[string]ClockTime{
		"09:00":    {9, 0},
		"17:45":    {17, 45},
		"8:30 AM":  {8, 30},
		"12:00 AM": {0, 0},
		"12:15 pm": {12, 15},
		"5:00PM":   {17, 0},
	}
	for in, want := range cases {
		got, err := ParseClockTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "25:00", "9", "nine"} {
		_, err := ParseClockTime(bad)
		assert.ErrorIs(t, err, ErrInvalidClockTime, bad)
	}
}

func TestWorkDay_JSON(t *testing.T) {
	var days []WorkDay
	err := json.Unmarshal([]byte(`[{"day":"Mon","shift":{"start":"09:00","end":"17:00"}}]`), &days)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, time.Monday, days[0].Day)
	assert.Equal(t, ClockTime{17, 0}, days[0].Shift.End)

	out, err := json.Marshal(days)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"day":"Monday","shift":{"start":"09:00","end":"17:00"}}]`, string(out))

	err = json.Unmarshal([]byte(`[{"day":"Funday","shift":{"start":"09:00","end":"17:00"}}]`), &days)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}
