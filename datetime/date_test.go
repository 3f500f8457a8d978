package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/pgcodec/errs"
)

func TestParseDate_ISO(t *testing.T) {
	tests := []struct {
		input string
		want  CalendarDate
	}{
		{"2024-01-15", CalendarDate{2024, 1, 15}},
		{"2000-01-01", CalendarDate{2000, 1, 1}},
		{"1999-12-31", CalendarDate{1999, 12, 31}},
		{"2024/01/15", CalendarDate{2024, 1, 15}},
		{"2024.01.15", CalendarDate{2024, 1, 15}},
		{"  2024-01-15  ", CalendarDate{2024, 1, 15}},
		{"2000-02-29", CalendarDate{2000, 2, 29}},
		{"5874897-12-31", CalendarDate{5874897, 12, 31}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate_MonthNames(t *testing.T) {
	tests := []struct {
		input string
		want  CalendarDate
	}{
		{"Jan 15 2024", CalendarDate{2024, 1, 15}},
		{"15 Jan 2024", CalendarDate{2024, 1, 15}},
		{"January 15, 2024", CalendarDate{2024, 1, 15}},
		{"2024 Jan 15", CalendarDate{2024, 1, 15}},
		{"15 DEC 1999", CalendarDate{1999, 12, 15}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate_FieldOrder(t *testing.T) {
	// Ambiguous all-numeric dates follow MDY, the default DateStyle.
	got, err := ParseDate("1/15/2024")
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{2024, 1, 15}, got)

	// Two-digit years expand: <70 into 2000s, >=70 into 1900s.
	got, err = ParseDate("1/15/24")
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{2024, 1, 15}, got)

	got, err = ParseDate("1/15/99")
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{1999, 1, 15}, got)
}

func TestParseDate_Era(t *testing.T) {
	// 1 BC is astronomical year 0.
	got, err := ParseDate("0001-01-01 BC")
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{0, 1, 1}, got)

	got, err = ParseDate("4714-11-24 BC")
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{-4713, 11, 24}, got)

	got, err = ParseDate("0001-01-01 AD")
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{1, 1, 1}, got)
}

func TestParseDate_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"2024-13-40",
		"2024-00-10",
		"2024-02-30",
		"2023-02-29",
		"0000-01-01",
		"2024-01",
		"garbage",
		"2024-01-15 nonsense",
		"infinity",
		"-infinity",
		"epoch",
		"now",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			require.ErrorIs(t, err, errs.ErrBadDate)
		})
	}
}

func TestDateFromCalendar_Scenarios(t *testing.T) {
	tests := []struct {
		cal  CalendarDate
		days DayCount
	}{
		{CalendarDate{2000, 1, 1}, 0},
		{CalendarDate{2000, 1, 2}, 1},
		{CalendarDate{1999, 12, 31}, -1},
		{CalendarDate{2000, 3, 1}, 60},   // 2000 is a leap year
		{CalendarDate{2024, 1, 15}, 8780},
		{CalendarDate{1970, 1, 1}, -10957},
		{CalendarDate{0, 1, 1}, -730485}, // 1 BC
		{CalendarDate{-4713, 11, 24}, MinDayCount},
		{CalendarDate{5874897, 12, 31}, MaxDayCount},
	}
	for _, tt := range tests {
		days, err := DateFromCalendar(tt.cal)
		require.NoError(t, err)
		assert.Equal(t, tt.days, days, "day count for %+v", tt.cal)
	}
}

func TestDateFromCalendar_Invalid(t *testing.T) {
	_, err := DateFromCalendar(CalendarDate{2024, 13, 1})
	require.ErrorIs(t, err, errs.ErrDateOutOfRange)

	_, err = DateFromCalendar(CalendarDate{2023, 2, 29})
	require.ErrorIs(t, err, errs.ErrDateOutOfRange)

	_, err = DateFromCalendar(CalendarDate{5874898, 1, 1})
	require.ErrorIs(t, err, errs.ErrDateOutOfRange)

	_, err = DateFromCalendar(CalendarDate{-4713, 11, 23})
	require.ErrorIs(t, err, errs.ErrDateOutOfRange)
}

func TestDateToCalendar_OutOfRange(t *testing.T) {
	_, err := DateToCalendar(MinDayCount - 1)
	require.ErrorIs(t, err, errs.ErrDateOutOfRange)

	_, err = DateToCalendar(MaxDayCount + 1)
	require.ErrorIs(t, err, errs.ErrDateOutOfRange)
}

func TestDate_RoundTrip_DayCounts(t *testing.T) {
	// fromCalendar(toCalendar(d)) == d across the range, including both
	// boundaries and dates far before the epoch.
	dayCounts := []DayCount{
		MinDayCount, -730485, -10957, -365, -1, 0, 1, 59, 60, 8780,
		36524, 146097, MaxDayCount,
	}
	for _, d := range dayCounts {
		cal, err := DateToCalendar(d)
		require.NoError(t, err)

		back, err := DateFromCalendar(cal)
		require.NoError(t, err)
		assert.Equal(t, d, back, "round trip for day count %d (%+v)", d, cal)
	}
}

func TestDate_RoundTrip_Sweep(t *testing.T) {
	// Dense sweep around the epoch plus a sparse sweep over four centuries;
	// catches any drift in the Julian conversion.
	for d := DayCount(-1000); d <= 1000; d++ {
		cal, err := DateToCalendar(d)
		require.NoError(t, err)
		back, err := DateFromCalendar(cal)
		require.NoError(t, err)
		require.Equal(t, d, back)
	}
	for d := DayCount(-146097); d <= 146097; d += 137 {
		cal, err := DateToCalendar(d)
		require.NoError(t, err)
		back, err := DateFromCalendar(cal)
		require.NoError(t, err)
		require.Equal(t, d, back)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		days DayCount
		want string
	}{
		{0, "2000-01-01"},
		{8780, "2024-01-15"},
		{-1, "1999-12-31"},
		{-730485, "0001-01-01 BC"},
		{MinDayCount, "4714-11-24 BC"},
		{MaxDayCount, "5874897-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := FormatDate(tt.days)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDate_ParseInverse(t *testing.T) {
	// format(parse(format(x))) must stabilize after one round trip.
	for _, d := range []DayCount{MinDayCount, -730485, 0, 8780, MaxDayCount} {
		text, err := FormatDate(d)
		require.NoError(t, err)

		cal, err := ParseDate(text)
		require.NoError(t, err)

		back, err := DateFromCalendar(cal)
		require.NoError(t, err)
		require.Equal(t, d, back)

		again, err := FormatDate(back)
		require.NoError(t, err)
		require.Equal(t, text, again)
	}
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, isLeapYear(2000))
	assert.True(t, isLeapYear(2024))
	assert.True(t, isLeapYear(0)) // 1 BC
	assert.False(t, isLeapYear(1900))
	assert.False(t, isLeapYear(2023))
	assert.True(t, isLeapYear(-4))  // 5 BC
	assert.False(t, isLeapYear(-1)) // 2 BC
}

func BenchmarkParseDate(b *testing.B) {
	for bi := 0; bi < b.N; bi++ {
		_, _ = ParseDate("2024-01-15")
	}
}

func BenchmarkFormatDate(b *testing.B) {
	for bi := 0; bi < b.N; bi++ {
		_, _ = FormatDate(8780)
	}
}
