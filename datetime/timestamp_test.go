package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/pgcodec/errs"
)

func TestParseTimestamp_Epoch(t *testing.T) {
	ts, err := ParseTimestamp("2000-01-01 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, Timestamp(0), ts)
}

func TestParseTimestamp_Forms(t *testing.T) {
	const dayUs = 86_400_000_000

	tests := []struct {
		input string
		want  Timestamp
	}{
		{"2000-01-01 00:00:01", 1_000_000},
		{"2000-01-01 00:00:01.5", 1_500_000},
		{"2000-01-02 00:00:00", dayUs},
		{"1999-12-31 23:59:59", -1_000_000},
		{"2000-01-01", 0}, // date only, midnight
		{"2024-01-15 10:30:00", 8780*dayUs + 10*3_600_000_000 + 30*60_000_000},
		{"2024-01-15T10:30:00", 8780*dayUs + 10*3_600_000_000 + 30*60_000_000},
		{"2024-01-15 10:30", 8780*dayUs + 10*3_600_000_000 + 30*60_000_000},
		{"Jan 15 2024 10:30:00", 8780*dayUs + 10*3_600_000_000 + 30*60_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := ParseTimestamp(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts)
		})
	}
}

func TestParseTimestamp_ZoneMarkersDiscarded(t *testing.T) {
	// The codec is zone-naive; markers are accepted and ignored.
	want, err := ParseTimestamp("2024-01-15 10:30:00")
	require.NoError(t, err)

	for _, input := range []string{
		"2024-01-15 10:30:00Z",
		"2024-01-15T10:30:00Z",
		"2024-01-15 10:30:00+05:30",
		"2024-01-15 10:30:00-08",
		"2024-01-15 10:30:00 UTC",
		"2024-01-15 10:30:00 GMT",
		"2024-01-15 10:30:00 +05:30",
		"2024-01-15 10:30:00 +05",
		"2024-01-15 10:30:00 -08",
		"2024-01-15 10:30:00 -8",
	} {
		t.Run(input, func(t *testing.T) {
			ts, err := ParseTimestamp(input)
			require.NoError(t, err)
			assert.Equal(t, want, ts)
		})
	}

	// A malformed offset is not silently discarded.
	for _, input := range []string{
		"2024-01-15 10:30:00 +0a",
		"2024-01-15 10:30:00 +055",
		"2024-01-15 10:30:00 +05:5",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimestamp(input)
			require.ErrorIs(t, err, errs.ErrBadTimestamp)
		})
	}
}

func TestParseTimestamp_MidnightRollover(t *testing.T) {
	// 24:00:00 is the only hour-24 clock accepted; it lands on the next
	// day's midnight.
	want, err := ParseTimestamp("2024-01-16 00:00:00")
	require.NoError(t, err)

	ts, err := ParseTimestamp("2024-01-15 24:00:00")
	require.NoError(t, err)
	assert.Equal(t, want, ts)

	ts, err = ParseTimestamp("2024-01-15 24:00")
	require.NoError(t, err)
	assert.Equal(t, want, ts)

	for _, input := range []string{
		"2024-01-15 24:00:01",
		"2024-01-15 24:01:00",
		"2024-01-15 24:00:00.5",
		"2024-01-15 25:00:00",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimestamp(input)
			require.ErrorIs(t, err, errs.ErrBadTimestamp)
		})
	}
}

func TestParseTimestamp_FractionTruncation(t *testing.T) {
	// Sub-microsecond digits truncate, never round.
	ts, err := ParseTimestamp("2000-01-01 00:00:00.1234567")
	require.NoError(t, err)
	assert.Equal(t, Timestamp(123_456), ts)

	ts, err = ParseTimestamp("2000-01-01 00:00:00.9999999")
	require.NoError(t, err)
	assert.Equal(t, Timestamp(999_999), ts)
}

func TestParseTimestamp_BC(t *testing.T) {
	ts, err := ParseTimestamp("0001-01-01 00:00:00 BC")
	require.NoError(t, err)
	assert.Equal(t, Timestamp(-730485*86_400_000_000), ts)

	ts, err = ParseTimestamp("4714-11-24 00:00:00 BC")
	require.NoError(t, err)
	assert.Equal(t, MinTimestamp, ts)
}

func TestParseTimestamp_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"not a timestamp",
		"2024-13-40 00:00:00",
		"2024-01-15 25:00:00",
		"2024-01-15 10:61:00",
		"2024-01-15 10:30:",
		"10:30:00", // time without a date
		"infinity",
		"-infinity",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimestamp(input)
			require.ErrorIs(t, err, errs.ErrBadTimestamp)
		})
	}
}

func TestParseTimestamp_OutOfRange(t *testing.T) {
	// Well-formed but outside the 64-bit microsecond range: a distinct error
	// from a grammar failure.
	_, err := ParseTimestamp("294277-01-01 00:00:00")
	require.ErrorIs(t, err, errs.ErrTimestampOutOfRange)
	require.NotErrorIs(t, err, errs.ErrBadTimestamp)

	_, err = ParseTimestamp("4714-11-23 00:00:00 BC")
	require.ErrorIs(t, err, errs.ErrTimestampOutOfRange)
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		ts   Timestamp
		want string
	}{
		{0, "2000-01-01 00:00:00"},
		{1_500_000, "2000-01-01 00:00:01.5"},
		{123_456, "2000-01-01 00:00:00.123456"},
		{120_000, "2000-01-01 00:00:00.12"},
		{-1_000_000, "1999-12-31 23:59:59"},
		{-1, "1999-12-31 23:59:59.999999"},
		{86_400_000_000, "2000-01-02 00:00:00"},
		{-730485 * 86_400_000_000, "0001-01-01 00:00:00 BC"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := FormatTimestamp(tt.ts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatTimestamp_RoundTrip(t *testing.T) {
	values := []Timestamp{
		MinTimestamp, -730485 * 86_400_000_000, -1_000_000, -1, 0, 1,
		1_500_000, 8780 * 86_400_000_000, MaxTimestamp,
	}
	for _, ts := range values {
		text, err := FormatTimestamp(ts)
		require.NoError(t, err)

		back, err := ParseTimestamp(text)
		require.NoError(t, err)
		require.Equal(t, ts, back, "round trip through %q", text)
	}
}

func BenchmarkParseTimestamp(b *testing.B) {
	for bi := 0; bi < b.N; bi++ {
		_, _ = ParseTimestamp("2024-01-15 10:30:00.123456")
	}
}

func BenchmarkFormatTimestamp(b *testing.B) {
	for bi := 0; bi < b.N; bi++ {
		_, _ = FormatTimestamp(758_629_800_123_456)
	}
}
