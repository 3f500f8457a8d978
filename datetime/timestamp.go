package datetime

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arloliu/pgcodec/errs"
	"github.com/arloliu/pgcodec/internal/pool"
)

// ParseTimestamp parses timestamp text into microseconds since
// 2000-01-01 00:00:00.
//
// The date part accepts everything ParseDate does; the time part is
// "HH:MM[:SS[.ffffff]]" separated from the date by whitespace or an ISO 'T'.
// Fractional digits past microsecond precision are truncated. Exactly
// "24:00:00" is accepted and rolls over into the next day. A trailing zone
// marker ("Z", "UTC", "GMT", or a "+HH[:MM]" offset, attached to the time or
// whitespace-separated) is accepted and discarded: Timestamp is zone-naive.
//
// Unrecognized text returns errs.ErrBadTimestamp; well-formed text outside
// the representable range (4714-11-24 BC through 294276 AD) returns
// errs.ErrTimestampOutOfRange.
func ParseTimestamp(text string) (Timestamp, error) {
	s := normalizeISOSeparator(strings.TrimSpace(text))
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", errs.ErrBadTimestamp)
	}

	var dateParts []string
	var timeText string
	for _, field := range strings.Fields(s) {
		lower := strings.ToLower(field)
		switch {
		case isZoneOffset(field):
			// numeric offsets are discarded
		case strings.Contains(field, ":"):
			if timeText != "" {
				return 0, fmt.Errorf("%w: duplicate time field %q", errs.ErrBadTimestamp, field)
			}
			timeText = stripZoneSuffix(field)
		case lower == "z" || lower == "utc" || lower == "gmt":
			// zone markers are discarded
		default:
			dateParts = append(dateParts, field)
		}
	}
	if len(dateParts) == 0 {
		return 0, fmt.Errorf("%w: missing date in %q", errs.ErrBadTimestamp, text)
	}

	cal, err := ParseDate(strings.Join(dateParts, " "))
	if err != nil {
		if errors.Is(err, errs.ErrBadDate) {
			return 0, fmt.Errorf("%w: %q", errs.ErrBadTimestamp, text)
		}

		return 0, err
	}

	var clock timeOfDay
	if timeText != "" {
		clock, err = scanTimeOfDay(timeText)
		if err != nil {
			return 0, err
		}
		if clock.negative || clock.hour > 24 ||
			(clock.hour == 24 && (clock.minute != 0 || clock.second != 0 || clock.microseconds != 0)) ||
			(clock.second == 60 && clock.microseconds != 0) {
			return 0, fmt.Errorf("%w: time of day out of range in %q", errs.ErrBadTimestamp, text)
		}
	}

	days, err := DateFromCalendar(cal)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrTimestampOutOfRange, text)
	}

	// Guard the multiply below: day counts past the timestamp range would
	// overflow int64 microseconds.
	const maxTimestampDayCount = 106_751_983 // julian day of 294277-01-01 relative to the epoch
	if int64(days) > maxTimestampDayCount {
		return 0, fmt.Errorf("%w: %q", errs.ErrTimestampOutOfRange, text)
	}

	ts := Timestamp(int64(days)*usecsPerDay + clock.usecs())
	if ts < MinTimestamp || ts > MaxTimestamp {
		return 0, fmt.Errorf("%w: %q", errs.ErrTimestampOutOfRange, text)
	}

	return ts, nil
}

// normalizeISOSeparator rewrites a 'T' between date and time digits into a
// space so that "2024-01-15T10:30:00" splits into fields.
func normalizeISOSeparator(s string) string {
	for i := 1; i+1 < len(s); i++ {
		if (s[i] == 'T' || s[i] == 't') && isDigit(s[i-1]) && isDigit(s[i+1]) {
			return s[:i] + " " + s[i+1:]
		}
	}

	return s
}

// isZoneOffset reports whether field is a standalone numeric UTC offset of
// the form "+HH", "-HH", "+HH:MM", or "-HH:MM".
func isZoneOffset(field string) bool {
	if len(field) < 2 || (field[0] != '+' && field[0] != '-') {
		return false
	}

	hh, mm, hasMinute := strings.Cut(field[1:], ":")
	if len(hh) < 1 || len(hh) > 2 || !allDigits(hh) {
		return false
	}
	if hasMinute && (len(mm) != 2 || !allDigits(mm)) {
		return false
	}

	return true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}

	return true
}

// stripZoneSuffix removes a trailing "Z" or "+HH[:MM]" offset from a time
// field. A '-' only terminates the time once a ':' has been seen, so the
// field itself is never truncated.
func stripZoneSuffix(field string) string {
	colon := strings.IndexByte(field, ':')
	for i := colon + 1; i < len(field); i++ {
		if field[i] == '+' || field[i] == '-' {
			return field[:i]
		}
	}
	if last := len(field) - 1; last >= 0 && (field[last] == 'Z' || field[last] == 'z') {
		return field[:last]
	}

	return field
}

// FormatTimestamp renders a timestamp in the canonical form
// "YYYY-MM-DD HH:MM:SS[.ffffff]", with trailing fractional zeros trimmed and
// a " BC" suffix after the time for dates before year 1.
func FormatTimestamp(ts Timestamp) (string, error) {
	if ts < MinTimestamp || ts > MaxTimestamp {
		return "", fmt.Errorf("%w: %d", errs.ErrTimestampOutOfRange, int64(ts))
	}

	days := int64(ts) / usecsPerDay
	rem := int64(ts) % usecsPerDay
	if rem < 0 {
		rem += usecsPerDay
		days--
	}

	year, month, day := julianToCalendar(int(days) + postgresEpochJulian)
	bc := year <= 0
	if bc {
		year = 1 - year
	}

	buf := pool.GetFormatBuffer()
	defer pool.PutFormatBuffer(buf)

	appendPadded(buf, year, 4)
	_ = buf.WriteByte('-')
	appendPadded(buf, month, 2)
	_ = buf.WriteByte('-')
	appendPadded(buf, day, 2)
	_ = buf.WriteByte(' ')
	appendClock(buf, rem)
	if bc {
		_, _ = buf.WriteString(" BC")
	}

	return buf.String(), nil
}

// appendClock writes "HH:MM:SS[.ffffff]" for a non-negative intra-day
// microsecond count, trimming trailing zeros from the fraction.
func appendClock(buf *pool.ByteBuffer, usecs int64) {
	hour := usecs / usecsPerHour
	usecs -= hour * usecsPerHour
	minute := usecs / usecsPerMinute
	usecs -= minute * usecsPerMinute
	second := usecs / usecsPerSecond
	fsec := usecs - second*usecsPerSecond

	appendPadded(buf, int(hour), 2)
	_ = buf.WriteByte(':')
	appendPadded(buf, int(minute), 2)
	_ = buf.WriteByte(':')
	appendPadded(buf, int(second), 2)

	if fsec != 0 {
		_ = buf.WriteByte('.')
		start := buf.Len()
		appendPadded(buf, int(fsec), 6)
		end := buf.Len()
		for end > start && buf.B[end-1] == '0' {
			end--
		}
		buf.B = buf.B[:end]
	}
}
