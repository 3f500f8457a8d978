package datetime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/pgcodec/errs"
	"github.com/arloliu/pgcodec/internal/pool"
)

// ParseDate parses date text into a CalendarDate.
//
// Accepted forms include ISO dates ("2024-01-15", "2024/01/15", "2024.01.15"),
// month-name forms ("Jan 15 2024", "15 Jan 2024", "January 15, 2024"), and an
// optional BC/AD era suffix. Ambiguous all-numeric dates use MDY field order
// ("1/15/2024"). Returns errs.ErrBadDate for unrecognized text.
//
// The special literals "infinity", "-infinity", "epoch" and "now" are
// rejected; DayCount carries no sentinel values.
func ParseDate(text string) (CalendarDate, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return CalendarDate{}, fmt.Errorf("%w: empty input", errs.ErrBadDate)
	}

	fields, err := scanDateFields(s)
	if err != nil {
		return CalendarDate{}, err
	}

	return fields.resolve()
}

// DateFromCalendar converts a calendar date to its day count via a Julian-day
// intermediate. Returns errs.ErrDateOutOfRange if the date falls outside the
// representable range (4714-11-24 BC through 5874897-12-31); a malformed
// month or day also maps to errs.ErrDateOutOfRange since the triple is
// structurally, not textually, invalid.
func DateFromCalendar(cal CalendarDate) (DayCount, error) {
	if cal.Month < 1 || cal.Month > monthsPerYear ||
		cal.Day < 1 || cal.Day > daysInMonth(cal.Year, cal.Month) {
		return 0, fmt.Errorf("%w: invalid calendar triple %d-%d-%d",
			errs.ErrDateOutOfRange, cal.Year, cal.Month, cal.Day)
	}

	// Guard the Julian conversion itself; julianFromCalendar is not defined
	// below Julian day 0.
	if cal.Year < -4714 || cal.Year > 5874897 {
		return 0, fmt.Errorf("%w: year %d", errs.ErrDateOutOfRange, cal.Year)
	}

	days := DayCount(julianFromCalendar(cal.Year, cal.Month, cal.Day) - postgresEpochJulian)
	if days < MinDayCount || days > MaxDayCount {
		return 0, fmt.Errorf("%w: %d-%02d-%02d", errs.ErrDateOutOfRange, cal.Year, cal.Month, cal.Day)
	}

	return days, nil
}

// DateToCalendar converts a day count back to its calendar date. Exact
// bit-for-bit inverse of DateFromCalendar for all representable day counts.
func DateToCalendar(days DayCount) (CalendarDate, error) {
	if days < MinDayCount || days > MaxDayCount {
		return CalendarDate{}, fmt.Errorf("%w: day count %d", errs.ErrDateOutOfRange, days)
	}

	year, month, day := julianToCalendar(int(days) + postgresEpochJulian)

	return CalendarDate{Year: year, Month: month, Day: day}, nil
}

// FormatDate renders a day count in the canonical textual form "YYYY-MM-DD",
// widening the year past four digits when needed and appending " BC" for
// dates before year 1.
func FormatDate(days DayCount) (string, error) {
	cal, err := DateToCalendar(days)
	if err != nil {
		return "", err
	}

	buf := pool.GetFormatBuffer()
	defer pool.PutFormatBuffer(buf)

	appendDate(buf, cal)

	return buf.String(), nil
}

// appendDate writes "YYYY-MM-DD[ BC]" into buf.
func appendDate(buf *pool.ByteBuffer, cal CalendarDate) {
	year := cal.Year
	bc := year <= 0
	if bc {
		year = 1 - year
	}

	appendPadded(buf, year, 4)
	_ = buf.WriteByte('-')
	appendPadded(buf, cal.Month, 2)
	_ = buf.WriteByte('-')
	appendPadded(buf, cal.Day, 2)
	if bc {
		_, _ = buf.WriteString(" BC")
	}
}

// appendPadded writes value left-padded with zeros to at least width digits.
func appendPadded(buf *pool.ByteBuffer, value, width int) {
	digits := len(strconv.Itoa(value))
	for ; digits < width; digits++ {
		_ = buf.WriteByte('0')
	}
	buf.B = strconv.AppendInt(buf.B, int64(value), 10)
}
