package datetime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/pgcodec/errs"
	"github.com/arloliu/pgcodec/internal/pool"
)

// Interval unit multipliers. Month-class units accumulate on the month axis,
// everything else on the microsecond axis; the two never mix except through
// fractional spillover (0.5 year = 6 months, 0.5 month = 15 days).
type intervalUnit struct {
	months int64 // months contributed per unit value
	usecs  int64 // microseconds contributed per unit value
}

var intervalUnits = map[string]intervalUnit{
	"us": {usecs: 1}, "usec": {usecs: 1}, "usecs": {usecs: 1},
	"microsecond": {usecs: 1}, "microseconds": {usecs: 1},
	"ms": {usecs: 1000}, "msec": {usecs: 1000}, "msecs": {usecs: 1000},
	"millisecond": {usecs: 1000}, "milliseconds": {usecs: 1000},
	"s": {usecs: usecsPerSecond}, "sec": {usecs: usecsPerSecond}, "secs": {usecs: usecsPerSecond},
	"second": {usecs: usecsPerSecond}, "seconds": {usecs: usecsPerSecond},
	"m": {usecs: usecsPerMinute}, "min": {usecs: usecsPerMinute}, "mins": {usecs: usecsPerMinute},
	"minute": {usecs: usecsPerMinute}, "minutes": {usecs: usecsPerMinute},
	"h": {usecs: usecsPerHour}, "hr": {usecs: usecsPerHour}, "hrs": {usecs: usecsPerHour},
	"hour": {usecs: usecsPerHour}, "hours": {usecs: usecsPerHour},
	"d": {usecs: usecsPerDay}, "day": {usecs: usecsPerDay}, "days": {usecs: usecsPerDay},
	"w": {usecs: daysPerWeek * usecsPerDay}, "week": {usecs: daysPerWeek * usecsPerDay},
	"weeks": {usecs: daysPerWeek * usecsPerDay},
	"mon":   {months: 1}, "mons": {months: 1}, "month": {months: 1}, "months": {months: 1},
	"y": {months: monthsPerYear}, "yr": {months: monthsPerYear}, "yrs": {months: monthsPerYear},
	"year": {months: monthsPerYear}, "years": {months: monthsPerYear},
	"decade": {months: 10 * monthsPerYear}, "decades": {months: 10 * monthsPerYear},
	"dec": {months: 10 * monthsPerYear}, "decs": {months: 10 * monthsPerYear},
	"c":       {months: 100 * monthsPerYear},
	"cent":    {months: 100 * monthsPerYear},
	"century": {months: 100 * monthsPerYear}, "centuries": {months: 100 * monthsPerYear},
	"mil": {months: 1000 * monthsPerYear}, "mils": {months: 1000 * monthsPerYear},
	"millennium": {months: 1000 * monthsPerYear}, "millenniums": {months: 1000 * monthsPerYear},
	"millennia": {months: 1000 * monthsPerYear},
}

// intervalAcc accumulates components with overflow checking on both axes.
type intervalAcc struct {
	months int64
	usecs  int64
}

func (acc *intervalAcc) add(unit intervalUnit, whole int64, frac float64) error {
	if unit.months != 0 {
		months, overflow := mulInt64(whole, unit.months)
		if overflow {
			return fmt.Errorf("%w: month component", errs.ErrIntervalOutOfRange)
		}
		if acc.months, overflow = addInt64(acc.months, months); overflow {
			return fmt.Errorf("%w: month component", errs.ErrIntervalOutOfRange)
		}
		if frac != 0 {
			// Fractional months spill onto the microsecond axis at 30 days
			// per month, fractional years onto the month axis first.
			fracMonths := frac * float64(unit.months)
			wholeFrac := math.Trunc(fracMonths)
			if acc.months, overflow = addInt64(acc.months, int64(wholeFrac)); overflow {
				return fmt.Errorf("%w: month component", errs.ErrIntervalOutOfRange)
			}
			spill := int64(math.Round((fracMonths - wholeFrac) * float64(daysPerMonth) * float64(usecsPerDay)))
			if acc.usecs, overflow = addInt64(acc.usecs, spill); overflow {
				return fmt.Errorf("%w: time component", errs.ErrIntervalOutOfRange)
			}
		}

		return nil
	}

	usecs, overflow := mulInt64(whole, unit.usecs)
	if overflow {
		return fmt.Errorf("%w: time component", errs.ErrIntervalOutOfRange)
	}
	if frac != 0 {
		fracUsecs := int64(math.Round(frac * float64(unit.usecs)))
		if usecs, overflow = addInt64(usecs, fracUsecs); overflow {
			return fmt.Errorf("%w: time component", errs.ErrIntervalOutOfRange)
		}
	}
	if acc.usecs, overflow = addInt64(acc.usecs, usecs); overflow {
		return fmt.Errorf("%w: time component", errs.ErrIntervalOutOfRange)
	}

	return nil
}

// ParseInterval parses interval text into {microseconds, months}.
//
// Two grammars are accepted:
//
//   - PostgreSQL verbose style: signed "<value> <unit>" pairs plus an optional
//     "[-]HH:MM[:SS[.ffffff]]" clock token, an optional leading "@", and an
//     optional trailing "ago" which negates the whole span. Units range from
//     microseconds through millennia; fractional values spill into smaller
//     units ("1.5 days" is 1 day 12 hours, "0.5 mons" is 15 days).
//   - ISO-8601 durations: "P[n]Y[n]M[n]W[n]D[T[n]H[n]M[n[.f]]S]", with signed
//     and fractional designator values.
//
// Grammar failures return errs.ErrBadInterval; a component that overflows its
// target width returns errs.ErrIntervalOutOfRange.
func ParseInterval(text string) (Interval, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Interval{}, fmt.Errorf("%w: empty input", errs.ErrBadInterval)
	}

	if s[0] == 'P' || s[0] == 'p' {
		return parseISO8601Interval(s)
	}

	return parseVerboseInterval(s)
}

func parseVerboseInterval(text string) (Interval, error) {
	s := strings.TrimPrefix(strings.TrimSpace(text), "@")

	var acc intervalAcc
	var pending float64
	var pendingWhole int64
	var havePending, haveAny, ago bool

	for _, field := range strings.Fields(s) {
		lower := strings.ToLower(field)

		if lower == "ago" {
			ago = true
			haveAny = true

			continue
		}

		if strings.Contains(field, ":") {
			clock, err := scanTimeOfDay(field)
			if err != nil {
				return Interval{}, fmt.Errorf("%w: %q", errs.ErrBadInterval, field)
			}
			var overflow bool
			if acc.usecs, overflow = addInt64(acc.usecs, clock.usecs()); overflow {
				return Interval{}, fmt.Errorf("%w: time component", errs.ErrIntervalOutOfRange)
			}
			haveAny = true

			continue
		}

		if isDigit(field[0]) || field[0] == '-' || field[0] == '+' {
			if havePending {
				return Interval{}, fmt.Errorf("%w: number %q without a unit", errs.ErrBadInterval, field)
			}
			whole, frac, err := scanSignedDecimal(field)
			if err != nil {
				return Interval{}, err
			}
			pendingWhole, pending = whole, frac
			havePending = true

			continue
		}

		unit, ok := intervalUnits[lower]
		if !ok {
			return Interval{}, fmt.Errorf("%w: unrecognized unit %q", errs.ErrBadInterval, field)
		}
		if !havePending {
			return Interval{}, fmt.Errorf("%w: unit %q without a value", errs.ErrBadInterval, field)
		}
		if err := acc.add(unit, pendingWhole, pending); err != nil {
			return Interval{}, err
		}
		havePending = false
		haveAny = true
	}

	if havePending {
		return Interval{}, fmt.Errorf("%w: trailing number without a unit", errs.ErrBadInterval)
	}
	if !haveAny {
		return Interval{}, fmt.Errorf("%w: %q", errs.ErrBadInterval, text)
	}

	if ago {
		acc.months = -acc.months
		acc.usecs = -acc.usecs
	}

	return acc.finish()
}

// iso8601Designators maps duration designators to units; the date section
// (before 'T') and time section interpret 'M' differently.
var (
	iso8601DateUnits = map[byte]intervalUnit{
		'Y': {months: monthsPerYear},
		'M': {months: 1},
		'W': {usecs: daysPerWeek * usecsPerDay},
		'D': {usecs: usecsPerDay},
	}
	iso8601TimeUnits = map[byte]intervalUnit{
		'H': {usecs: usecsPerHour},
		'M': {usecs: usecsPerMinute},
		'S': {usecs: usecsPerSecond},
	}
)

func parseISO8601Interval(text string) (Interval, error) {
	var acc intervalAcc

	s := text[1:] // skip 'P'
	units := iso8601DateUnits
	sawField := false

	for len(s) > 0 {
		if s[0] == 'T' || s[0] == 't' {
			units = iso8601TimeUnits
			s = s[1:]

			continue
		}

		end := 0
		for end < len(s) && (isDigit(s[end]) || s[end] == '-' || s[end] == '+' || s[end] == '.') {
			end++
		}
		if end == 0 || end == len(s) {
			return Interval{}, fmt.Errorf("%w: %q", errs.ErrBadInterval, text)
		}
		whole, frac, err := scanSignedDecimal(s[:end])
		if err != nil {
			return Interval{}, err
		}
		unit, ok := units[upperByte(s[end])]
		if !ok {
			return Interval{}, fmt.Errorf("%w: unexpected designator %q in %q", errs.ErrBadInterval, s[end], text)
		}
		if err := acc.add(unit, whole, frac); err != nil {
			return Interval{}, err
		}
		s = s[end+1:]
		sawField = true
	}

	if !sawField {
		return Interval{}, fmt.Errorf("%w: %q", errs.ErrBadInterval, text)
	}

	return acc.finish()
}

func upperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}

	return c
}

// scanSignedDecimal parses "[+-]digits[.digits]" into a whole part and a
// signed fractional remainder.
func scanSignedDecimal(s string) (whole int64, frac float64, err error) {
	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	i := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		whole = whole*10 + int64(s[i]-'0')
		if whole < 0 {
			return 0, 0, fmt.Errorf("%w: value component", errs.ErrIntervalOutOfRange)
		}
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("%w: expected digits in %q", errs.ErrBadInterval, s)
	}

	if i < len(s) && s[i] == '.' {
		scale := 0.1
		i++
		start := i
		for ; i < len(s) && isDigit(s[i]); i++ {
			frac += float64(s[i]-'0') * scale
			scale /= 10
		}
		if i == start {
			return 0, 0, fmt.Errorf("%w: missing fractional digits in %q", errs.ErrBadInterval, s)
		}
	}
	if i != len(s) {
		return 0, 0, fmt.Errorf("%w: trailing input in %q", errs.ErrBadInterval, s)
	}

	if negative {
		return -whole, -frac, nil
	}

	return whole, frac, nil
}

// finish validates the accumulated components against their wire widths.
func (acc *intervalAcc) finish() (Interval, error) {
	if acc.months > math.MaxInt32 || acc.months < math.MinInt32 {
		return Interval{}, fmt.Errorf("%w: %d months", errs.ErrIntervalOutOfRange, acc.months)
	}

	return Interval{Microseconds: acc.usecs, Months: int32(acc.months)}, nil
}

// FormatInterval renders an interval in PostgreSQL's verbose output style,
// listing non-zero components: months decompose into years and months, and
// whole days are carved off the microsecond axis for display (24 hours = 1
// day). A zero interval renders as "00:00:00".
func FormatInterval(iv Interval) string {
	years := iv.Months / monthsPerYear
	months := iv.Months % monthsPerYear
	days := iv.Microseconds / usecsPerDay
	timeUsecs := iv.Microseconds - days*usecsPerDay

	buf := pool.GetFormatBuffer()
	defer pool.PutFormatBuffer(buf)

	appendUnit(buf, int64(years), "year")
	appendUnit(buf, int64(months), "mon")
	appendUnit(buf, days, "day")

	if timeUsecs != 0 || buf.Len() == 0 {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		if timeUsecs < 0 {
			_ = buf.WriteByte('-')
			timeUsecs = -timeUsecs
		}
		appendClock(buf, timeUsecs)
	}

	return buf.String()
}

// appendUnit writes "<n> <unit>[s]" for a non-zero component.
func appendUnit(buf *pool.ByteBuffer, value int64, unit string) {
	if value == 0 {
		return
	}
	if buf.Len() > 0 {
		_ = buf.WriteByte(' ')
	}

	buf.B = strconv.AppendInt(buf.B, value, 10)
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(unit)
	if value != 1 {
		// PostgreSQL pluralizes every count except exactly one, -1 included.
		_ = buf.WriteByte('s')
	}
}

// addInt64 adds two int64 values, reporting overflow.
func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, true
	}

	return sum, false
}

// mulInt64 multiplies two int64 values, reporting overflow.
func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	product := a * b
	if product/b != a {
		return 0, true
	}

	return product, false
}
