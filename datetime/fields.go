package datetime

import (
	"fmt"
	"strings"

	"github.com/arloliu/pgcodec/errs"
)

// Text field scanning shared by the date and timestamp parsers. The grammar
// follows PostgreSQL's DecodeDate/DecodeTime with the default DateStyle
// (ISO, MDY): numeric fields separated by -, /, . or whitespace, optional
// month-name and era keywords in any position.

var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// numberField is a numeric date field together with its digit count; the
// digit count disambiguates "2024-01-15" (YMD) from "01-15-2024" (MDY).
type numberField struct {
	value  int
	digits int
}

type dateFields struct {
	numbers []numberField
	month   int // 1-12, 0 if no month name was seen
	bc      bool
	sawEra  bool
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}

	return c
}

// scanDateFields tokenizes date text into numeric fields and keywords.
// Separators are -, /, ., commas, and whitespace.
func scanDateFields(text string) (dateFields, error) {
	var fields dateFields

	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case isDigit(c):
			start := i
			value := 0
			for i < len(text) && isDigit(text[i]) {
				value = value*10 + int(text[i]-'0')
				if value > dateEndJulian {
					return fields, fmt.Errorf("%w: numeric field too large in %q", errs.ErrBadDate, text)
				}
				i++
			}
			fields.numbers = append(fields.numbers, numberField{value: value, digits: i - start})
		case isLetter(c):
			start := i
			for i < len(text) && isLetter(text[i]) {
				i++
			}
			if err := fields.applyKeyword(strings.ToLower(text[start:i])); err != nil {
				return fields, err
			}
		case c == '-' || c == '/' || c == '.' || c == ',' || c == ' ' || c == '\t':
			i++
		default:
			return fields, fmt.Errorf("%w: unexpected character %q in %q", errs.ErrBadDate, c, text)
		}
	}

	return fields, nil
}

func (f *dateFields) applyKeyword(word string) error {
	if m, ok := monthNames[word]; ok {
		if f.month != 0 {
			return fmt.Errorf("%w: duplicate month name %q", errs.ErrBadDate, word)
		}
		f.month = m

		return nil
	}

	switch word {
	case "bc":
		f.bc = true
	case "ad":
		// explicit era, no year adjustment
	default:
		return fmt.Errorf("%w: unrecognized keyword %q", errs.ErrBadDate, word)
	}

	if f.sawEra {
		return fmt.Errorf("%w: duplicate era marker", errs.ErrBadDate)
	}
	f.sawEra = true

	return nil
}

// resolve assigns year/month/day from the scanned fields and validates the
// calendar day. Ambiguous all-numeric dates follow MDY field order; a leading
// field of three or more digits forces YMD, as PostgreSQL's default DateStyle
// does.
func (f *dateFields) resolve() (CalendarDate, error) {
	var year, month, day int
	var yearDigits int

	switch {
	case f.month != 0:
		if len(f.numbers) != 2 {
			return CalendarDate{}, fmt.Errorf("%w: month name requires a day and a year field", errs.ErrBadDate)
		}
		month = f.month
		first, second := f.numbers[0], f.numbers[1]
		switch {
		case first.digits >= 3 || first.value > 31:
			year, yearDigits = first.value, first.digits
			day = second.value
		default:
			// MDY order: remaining fields are day then year.
			day = first.value
			year, yearDigits = second.value, second.digits
		}
	case len(f.numbers) == 3:
		if f.numbers[0].digits >= 3 {
			year, yearDigits = f.numbers[0].value, f.numbers[0].digits
			month = f.numbers[1].value
			day = f.numbers[2].value
		} else {
			month = f.numbers[0].value
			day = f.numbers[1].value
			year, yearDigits = f.numbers[2].value, f.numbers[2].digits
		}
	default:
		return CalendarDate{}, fmt.Errorf("%w: expected three date fields", errs.ErrBadDate)
	}

	if yearDigits <= 2 && !f.bc {
		// Two-digit years expand the way PostgreSQL expands them.
		if year < 70 {
			year += 2000
		} else {
			year += 1900
		}
	}

	if year <= 0 {
		return CalendarDate{}, fmt.Errorf("%w: year field must be positive", errs.ErrBadDate)
	}
	if f.bc {
		// Astronomical years: 1 BC is year 0.
		year = -(year - 1)
	}

	if month < 1 || month > monthsPerYear {
		return CalendarDate{}, fmt.Errorf("%w: month %d out of range", errs.ErrBadDate, month)
	}
	if day < 1 || day > daysInMonth(year, month) {
		return CalendarDate{}, fmt.Errorf("%w: day %d out of range for %d-%02d", errs.ErrBadDate, day, year, month)
	}

	return CalendarDate{Year: year, Month: month, Day: day}, nil
}

// timeOfDay holds parsed clock fields before range validation; interval
// parsing permits hour values beyond 23.
type timeOfDay struct {
	hour, minute, second int
	microseconds         int64 // fractional seconds, truncated past 6 digits
	negative             bool
}

// scanTimeOfDay parses "[-]HH:MM[:SS[.ffffff]]". Fractional digits past
// microsecond precision are truncated, never rounded.
func scanTimeOfDay(text string) (timeOfDay, error) {
	var tod timeOfDay

	s := text
	if strings.HasPrefix(s, "-") {
		tod.negative = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	readInt := func(s string) (value, consumed int) {
		for consumed < len(s) && isDigit(s[consumed]) && value <= dateEndJulian {
			value = value*10 + int(s[consumed]-'0')
			consumed++
		}

		return value, consumed
	}

	value, n := readInt(s)
	if n == 0 {
		return tod, fmt.Errorf("%w: missing hour field in %q", errs.ErrBadTimestamp, text)
	}
	tod.hour = value
	s = s[n:]

	if !strings.HasPrefix(s, ":") {
		return tod, fmt.Errorf("%w: expected ':' after hours in %q", errs.ErrBadTimestamp, text)
	}
	value, n = readInt(s[1:])
	if n == 0 {
		return tod, fmt.Errorf("%w: missing minute field in %q", errs.ErrBadTimestamp, text)
	}
	tod.minute = value
	s = s[1+n:]

	if strings.HasPrefix(s, ":") {
		value, n = readInt(s[1:])
		if n == 0 {
			return tod, fmt.Errorf("%w: missing second field in %q", errs.ErrBadTimestamp, text)
		}
		tod.second = value
		s = s[1+n:]

		if strings.HasPrefix(s, ".") {
			s = s[1:]
			scale := usecsPerSecond / 10
			digits := 0
			for ; digits < len(s) && isDigit(s[digits]); digits++ {
				if scale > 0 {
					tod.microseconds += int64(s[digits]-'0') * scale
					scale /= 10
				}
			}
			if digits == 0 {
				return tod, fmt.Errorf("%w: missing fractional digits in %q", errs.ErrBadTimestamp, text)
			}
			s = s[digits:]
		}
	}

	if s != "" {
		return tod, fmt.Errorf("%w: trailing input %q", errs.ErrBadTimestamp, s)
	}
	if tod.minute > 59 || tod.second > 60 {
		return tod, fmt.Errorf("%w: clock field out of range in %q", errs.ErrBadTimestamp, text)
	}

	return tod, nil
}

// usecs flattens the clock fields onto the microsecond axis.
func (t timeOfDay) usecs() int64 {
	us := int64(t.hour)*usecsPerHour +
		int64(t.minute)*usecsPerMinute +
		int64(t.second)*usecsPerSecond +
		t.microseconds
	if t.negative {
		return -us
	}

	return us
}
