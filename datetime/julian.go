package datetime

// Julian-day arithmetic, matching PostgreSQL's date2j/j2date exactly so that
// day counts are bit-compatible with the backend's date representation.

const (
	// postgresEpochJulian is the Julian day number of 2000-01-01, the zero
	// point of both DayCount and Timestamp.
	postgresEpochJulian = 2451545

	// Julian day 0 is 4714-11-24 BC, the earliest representable date.
	// dateEndJulian is the Julian day of 5874898-01-01, one past the last
	// representable date 5874897-12-31.
	dateEndJulian = 2147483494

	// MinDayCount and MaxDayCount bound the representable date range:
	// 4714-11-24 BC through 5874897-12-31.
	MinDayCount DayCount = -postgresEpochJulian
	MaxDayCount DayCount = dateEndJulian - postgresEpochJulian - 1

	// MinTimestamp and MaxTimestamp bound the representable timestamp range:
	// 4714-11-24 00:00:00 BC through 294276-12-31 23:59:59.999999.
	MinTimestamp Timestamp = -211_813_488_000_000_000
	MaxTimestamp Timestamp = 9_223_371_331_200_000_000 - 1
)

// julianFromCalendar converts a proleptic-Gregorian date to a Julian day
// number. Behavior is only defined for dates at or after 4714-11-24 BC.
func julianFromCalendar(year, month, day int) int {
	var century int

	if month > 2 {
		month++
		year += 4800
	} else {
		month += 13
		year += 4799
	}

	century = year / 100
	julian := year*365 - 32167
	julian += year/4 - century + century/4
	julian += 7834*month/256 + day

	return julian
}

// julianToCalendar converts a Julian day number back to a proleptic-Gregorian
// date. Exact inverse of julianFromCalendar over the representable range.
func julianToCalendar(julianDay int) (year, month, day int) {
	julian := uint64(julianDay) //nolint: gosec
	julian += 32044
	quad := julian / 146097
	extra := (julian-quad*146097)*4 + 3
	julian += 60 + quad*3 + extra/146097
	quad = julian / 1461
	julian -= quad * 1461
	y := julian * 4 / 1461
	if y != 0 {
		julian = (julian + 305) % 365
	} else {
		julian = (julian + 306) % 366
	}
	julian += 123
	y += quad * 4
	year = int(y) - 4800
	quad = julian * 2141 / 65536
	day = int(julian - 7834*quad/256)
	month = int((quad+10)%monthsPerYear) + 1

	return year, month, day
}

// isLeapYear applies the proleptic-Gregorian leap rule. Works for
// astronomical years of either sign (year 0 and year -4 are leap years).
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysPerMonthTable = [monthsPerYear]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// daysInMonth returns the number of days in the given month, accounting for
// leap years. Month must be 1-12.
func daysInMonth(year, month int) int {
	if month == 2 && isLeapYear(year) {
		return 29
	}

	return daysPerMonthTable[month-1]
}
