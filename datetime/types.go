package datetime

// DayCount is a date as signed days since 2000-01-01. Negative values are
// before the epoch.
type DayCount int32

// Timestamp is a zone-naive instant as signed microseconds since
// 2000-01-01 00:00:00.
type Timestamp int64

// CalendarDate is a proleptic-Gregorian year/month/day triple.
//
// Year is astronomical: year 0 is 1 BC, year -1 is 2 BC, and so on. Textual
// forms use era notation instead ("0001-01-01 BC" parses to Year 0).
type CalendarDate struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31, bounded by month and leap year
}

// Interval is a span of time with two independent axes: a fixed-duration
// microsecond component and a calendar-relative month component. The two are
// deliberately never merged, matching the PostgreSQL interval semantics where
// "1 month" has no fixed microsecond length.
type Interval struct {
	Microseconds int64
	Months       int32
}

const (
	monthsPerYear = 12
	daysPerMonth  = 30 // fractional-month spillover, as PostgreSQL
	daysPerWeek   = 7

	usecsPerSecond int64 = 1_000_000
	usecsPerMinute int64 = 60 * usecsPerSecond
	usecsPerHour   int64 = 3600 * usecsPerSecond
	usecsPerDay    int64 = 86400 * usecsPerSecond
)
