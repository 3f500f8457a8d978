// Package datetime implements PostgreSQL-compatible text parsing, canonical
// formatting, and epoch arithmetic for dates, timestamps, and intervals.
//
// All three codecs are pure functions over immutable value types:
//
//   - DayCount: signed 32-bit days since 2000-01-01 (the PostgreSQL epoch).
//   - Timestamp: signed 64-bit microseconds since 2000-01-01 00:00:00,
//     zone-naive.
//   - Interval: independent {microseconds, months} components; calendar-relative
//     months are never folded into the fixed-duration microsecond axis.
//
// Calendar arithmetic runs through a Julian-day intermediate using proleptic
// Gregorian rules, so conversions are monotonic and exact inverses across the
// whole representable range (4714-11-24 BC through 5874897-12-31 for dates,
// through 294276 AD for timestamps).
//
// The accepted text grammars follow PostgreSQL's parsers with the default
// DateStyle (ISO, MDY): ISO dates with -, / or . separators, month-name forms,
// BC/AD era suffixes, fractional seconds (truncated past microseconds), and
// both verbose ("1 year 2 mons 3 days 04:05:06") and ISO-8601 ("P1Y2MT3H")
// interval syntax. The literals "infinity", "-infinity" and "epoch" are
// rejected: the day-count and microsecond domains carry no sentinel values.
package datetime
