// Package pgcodec converts between PostgreSQL's textual and binary
// representations of date, timestamp, interval, and numeric values,
// independent of any client library or network transport.
//
// The codecs match PostgreSQL's encoding rules exactly: day counts and
// microsecond counts measured from the 2000-01-01 epoch, Julian-day calendar
// arithmetic over the proleptic Gregorian calendar, and base-10000 digit
// group packing for arbitrary-precision numerics.
//
// # Core Features
//
//   - Date ⇄ 32-bit day count with PostgreSQL's full range
//     (4714-11-24 BC to 5874897-12-31)
//   - Timestamp ⇄ 64-bit microsecond count (up to 294276 AD)
//   - Interval parsing in both verbose ("1 year 2 mons") and ISO-8601
//     ("P1Y2M") grammars
//   - Arbitrary-precision numeric with NaN, canonical digit groups, and
//     exact display scale
//   - Binary wire layouts in PostgreSQL network byte order (wire package)
//   - Column blobs packing many encoded values with optional compression
//     (blob package)
//
// # Basic Usage
//
// Parsing and formatting values:
//
//	import "github.com/arloliu/pgcodec"
//
//	days, _ := pgcodec.ParseDate("2024-01-15")      // 8780
//	text, _ := pgcodec.FormatDate(days)             // "2024-01-15"
//
//	ts, _ := pgcodec.ParseTimestamp("2000-01-01 00:00:00") // 0
//
//	iv, _ := pgcodec.ParseInterval("1 year 2 mons 03:00:00")
//	fmt.Println(pgcodec.FormatInterval(iv))
//
//	n, _ := pgcodec.ParseNumeric("123.45")
//	fmt.Println(n.Weight(), n.Scale()) // 0 2
//
// Packing encoded columns into a blob:
//
//	enc, _ := pgcodec.NewBlobEncoder(blob.WithCompression(format.CompressionZstd))
//	enc.StartColumn("created", format.TypeDate)
//	enc.AddDate(days)
//	enc.EndColumn()
//	payload, _ := enc.Finish()
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the datetime,
// numeric, wire, and blob packages, simplifying the most common use cases.
// For advanced usage and fine-grained control, use those packages directly.
package pgcodec

import (
	"fmt"
	"sync"

	"github.com/arloliu/pgcodec/blob"
	"github.com/arloliu/pgcodec/datetime"
	"github.com/arloliu/pgcodec/numeric"
)

// Config holds the process-wide configuration facts the codecs consume.
//
// It is read once: SetDefault may be called at most once, before the first
// Default call, after which the configuration is immutable for the process
// lifetime. Codecs never consult hidden globals on hot paths; they receive
// these values explicitly.
type Config struct {
	// FloatPassByValue reports whether 8-byte floating values are passed by
	// value in the storage layer this process interoperates with. It only
	// affects codecs dealing with 8-byte floating storage; none of the four
	// codecs in this module consume it, but collaborators reading blobs
	// alongside float columns need a consistent answer.
	FloatPassByValue bool

	// MaxIdentifierLength is the maximum column identifier length in bytes.
	// PostgreSQL's limit is NAMEDATALEN-1 = 63.
	MaxIdentifierLength int
}

var (
	configMu     sync.Mutex
	configFrozen bool
	processConfig = Config{
		FloatPassByValue:    true,
		MaxIdentifierLength: 63,
	}
)

// SetDefault sets the process-wide configuration.
//
// It must be called before the first Default call, typically during program
// startup; afterwards the configuration is frozen and SetDefault fails.
func SetDefault(cfg Config) error {
	configMu.Lock()
	defer configMu.Unlock()

	if configFrozen {
		return fmt.Errorf("pgcodec: configuration already frozen")
	}
	if cfg.MaxIdentifierLength < 1 || cfg.MaxIdentifierLength > blob.MaxColumnNameLength {
		return fmt.Errorf("pgcodec: max identifier length %d out of range [1, %d]", cfg.MaxIdentifierLength, blob.MaxColumnNameLength)
	}

	processConfig = cfg
	configFrozen = true

	return nil
}

// Default returns the process-wide configuration, freezing it on first use.
func Default() Config {
	configMu.Lock()
	defer configMu.Unlock()

	configFrozen = true

	return processConfig
}

// ParseDate parses a textual date and returns the day count from 2000-01-01.
func ParseDate(text string) (datetime.DayCount, error) {
	cal, err := datetime.ParseDate(text)
	if err != nil {
		return 0, err
	}

	return datetime.DateFromCalendar(cal)
}

// FormatDate formats a day count as a canonical "YYYY-MM-DD[ BC]" string.
func FormatDate(days datetime.DayCount) (string, error) {
	return datetime.FormatDate(days)
}

// ParseTimestamp parses a textual timestamp and returns the microsecond
// count from 2000-01-01 00:00:00.
func ParseTimestamp(text string) (datetime.Timestamp, error) {
	return datetime.ParseTimestamp(text)
}

// FormatTimestamp formats a microsecond count as a canonical
// "YYYY-MM-DD HH:MM:SS[.ffffff][ BC]" string.
func FormatTimestamp(ts datetime.Timestamp) (string, error) {
	return datetime.FormatTimestamp(ts)
}

// ParseInterval parses a textual interval in either the verbose or the
// ISO-8601 grammar.
func ParseInterval(text string) (datetime.Interval, error) {
	return datetime.ParseInterval(text)
}

// FormatInterval formats an interval in PostgreSQL's verbose style.
func FormatInterval(iv datetime.Interval) string {
	return datetime.FormatInterval(iv)
}

// ParseNumeric parses a textual numeric value, including "NaN" and
// exponent notation.
func ParseNumeric(text string) (numeric.Numeric, error) {
	return numeric.Parse(text)
}

// FormatNumeric formats a numeric value with exactly its display scale of
// fractional digits.
func FormatNumeric(n numeric.Numeric) string {
	return numeric.Format(n)
}

// NewBlobEncoder creates a column blob encoder whose identifier limit
// defaults to the process configuration's MaxIdentifierLength. Additional
// options are applied on top.
func NewBlobEncoder(opts ...blob.EncoderOption) (*blob.Encoder, error) {
	all := make([]blob.EncoderOption, 0, len(opts)+1)
	all = append(all, blob.WithMaxNameLength(Default().MaxIdentifierLength))
	all = append(all, opts...)

	return blob.NewEncoder(all...)
}

// NewBlobDecoder parses and validates a column blob.
func NewBlobDecoder(data []byte) (*blob.Decoder, error) {
	return blob.NewDecoder(data)
}
