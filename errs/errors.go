// Package errs defines the sentinel errors shared across the pgcodec packages.
//
// Errors fall into three groups that callers are expected to discriminate with
// errors.Is:
//
//   - Parse errors (ErrBadDate, ErrBadTimestamp, ErrBadInterval, ErrBadNumeric):
//     the input text does not match the accepted grammar for the target type.
//     Always recoverable; reject the input and continue.
//   - Range errors (ErrDateOutOfRange, ErrTimestampOutOfRange,
//     ErrIntervalOutOfRange, ErrValueOverflow): the text was well-formed but the
//     value does not fit the fixed-width binary representation.
//   - Fatal errors (ErrAllocationFailure): no safe continuation exists; the
//     enclosing operation should abort.
//
// Blob-format errors describe structural problems in an encoded column blob and
// are surfaced by the blob decoder.
package errs

import "errors"

// Parse errors: input text does not match the grammar of the target type.
var (
	ErrBadDate      = errors.New("bad date")
	ErrBadTimestamp = errors.New("bad timestamp")
	ErrBadInterval  = errors.New("bad interval")
	ErrBadNumeric   = errors.New("bad numeric")
)

// Range errors: structurally valid value outside the representable range of the
// fixed-width binary form.
var (
	ErrDateOutOfRange      = errors.New("date out of range")
	ErrTimestampOutOfRange = errors.New("timestamp out of range")
	ErrIntervalOutOfRange  = errors.New("interval out of range")
	ErrValueOverflow       = errors.New("value overflows target width")
)

// ErrAllocationFailure indicates a scratch buffer could not be obtained within
// the configured limits. Fatal to the enclosing operation.
var ErrAllocationFailure = errors.New("allocation failure")

// Wire and blob format errors.
var (
	ErrInvalidWireLength  = errors.New("invalid wire data length")
	ErrInvalidSignWord    = errors.New("invalid numeric sign word")
	ErrInvalidDigitGroup  = errors.New("digit group exceeds 9999")
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	ErrInvalidColumnName  = errors.New("invalid column name")
	ErrInvalidColumnCount = errors.New("invalid column count")
	ErrInvalidValueType   = errors.New("invalid value type")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrColumnNotFound     = errors.New("column not found")
	ErrColumnAlreadyOpen  = errors.New("column already started")
	ErrNoColumnOpen       = errors.New("no column started")
	ErrDigestMismatch     = errors.New("payload digest mismatch")
)
