// Package wire implements the fixed binary layouts of the four codec value
// types, byte-compatible with the PostgreSQL binary wire format:
//
//   - date: 4-byte signed day count since 2000-01-01
//   - timestamp: 8-byte signed microsecond count since 2000-01-01
//   - interval: 8-byte signed microseconds + 4-byte signed months
//   - numeric: variable-length {ndigits, weight, sign word, dscale,
//     base-10000 digit groups}, each field 2 bytes
//
// All Append/Decode pairs are parameterized by an endian.EndianEngine; the
// PostgreSQL network order is big-endian (endian.GetBigEndianEngine), and
// package-level convenience functions use it. Decode functions never consume
// partial input: they either return a value or an error.
package wire

import (
	"fmt"

	"github.com/arloliu/pgcodec/datetime"
	"github.com/arloliu/pgcodec/endian"
	"github.com/arloliu/pgcodec/errs"
	"github.com/arloliu/pgcodec/numeric"
)

// Fixed encoded sizes in bytes.
const (
	DateSize      = 4
	TimestampSize = 8
	IntervalSize  = 12

	// NumericHeaderSize is the fixed prefix of an encoded numeric; each digit
	// group adds two bytes.
	NumericHeaderSize = 8
)

// Numeric sign words as they appear on the wire.
const (
	numericSignPositive uint16 = 0x0000
	numericSignNegative uint16 = 0x4000
	numericSignNaN      uint16 = 0xC000
)

var pgWire = endian.GetBigEndianEngine()

// AppendDate appends the 4-byte encoding of a day count.
func AppendDate(buf []byte, engine endian.EndianEngine, days datetime.DayCount) []byte {
	return engine.AppendUint32(buf, uint32(days))
}

// DecodeDate decodes a 4-byte day count, requiring exact input length.
func DecodeDate(data []byte, engine endian.EndianEngine) (datetime.DayCount, error) {
	if len(data) != DateSize {
		return 0, fmt.Errorf("%w: date needs %d bytes, got %d", errs.ErrInvalidWireLength, DateSize, len(data))
	}

	days := datetime.DayCount(engine.Uint32(data))
	if days < datetime.MinDayCount || days > datetime.MaxDayCount {
		return 0, fmt.Errorf("%w: day count %d", errs.ErrDateOutOfRange, days)
	}

	return days, nil
}

// AppendTimestamp appends the 8-byte encoding of a microsecond count.
func AppendTimestamp(buf []byte, engine endian.EndianEngine, ts datetime.Timestamp) []byte {
	return engine.AppendUint64(buf, uint64(ts))
}

// DecodeTimestamp decodes an 8-byte microsecond count, requiring exact input
// length.
func DecodeTimestamp(data []byte, engine endian.EndianEngine) (datetime.Timestamp, error) {
	if len(data) != TimestampSize {
		return 0, fmt.Errorf("%w: timestamp needs %d bytes, got %d", errs.ErrInvalidWireLength, TimestampSize, len(data))
	}

	ts := datetime.Timestamp(engine.Uint64(data))
	if ts < datetime.MinTimestamp || ts > datetime.MaxTimestamp {
		return 0, fmt.Errorf("%w: %d", errs.ErrTimestampOutOfRange, int64(ts))
	}

	return ts, nil
}

// AppendInterval appends the 12-byte encoding of an interval: microseconds
// then months.
//
// This matches the two-field ECPG pgtypes interval struct. The backend's
// 16-byte on-disk interval carries a third, separate day field; interop with
// that layout is out of scope here.
func AppendInterval(buf []byte, engine endian.EndianEngine, iv datetime.Interval) []byte {
	buf = engine.AppendUint64(buf, uint64(iv.Microseconds))

	return engine.AppendUint32(buf, uint32(iv.Months))
}

// DecodeInterval decodes a 12-byte interval, requiring exact input length.
func DecodeInterval(data []byte, engine endian.EndianEngine) (datetime.Interval, error) {
	if len(data) != IntervalSize {
		return datetime.Interval{}, fmt.Errorf("%w: interval needs %d bytes, got %d",
			errs.ErrInvalidWireLength, IntervalSize, len(data))
	}

	return datetime.Interval{
		Microseconds: int64(engine.Uint64(data[:8])),
		Months:       int32(engine.Uint32(data[8:12])),
	}, nil
}

// AppendNumeric appends the variable-length encoding of a numeric value:
// uint16 digit-group count, int16 weight, uint16 sign word, uint16 display
// scale, then the digit groups.
func AppendNumeric(buf []byte, engine endian.EndianEngine, n numeric.Numeric) []byte {
	digits := n.Digits()

	buf = engine.AppendUint16(buf, uint16(len(digits)))
	buf = engine.AppendUint16(buf, uint16(int16(n.Weight())))

	switch n.Sign() {
	case numeric.SignNegative:
		buf = engine.AppendUint16(buf, numericSignNegative)
	case numeric.SignNaN:
		buf = engine.AppendUint16(buf, numericSignNaN)
	default:
		buf = engine.AppendUint16(buf, numericSignPositive)
	}

	buf = engine.AppendUint16(buf, uint16(n.Scale()))
	for _, d := range digits {
		buf = engine.AppendUint16(buf, uint16(d))
	}

	return buf
}

// NumericEncodedSize returns the exact encoded length of a numeric value.
func NumericEncodedSize(n numeric.Numeric) int {
	return NumericHeaderSize + 2*n.NDigits()
}

// DecodeNumeric decodes a variable-length numeric, consuming exactly the
// encoded value and returning the remaining input.
func DecodeNumeric(data []byte, engine endian.EndianEngine) (numeric.Numeric, []byte, error) {
	if len(data) < NumericHeaderSize {
		return numeric.Numeric{}, nil, fmt.Errorf("%w: numeric header needs %d bytes, got %d",
			errs.ErrInvalidWireLength, NumericHeaderSize, len(data))
	}

	ndigits := int(engine.Uint16(data[0:2]))
	weight := int16(engine.Uint16(data[2:4]))
	signWord := engine.Uint16(data[4:6])
	dscale := int(engine.Uint16(data[6:8]))

	total := NumericHeaderSize + 2*ndigits
	if len(data) < total {
		return numeric.Numeric{}, nil, fmt.Errorf("%w: numeric needs %d bytes, got %d",
			errs.ErrInvalidWireLength, total, len(data))
	}

	var sign numeric.Sign
	switch signWord {
	case numericSignPositive:
		sign = numeric.SignPositive
	case numericSignNegative:
		sign = numeric.SignNegative
	case numericSignNaN:
		sign = numeric.SignNaN
		if ndigits != 0 {
			return numeric.Numeric{}, nil, fmt.Errorf("%w: NaN with %d digit groups", errs.ErrInvalidSignWord, ndigits)
		}
	default:
		return numeric.Numeric{}, nil, fmt.Errorf("%w: 0x%04X", errs.ErrInvalidSignWord, signWord)
	}

	digits := make([]int16, ndigits)
	for i := 0; i < ndigits; i++ {
		group := engine.Uint16(data[NumericHeaderSize+2*i : NumericHeaderSize+2*i+2])
		if group >= 10000 {
			return numeric.Numeric{}, nil, fmt.Errorf("%w: %d", errs.ErrInvalidDigitGroup, group)
		}
		digits[i] = int16(group)
	}

	n, err := numeric.New(sign, int(weight), dscale, digits)
	if err != nil {
		return numeric.Numeric{}, nil, err
	}

	return n, data[total:], nil
}

// Big-endian convenience wrappers in PostgreSQL network order.

// EncodeDate encodes a day count in network order.
func EncodeDate(days datetime.DayCount) []byte {
	return AppendDate(make([]byte, 0, DateSize), pgWire, days)
}

// EncodeTimestamp encodes a microsecond count in network order.
func EncodeTimestamp(ts datetime.Timestamp) []byte {
	return AppendTimestamp(make([]byte, 0, TimestampSize), pgWire, ts)
}

// EncodeInterval encodes an interval in network order.
func EncodeInterval(iv datetime.Interval) []byte {
	return AppendInterval(make([]byte, 0, IntervalSize), pgWire, iv)
}

// EncodeNumeric encodes a numeric in network order.
func EncodeNumeric(n numeric.Numeric) []byte {
	return AppendNumeric(make([]byte, 0, NumericEncodedSize(n)), pgWire, n)
}
