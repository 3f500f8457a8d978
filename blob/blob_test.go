package blob

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pgcodec/datetime"
	"github.com/arloliu/pgcodec/errs"
	"github.com/arloliu/pgcodec/format"
	"github.com/arloliu/pgcodec/numeric"
)

func mustNumeric(t *testing.T, text string) numeric.Numeric {
	t.Helper()
	n, err := numeric.Parse(text)
	require.NoError(t, err)

	return n
}

// encodeSample builds a blob with one column of each value type.
func encodeSample(t *testing.T, opts ...EncoderOption) []byte {
	t.Helper()

	enc, err := NewEncoder(opts...)
	require.NoError(t, err)

	require.NoError(t, enc.StartColumn("created", format.TypeDate))
	for _, d := range []datetime.DayCount{8780, 0, -730485} {
		require.NoError(t, enc.AddDate(d))
	}
	require.NoError(t, enc.EndColumn())

	require.NoError(t, enc.StartColumn("updated_at", format.TypeTimestamp))
	for _, ts := range []datetime.Timestamp{0, 758589296000000, -1} {
		require.NoError(t, enc.AddTimestamp(ts))
	}
	require.NoError(t, enc.EndColumn())

	require.NoError(t, enc.StartColumn("duration", format.TypeInterval))
	require.NoError(t, enc.AddInterval(datetime.Interval{Microseconds: 3723000000, Months: 14}))
	require.NoError(t, enc.AddInterval(datetime.Interval{}))
	require.NoError(t, enc.EndColumn())

	require.NoError(t, enc.StartColumn("amount", format.TypeNumeric))
	for _, text := range []string{"123.45", "-0.001", "NaN", "0"} {
		require.NoError(t, enc.AddNumeric(mustNumeric(t, text)))
	}
	require.NoError(t, enc.EndColumn())

	data, err := enc.Finish()
	require.NoError(t, err)

	return data
}

func verifySample(t *testing.T, data []byte) {
	t.Helper()

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	require.Equal(t, 4, dec.ColumnCount())

	dates, err := dec.Dates("created")
	require.NoError(t, err)
	require.Equal(t, []datetime.DayCount{8780, 0, -730485}, dates)

	timestamps, err := dec.Timestamps("updated_at")
	require.NoError(t, err)
	require.Equal(t, []datetime.Timestamp{0, 758589296000000, -1}, timestamps)

	intervals, err := dec.Intervals("duration")
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	require.Equal(t, datetime.Interval{Microseconds: 3723000000, Months: 14}, intervals[0])
	require.Equal(t, datetime.Interval{}, intervals[1])

	numerics, err := dec.Numerics("amount")
	require.NoError(t, err)
	require.Len(t, numerics, 4)
	require.Equal(t, "123.45", numeric.Format(numerics[0]))
	require.Equal(t, "-0.001", numeric.Format(numerics[1]))
	require.True(t, numerics[2].IsNaN())
	require.True(t, numerics[3].IsZero())
}

func TestBlobRoundTrip(t *testing.T) {
	verifySample(t, encodeSample(t))
}

func TestBlobRoundTripCompressions(t *testing.T) {
	for _, compression := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd,
		format.CompressionS2, format.CompressionLZ4,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			verifySample(t, encodeSample(t, WithCompression(compression)))
		})
	}
}

func TestBlobRoundTripLittleEndian(t *testing.T) {
	data := encodeSample(t, WithLittleEndian())

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	require.True(t, dec.header.Flag.IsLittleEndian())
	verifySample(t, data)
}

func TestBlobRoundTripDigest(t *testing.T) {
	data := encodeSample(t, WithDigest(true), WithCompression(format.CompressionS2))
	verifySample(t, data)
}

func TestBlobDigestMismatch(t *testing.T) {
	data := encodeSample(t, WithDigest(true))

	// Corrupt the stored digest.
	data[len(data)-1] ^= 0xff
	_, err := NewDecoder(data)
	require.ErrorIs(t, err, errs.ErrDigestMismatch)
}

func TestBlobEmptyBlob(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	data, err := enc.Finish()
	require.NoError(t, err)
	require.Len(t, data, HeaderSize)

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	require.Equal(t, 0, dec.ColumnCount())
}

func TestBlobEmptyColumn(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	require.NoError(t, enc.StartColumn("empty", format.TypeDate))
	require.NoError(t, enc.EndColumn())
	data, err := enc.Finish()
	require.NoError(t, err)

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	dates, err := dec.Dates("empty")
	require.NoError(t, err)
	require.Empty(t, dates)
}

func TestEncoderColumnStateErrors(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	require.ErrorIs(t, enc.AddDate(1), errs.ErrNoColumnOpen)
	require.ErrorIs(t, enc.EndColumn(), errs.ErrNoColumnOpen)

	require.NoError(t, enc.StartColumn("a", format.TypeDate))
	require.ErrorIs(t, enc.StartColumn("b", format.TypeDate), errs.ErrColumnAlreadyOpen)

	// Type mismatch against the open column.
	require.ErrorIs(t, enc.AddTimestamp(0), errs.ErrInvalidValueType)

	// Finish with a column still open.
	_, err = enc.Finish()
	require.ErrorIs(t, err, errs.ErrColumnAlreadyOpen)
}

func TestEncoderInvalidColumnNames(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	require.ErrorIs(t, enc.StartColumn("", format.TypeDate), errs.ErrInvalidColumnName)

	long := make([]byte, defaultMaxNameLength+1)
	for i := range long {
		long[i] = 'x'
	}
	require.ErrorIs(t, enc.StartColumn(string(long), format.TypeDate), errs.ErrInvalidColumnName)

	require.NoError(t, enc.StartColumn("dup", format.TypeDate))
	require.NoError(t, enc.EndColumn())
	require.ErrorIs(t, enc.StartColumn("dup", format.TypeNumeric), errs.ErrInvalidColumnName)
}

func TestEncoderMaxNameLengthOption(t *testing.T) {
	enc, err := NewEncoder(WithMaxNameLength(4))
	require.NoError(t, err)
	require.NoError(t, enc.StartColumn("abcd", format.TypeDate))
	require.NoError(t, enc.EndColumn())
	require.ErrorIs(t, enc.StartColumn("abcde", format.TypeDate), errs.ErrInvalidColumnName)

	_, err = NewEncoder(WithMaxNameLength(0))
	require.Error(t, err)
	_, err = NewEncoder(WithMaxNameLength(MaxColumnNameLength + 1))
	require.Error(t, err)
}

func TestEncoderInvalidValueType(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	require.ErrorIs(t, enc.StartColumn("bad", format.ValueType(0xff)), errs.ErrInvalidValueType)
}

func TestEncoderInvalidCompressionOption(t *testing.T) {
	_, err := NewEncoder(WithCompression(format.CompressionType(0xff)))
	require.Error(t, err)
}

func TestEncoderMaxPayloadSize(t *testing.T) {
	enc, err := NewEncoder(WithMaxPayloadSize(8))
	require.NoError(t, err)
	require.NoError(t, enc.StartColumn("d", format.TypeDate))
	require.NoError(t, enc.AddDate(1))
	require.NoError(t, enc.AddDate(2))
	require.ErrorIs(t, enc.AddDate(3), errs.ErrAllocationFailure)
}

func TestEncoderNotReusable(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	_, err = enc.Finish()
	require.NoError(t, err)

	_, err = enc.Finish()
	require.Error(t, err)
	require.Error(t, enc.StartColumn("late", format.TypeDate))
}

func TestDecoderHeaderErrors(t *testing.T) {
	_, err := NewDecoder(nil)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	_, err = NewDecoder(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	data := encodeSample(t)

	// Clobber the magic number.
	bad := make([]byte, len(data))
	copy(bad, data)
	bad[1] = 0x00
	_, err = NewDecoder(bad)
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)

	// Set a reserved option bit.
	copy(bad, data)
	bad[0] |= 0x04
	_, err = NewDecoder(bad)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)

	// Invalid compression type byte.
	copy(bad, data)
	bad[3] = 0xff
	_, err = NewDecoder(bad)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
}

func TestDecoderTruncatedBlob(t *testing.T) {
	data := encodeSample(t)

	_, err := NewDecoder(data[:len(data)-1])
	require.ErrorIs(t, err, errs.ErrInvalidPayload)

	_, err = NewDecoder(append(append([]byte{}, data...), 0x00))
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
}

func TestDecoderColumnLookupErrors(t *testing.T) {
	dec, err := NewDecoder(encodeSample(t))
	require.NoError(t, err)

	_, err = dec.Dates("missing")
	require.ErrorIs(t, err, errs.ErrColumnNotFound)

	_, err = dec.Dates("amount")
	require.ErrorIs(t, err, errs.ErrInvalidValueType)

	_, err = dec.Numerics("created")
	require.ErrorIs(t, err, errs.ErrInvalidValueType)
}

func TestDecoderColumnDescriptors(t *testing.T) {
	dec, err := NewDecoder(encodeSample(t))
	require.NoError(t, err)

	cols := dec.Columns()
	require.Len(t, cols, 4)
	require.Equal(t, "created", cols[0].Name)
	require.Equal(t, format.TypeDate, cols[0].Type)
	require.Equal(t, 3, cols[0].Count)

	col, err := dec.Column("amount")
	require.NoError(t, err)
	require.Equal(t, format.TypeNumeric, col.Type)
	require.Equal(t, 4, col.Count)

	_, err = dec.Column("missing")
	require.ErrorIs(t, err, errs.ErrColumnNotFound)
}

func TestDecoderCorruptedIndex(t *testing.T) {
	data := encodeSample(t)

	// Flip a byte inside the first column name so it no longer matches its ID.
	// The name "created" starts right after the first fixed index fields.
	pos := HeaderSize + indexEntryFixedSize
	bad := make([]byte, len(data))
	copy(bad, data)
	bad[pos] ^= 0x01
	_, err := NewDecoder(bad)
	require.ErrorIs(t, err, errs.ErrInvalidColumnName)
}
