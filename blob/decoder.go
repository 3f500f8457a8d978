package blob

import (
	"fmt"

	"github.com/arloliu/pgcodec/compress"
	"github.com/arloliu/pgcodec/datetime"
	"github.com/arloliu/pgcodec/endian"
	"github.com/arloliu/pgcodec/errs"
	"github.com/arloliu/pgcodec/format"
	"github.com/arloliu/pgcodec/internal/hash"
	"github.com/arloliu/pgcodec/numeric"
	"github.com/arloliu/pgcodec/wire"
)

// Column describes one column stored in a blob.
type Column struct {
	// Name is the column name as written by the encoder.
	Name string
	// ID is the xxHash64 of the column name.
	ID uint64
	// Type is the value type of the column.
	Type format.ValueType
	// Count is the number of values in the column.
	Count int

	offset int
	length int
}

// Decoder reads columns out of a blob produced by Encoder.
//
// NewDecoder validates the header, index, digest, and payload bounds up
// front; the typed accessors afterwards only fail on a missing column or a
// type mismatch. A Decoder is read-only after construction and safe for
// concurrent use.
type Decoder struct {
	header  Header
	engine  endian.EndianEngine
	columns []Column
	byName  map[string]int
	payload []byte
}

// NewDecoder parses and validates a blob.
//
// Returns ErrInvalidHeaderSize, ErrInvalidMagicNumber, or
// ErrInvalidHeaderFlags for a bad header, ErrInvalidColumnCount or
// ErrInvalidPayload for a bad index or payload section, ErrInvalidValueType
// for an unknown column type, and ErrDigestMismatch when the trailing digest
// does not match the decompressed payload.
func NewDecoder(data []byte) (*Decoder, error) {
	dec := &Decoder{}

	if err := dec.header.Parse(data); err != nil {
		return nil, err
	}
	dec.engine = dec.header.Flag.GetEndianEngine()

	if dec.header.ColumnCount > MaxColumnCount {
		return nil, fmt.Errorf("%w: %d exceeds %d", errs.ErrInvalidColumnCount, dec.header.ColumnCount, MaxColumnCount)
	}
	if int(dec.header.PayloadOffset) < HeaderSize || int(dec.header.PayloadOffset) > len(data) {
		return nil, fmt.Errorf("%w: payload offset %d out of bounds", errs.ErrInvalidPayload, dec.header.PayloadOffset)
	}

	if err := dec.parseIndex(data[HeaderSize:dec.header.PayloadOffset]); err != nil {
		return nil, err
	}

	if err := dec.parsePayload(data); err != nil {
		return nil, err
	}

	if err := dec.validateColumns(); err != nil {
		return nil, err
	}

	return dec, nil
}

// parseIndex decodes the index section into column descriptors.
func (d *Decoder) parseIndex(index []byte) error {
	count := int(d.header.ColumnCount)
	d.columns = make([]Column, 0, count)
	d.byName = make(map[string]int, count)

	for i := 0; i < count; i++ {
		if len(index) < indexEntryFixedSize {
			return fmt.Errorf("%w: truncated index entry %d", errs.ErrInvalidPayload, i)
		}

		id := d.engine.Uint64(index[0:8])
		vtype := format.ValueType(index[8])
		nameLen := int(index[9])
		valueCount := d.engine.Uint32(index[10:14])
		offset := d.engine.Uint32(index[14:18])
		length := d.engine.Uint32(index[18:22])
		index = index[indexEntryFixedSize:]

		if !vtype.Valid() {
			return fmt.Errorf("%w: column %d", errs.ErrInvalidValueType, i)
		}
		if nameLen == 0 || len(index) < nameLen {
			return fmt.Errorf("%w: column %d name", errs.ErrInvalidColumnName, i)
		}
		name := string(index[:nameLen])
		index = index[nameLen:]

		if hash.ColumnID(name) != id {
			return fmt.Errorf("%w: %q does not match its ID", errs.ErrInvalidColumnName, name)
		}
		if _, exists := d.byName[name]; exists {
			return fmt.Errorf("%w: duplicate column %q", errs.ErrInvalidColumnName, name)
		}

		d.byName[name] = len(d.columns)
		d.columns = append(d.columns, Column{
			Name:   name,
			ID:     id,
			Type:   vtype,
			Count:  int(valueCount),
			offset: int(offset),
			length: int(length),
		})
	}

	if len(index) != 0 {
		return fmt.Errorf("%w: %d trailing index bytes", errs.ErrInvalidPayload, len(index))
	}

	return nil
}

// parsePayload slices out the compressed payload, verifies the trailing
// digest if present, and decompresses.
func (d *Decoder) parsePayload(data []byte) error {
	start := int(d.header.PayloadOffset)
	end := start + int(d.header.PayloadLength)
	expected := end
	if d.header.Flag.HasDigest() {
		expected += DigestSize
	}
	if len(data) != expected {
		return fmt.Errorf("%w: blob is %d bytes, expected %d", errs.ErrInvalidPayload, len(data), expected)
	}

	codec, err := compress.GetCodec(d.header.Flag.GetCompression())
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidHeaderFlags, err)
	}

	payload, err := codec.Decompress(data[start:end])
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidPayload, err)
	}
	d.payload = payload

	if d.header.Flag.HasDigest() {
		stored := d.engine.Uint64(data[end : end+DigestSize])
		if hash.Digest(d.payload) != stored {
			return errs.ErrDigestMismatch
		}
	}

	return nil
}

// validateColumns checks every column's extent against the decompressed
// payload, including the exact size of fixed-width columns.
func (d *Decoder) validateColumns() error {
	for i := range d.columns {
		col := &d.columns[i]
		if col.offset < 0 || col.length < 0 || col.offset+col.length > len(d.payload) {
			return fmt.Errorf("%w: column %q extent out of bounds", errs.ErrInvalidPayload, col.Name)
		}

		var fixedSize int
		switch col.Type {
		case format.TypeDate:
			fixedSize = wire.DateSize
		case format.TypeTimestamp:
			fixedSize = wire.TimestampSize
		case format.TypeInterval:
			fixedSize = wire.IntervalSize
		case format.TypeNumeric:
			// Variable length, checked during decode.
			continue
		}

		if col.length != col.Count*fixedSize {
			return fmt.Errorf("%w: column %q is %d bytes, expected %d", errs.ErrInvalidPayload, col.Name, col.length, col.Count*fixedSize)
		}
	}

	return nil
}

// ColumnCount returns the number of columns in the blob.
func (d *Decoder) ColumnCount() int {
	return len(d.columns)
}

// Columns returns descriptors for every column in index order.
func (d *Decoder) Columns() []Column {
	cols := make([]Column, len(d.columns))
	copy(cols, d.columns)

	return cols
}

// Column returns the descriptor of the named column.
func (d *Decoder) Column(name string) (Column, error) {
	idx, ok := d.byName[name]
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", errs.ErrColumnNotFound, name)
	}

	return d.columns[idx], nil
}

// Dates returns the values of a date column.
//
// Returns ErrColumnNotFound if no column has the given name and
// ErrInvalidValueType if the column holds another type.
func (d *Decoder) Dates(name string) ([]datetime.DayCount, error) {
	col, err := d.lookup(name, format.TypeDate)
	if err != nil {
		return nil, err
	}

	values := make([]datetime.DayCount, 0, col.Count)
	for data := d.extent(col); len(data) > 0; data = data[wire.DateSize:] {
		v, err := wire.DecodeDate(data[:wire.DateSize], d.engine)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		values = append(values, v)
	}

	return values, nil
}

// Timestamps returns the values of a timestamp column.
func (d *Decoder) Timestamps(name string) ([]datetime.Timestamp, error) {
	col, err := d.lookup(name, format.TypeTimestamp)
	if err != nil {
		return nil, err
	}

	values := make([]datetime.Timestamp, 0, col.Count)
	for data := d.extent(col); len(data) > 0; data = data[wire.TimestampSize:] {
		v, err := wire.DecodeTimestamp(data[:wire.TimestampSize], d.engine)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		values = append(values, v)
	}

	return values, nil
}

// Intervals returns the values of an interval column.
func (d *Decoder) Intervals(name string) ([]datetime.Interval, error) {
	col, err := d.lookup(name, format.TypeInterval)
	if err != nil {
		return nil, err
	}

	values := make([]datetime.Interval, 0, col.Count)
	for data := d.extent(col); len(data) > 0; data = data[wire.IntervalSize:] {
		v, err := wire.DecodeInterval(data[:wire.IntervalSize], d.engine)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		values = append(values, v)
	}

	return values, nil
}

// Numerics returns the values of a numeric column.
func (d *Decoder) Numerics(name string) ([]numeric.Numeric, error) {
	col, err := d.lookup(name, format.TypeNumeric)
	if err != nil {
		return nil, err
	}

	values := make([]numeric.Numeric, 0, col.Count)
	data := d.extent(col)
	for i := 0; i < col.Count; i++ {
		v, rest, err := wire.DecodeNumeric(data, d.engine)
		if err != nil {
			return nil, fmt.Errorf("column %q value %d: %w", name, i, err)
		}
		values = append(values, v)
		data = rest
	}
	if len(data) != 0 {
		return nil, fmt.Errorf("%w: column %q has %d trailing bytes", errs.ErrInvalidPayload, name, len(data))
	}

	return values, nil
}

func (d *Decoder) lookup(name string, valueType format.ValueType) (Column, error) {
	col, err := d.Column(name)
	if err != nil {
		return Column{}, err
	}
	if col.Type != valueType {
		return Column{}, fmt.Errorf("%w: column %q holds %v, not %v", errs.ErrInvalidValueType, name, col.Type, valueType)
	}

	return col, nil
}

func (d *Decoder) extent(col Column) []byte {
	return d.payload[col.offset : col.offset+col.length]
}
