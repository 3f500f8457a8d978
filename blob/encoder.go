package blob

import (
	"fmt"
	"math"

	"github.com/arloliu/pgcodec/compress"
	"github.com/arloliu/pgcodec/datetime"
	"github.com/arloliu/pgcodec/endian"
	"github.com/arloliu/pgcodec/errs"
	"github.com/arloliu/pgcodec/format"
	"github.com/arloliu/pgcodec/internal/hash"
	"github.com/arloliu/pgcodec/internal/options"
	"github.com/arloliu/pgcodec/internal/pool"
	"github.com/arloliu/pgcodec/numeric"
	"github.com/arloliu/pgcodec/wire"
)

const (
	// initialIndexCapacity is the initial capacity for index entries slice.
	// Small enough to avoid waste for small blobs, large enough to avoid
	// early reallocations.
	initialIndexCapacity = 16

	// defaultMaxNameLength matches PostgreSQL's identifier limit
	// (NAMEDATALEN-1 bytes).
	defaultMaxNameLength = 63

	// defaultMaxPayloadSize bounds the uncompressed payload a single blob
	// may hold.
	defaultMaxPayloadSize = 1 << 30 // 1GiB
)

// indexEntry is the in-memory form of one column index entry.
type indexEntry struct {
	id     uint64
	name   string
	vtype  format.ValueType
	count  uint32
	offset uint32
	length uint32
}

// Encoder packs named, typed columns of binary-encoded values into a blob.
//
// Columns are written one at a time: StartColumn opens a column, the typed
// Add methods append values, and EndColumn seals it. Finish assembles and
// returns the complete blob.
//
// Note: The Encoder is NOT thread-safe. Each encoder instance should be used
// by a single goroutine at a time.
//
// Note: The Encoder is NOT reusable. After calling Finish, a new encoder must
// be created for further encoding.
type Encoder struct {
	header *Header
	engine endian.EndianEngine
	codec  compress.Codec

	maxNameLength  int
	maxPayloadSize int

	entries []indexEntry
	payload *pool.ByteBuffer
	usedIDs map[uint64]struct{}

	curName  string
	curType  format.ValueType
	curCount uint32
	curStart int
	open     bool
	finished bool
}

// EncoderOption represents a functional option for configuring the Encoder.
type EncoderOption = options.Option[*Encoder]

// WithCompression sets the payload compression type.
// The default is format.CompressionNone.
func WithCompression(compression format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		if !compression.Valid() {
			return fmt.Errorf("invalid payload compression: %v", compression)
		}
		e.header.Flag.SetCompression(compression)

		return nil
	})
}

// WithBigEndian sets the blob body to big-endian byte order
// (PostgreSQL network order). It is the default option.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.Flag.WithBigEndian()
	})
}

// WithLittleEndian sets the blob body to little-endian byte order.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.Flag.WithLittleEndian()
	})
}

// WithDigest enables a trailing xxHash64 digest of the uncompressed payload
// when set to true. The default is false.
func WithDigest(enabled bool) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.Flag.SetDigest(enabled)
	})
}

// WithMaxNameLength bounds the length of column names in bytes.
// The default is 63, PostgreSQL's identifier limit. The hard upper bound is
// MaxColumnNameLength.
func WithMaxNameLength(n int) EncoderOption {
	return options.New(func(e *Encoder) error {
		if n < 1 || n > MaxColumnNameLength {
			return fmt.Errorf("max name length %d out of range [1, %d]", n, MaxColumnNameLength)
		}
		e.maxNameLength = n

		return nil
	})
}

// WithMaxPayloadSize bounds the uncompressed payload size in bytes.
// The default is 1GiB.
func WithMaxPayloadSize(n int) EncoderOption {
	return options.New(func(e *Encoder) error {
		if n < 1 || n > math.MaxUint32 {
			return fmt.Errorf("max payload size %d out of range [1, %d]", n, math.MaxUint32)
		}
		e.maxPayloadSize = n

		return nil
	})
}

// NewEncoder creates a new Encoder with the given options.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	enc := &Encoder{
		header:         NewHeader(),
		maxNameLength:  defaultMaxNameLength,
		maxPayloadSize: defaultMaxPayloadSize,
		entries:        make([]indexEntry, 0, initialIndexCapacity),
		usedIDs:        make(map[uint64]struct{}),
	}

	if err := options.Apply(enc, opts...); err != nil {
		return nil, err
	}

	enc.engine = enc.header.Flag.GetEndianEngine()

	codec, err := compress.CreateCodec(enc.header.Flag.GetCompression(), "payload")
	if err != nil {
		return nil, err
	}
	enc.codec = codec
	enc.payload = pool.GetBlobBuffer()

	return enc, nil
}

// StartColumn opens a new column with the given name and value type.
//
// Returns ErrColumnAlreadyOpen if a column is open, ErrInvalidColumnName if
// the name is empty, too long, or hashes to the same ID as an existing
// column, ErrInvalidValueType if the value type is unknown, and
// ErrInvalidColumnCount if the blob already holds MaxColumnCount columns.
func (e *Encoder) StartColumn(name string, valueType format.ValueType) error {
	if e.finished {
		return fmt.Errorf("encoder already finished")
	}
	if e.open {
		return fmt.Errorf("%w: %q", errs.ErrColumnAlreadyOpen, e.curName)
	}
	if len(name) == 0 || len(name) > e.maxNameLength {
		return fmt.Errorf("%w: %q exceeds %d bytes or is empty", errs.ErrInvalidColumnName, name, e.maxNameLength)
	}
	if !valueType.Valid() {
		return fmt.Errorf("%w: %v", errs.ErrInvalidValueType, valueType)
	}
	if len(e.entries) >= MaxColumnCount {
		return fmt.Errorf("%w: exceeds %d columns", errs.ErrInvalidColumnCount, MaxColumnCount)
	}

	id := hash.ColumnID(name)
	if _, exists := e.usedIDs[id]; exists {
		return fmt.Errorf("%w: duplicate column %q", errs.ErrInvalidColumnName, name)
	}
	e.usedIDs[id] = struct{}{}

	e.curName = name
	e.curType = valueType
	e.curCount = 0
	e.curStart = e.payload.Len()
	e.open = true

	return nil
}

// AddDate appends a date value to the open column.
func (e *Encoder) AddDate(days datetime.DayCount) error {
	if err := e.checkAdd(format.TypeDate); err != nil {
		return err
	}
	e.payload.B = wire.AppendDate(e.payload.B, e.engine, days)

	return e.checkPayloadSize()
}

// AddTimestamp appends a timestamp value to the open column.
func (e *Encoder) AddTimestamp(ts datetime.Timestamp) error {
	if err := e.checkAdd(format.TypeTimestamp); err != nil {
		return err
	}
	e.payload.B = wire.AppendTimestamp(e.payload.B, e.engine, ts)

	return e.checkPayloadSize()
}

// AddInterval appends an interval value to the open column.
func (e *Encoder) AddInterval(iv datetime.Interval) error {
	if err := e.checkAdd(format.TypeInterval); err != nil {
		return err
	}
	e.payload.B = wire.AppendInterval(e.payload.B, e.engine, iv)

	return e.checkPayloadSize()
}

// AddNumeric appends a numeric value to the open column.
func (e *Encoder) AddNumeric(n numeric.Numeric) error {
	if err := e.checkAdd(format.TypeNumeric); err != nil {
		return err
	}
	e.payload.B = wire.AppendNumeric(e.payload.B, e.engine, n)

	return e.checkPayloadSize()
}

// EndColumn seals the open column and records its index entry.
//
// Returns ErrNoColumnOpen if no column is open.
func (e *Encoder) EndColumn() error {
	if !e.open {
		return errs.ErrNoColumnOpen
	}

	e.entries = append(e.entries, indexEntry{
		id:     hash.ColumnID(e.curName),
		name:   e.curName,
		vtype:  e.curType,
		count:  e.curCount,
		offset: uint32(e.curStart),                   //nolint: gosec
		length: uint32(e.payload.Len() - e.curStart), //nolint: gosec
	})
	e.open = false

	return nil
}

// Finish compresses the payload, assembles the blob, and returns it.
//
// The encoder releases its internal buffers and cannot be reused afterwards.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, fmt.Errorf("encoder already finished")
	}
	if e.open {
		return nil, fmt.Errorf("%w: %q not ended before finish", errs.ErrColumnAlreadyOpen, e.curName)
	}
	e.finished = true
	defer func() {
		pool.PutBlobBuffer(e.payload)
		e.payload = nil
	}()

	raw := e.payload.Bytes()

	var digest uint64
	if e.header.Flag.HasDigest() {
		digest = hash.Digest(raw)
	}

	compressed, err := e.codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	indexSize := 0
	for i := range e.entries {
		indexSize += indexEntryFixedSize + len(e.entries[i].name)
	}

	e.header.ColumnCount = uint32(len(e.entries))           //nolint: gosec
	e.header.PayloadOffset = uint32(HeaderSize + indexSize) //nolint: gosec
	e.header.PayloadLength = uint32(len(compressed))        //nolint: gosec

	size := HeaderSize + indexSize + len(compressed)
	if e.header.Flag.HasDigest() {
		size += DigestSize
	}

	out := make([]byte, 0, size)
	out = e.header.Append(out)
	for i := range e.entries {
		entry := &e.entries[i]
		out = e.engine.AppendUint64(out, entry.id)
		out = append(out, byte(entry.vtype), byte(len(entry.name)))
		out = e.engine.AppendUint32(out, entry.count)
		out = e.engine.AppendUint32(out, entry.offset)
		out = e.engine.AppendUint32(out, entry.length)
		out = append(out, entry.name...)
	}
	out = append(out, compressed...)
	if e.header.Flag.HasDigest() {
		out = e.engine.AppendUint64(out, digest)
	}

	return out, nil
}

func (e *Encoder) checkAdd(valueType format.ValueType) error {
	if e.finished {
		return fmt.Errorf("encoder already finished")
	}
	if !e.open {
		return errs.ErrNoColumnOpen
	}
	if e.curType != valueType {
		return fmt.Errorf("%w: column %q holds %v, not %v", errs.ErrInvalidValueType, e.curName, e.curType, valueType)
	}
	e.curCount++

	return nil
}

func (e *Encoder) checkPayloadSize() error {
	if e.payload.Len() > e.maxPayloadSize {
		return fmt.Errorf("%w: payload exceeds %d bytes", errs.ErrAllocationFailure, e.maxPayloadSize)
	}

	return nil
}
