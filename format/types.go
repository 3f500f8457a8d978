package format

type (
	ValueType       uint8
	CompressionType uint8
)

const (
	TypeDate      ValueType = 0x1 // TypeDate is a 4-byte day count since 2000-01-01.
	TypeTimestamp ValueType = 0x2 // TypeTimestamp is an 8-byte microsecond count since 2000-01-01.
	TypeInterval  ValueType = 0x3 // TypeInterval is an 8-byte microsecond count plus a 4-byte month count.
	TypeNumeric   ValueType = 0x4 // TypeNumeric is a variable-length base-10000 digit-group value.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (v ValueType) String() string {
	switch v {
	case TypeDate:
		return "Date"
	case TypeTimestamp:
		return "Timestamp"
	case TypeInterval:
		return "Interval"
	case TypeNumeric:
		return "Numeric"
	default:
		return "Unknown"
	}
}

// Valid reports whether v is one of the defined value type tags.
func (v ValueType) Valid() bool {
	return v >= TypeDate && v <= TypeNumeric
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the defined compression tags.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}
