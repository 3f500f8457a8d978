package hash

import "github.com/cespare/xxhash/v2"

// ColumnID computes the xxHash64 identifier of a column name.
func ColumnID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Digest computes the xxHash64 digest of an encoded payload.
func Digest(payload []byte) uint64 {
	return xxhash.Sum64(payload)
}
