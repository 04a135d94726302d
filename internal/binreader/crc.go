package binreader

import "hash/crc32"

// castagnoli is the CRC32C (Castagnoli) table shared by every checksum
// and name-hash computation in the toolkit; hash/crc32's own
// MakeTable(crc32.Castagnoli) is hardware-accelerated on amd64/arm64
// when available, matching the crc32c crate's own platform dispatch.
var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// HashBytes computes the CRC32C of data from a zero seed.
func HashBytes(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// HashBytesWithSeed continues a CRC32C computation from a prior checksum,
// used when a container's checksum covers multiple non-contiguous
// regions written in sequence.
func HashBytesWithSeed(seed uint32, data []byte) uint32 {
	return crc32.Update(seed, castagnoli, data)
}

// HashString computes the CRC32C of a UTF-8 string, used for the
// character file's name-hash dictionary and any other place a textual
// name is turned into a wire-level 32-bit hash.
func HashString(s string) uint32 {
	return HashBytes([]byte(s))
}
