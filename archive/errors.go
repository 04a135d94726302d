package archive

import "fmt"

// BadSignatureError is returned whenever a fixed 4-byte ZIP record
// signature doesn't match what the reader expected at that offset.
type BadSignatureError struct {
	Expected uint32
	Actual   uint32
}

func (e *BadSignatureError) Error() string {
	return fmt.Sprintf("bad record signature: expected %#010x, got %#010x", e.Expected, e.Actual)
}

// EocdNotFoundError is returned when the end-of-central-directory
// signature can't be located within the trailing search window.
type EocdNotFoundError struct {
	SearchedBytes int
}

func (e *EocdNotFoundError) Error() string {
	return fmt.Sprintf("end of central directory record not found in last %d bytes", e.SearchedBytes)
}

// Zip64EocdNotFoundError is returned when an EOCD record claims ZIP64
// but the locator or ZIP64 EOCD record it points to can't be read.
type Zip64EocdNotFoundError struct{}

func (e *Zip64EocdNotFoundError) Error() string {
	return "zip64 end of central directory not found"
}

// BadExtraFieldTagError is returned when a central-directory extra field
// doesn't carry the tag the parser expects at that position — the
// archive's custom fields (zip64, 0x5000, 0x5002, 0x5003) appear in a
// fixed order and this format has no tolerance for reordering.
type BadExtraFieldTagError struct {
	Expected uint16
	Actual   uint16
}

func (e *BadExtraFieldTagError) Error() string {
	return fmt.Sprintf("unexpected extra field tag: expected %#06x, got %#06x", e.Expected, e.Actual)
}

// BadExtraFieldSizeError is returned when an extra field's declared
// size disagrees with the fixed size this format requires for it (the
// encryption-flag field must be exactly 6 bytes of payload).
type BadExtraFieldSizeError struct {
	Expected uint16
	Actual   uint16
}

func (e *BadExtraFieldSizeError) Error() string {
	return fmt.Sprintf("unexpected extra field size: expected %d, got %d", e.Expected, e.Actual)
}

// UnsupportedCompressionError is returned for any compression method
// code other than Store(0), Deflate(8), or Zstd(100).
type UnsupportedCompressionError struct {
	Method uint16
}

func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("unsupported compression method: %d", e.Method)
}

// UnsupportedVersionError describes a record whose version-needed field
// exceeds what this reader understands. The parser reads the
// version-needed field without checking it, so Open does not return
// this error.
type UnsupportedVersionError struct {
	Version uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported version needed to extract: %d", e.Version)
}

// StoredSizeMismatchError is returned when a Store-method entry's
// decrypted length disagrees with its declared uncompressed size.
type StoredSizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *StoredSizeMismatchError) Error() string {
	return fmt.Sprintf("stored entry size mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// EntryNotFoundError is returned by Find/ReadIndex when the name or
// index doesn't resolve to an entry.
type EntryNotFoundError struct {
	Name  string
	Index int
}

func (e *EntryNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("entry not found: %s", e.Name)
	}
	return fmt.Sprintf("entry index out of bounds: %d", e.Index)
}

// DecryptionError wraps a failure from the AES-128-CBC decryptor, most
// commonly a ciphertext length that isn't a multiple of the block size.
type DecryptionError struct {
	Reason string
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decryption error: %s", e.Reason)
}

// EntryCountMismatchError is returned when the EOCD's own entry count
// disagrees with the count the ZIP64 EOCD reports, per §4.1.2's
// requirement that the two agree.
type EntryCountMismatchError struct {
	EocdCount  uint16
	Zip64Count uint64
}

func (e *EntryCountMismatchError) Error() string {
	return fmt.Sprintf("central directory entry count mismatch: eocd=%d zip64=%d", e.EocdCount, e.Zip64Count)
}
