package charfile

import "fmt"

// InvalidExtensionError is returned by Load when the path's extension
// doesn't match what the caller expected.
type InvalidExtensionError struct {
	Expected string
	Actual   string
}

func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("invalid file extension: expected %s, got %s", e.Expected, e.Actual)
}

// InvalidSizeError is returned when the container isn't exactly Size bytes.
type InvalidSizeError struct {
	Actual int
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("invalid character file size: expected %d bytes, got %d", Size, e.Actual)
}

// InvalidMagicError is returned when the 2-byte magic doesn't match 0x4242.
type InvalidMagicError struct {
	Actual uint16
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("invalid character file magic: expected %#04x, got %#04x", Magic, e.Actual)
}

// CRCMismatchError is returned when the stored checksum doesn't match the
// recomputed one over bytes [16:4096).
type CRCMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("CRC32C mismatch: expected %#010x, got %#010x", e.Expected, e.Actual)
}

// SizeMismatchError is returned when a decompressed payload's length
// disagrees with the declared length.
type SizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("decompressed size mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// OversizeError is returned on save when the compressed payload plus the
// fixed header would not leave room for the 8-byte trailer.
type OversizeError struct {
	CompressedLen int
}

func (e *OversizeError) Error() string {
	return fmt.Sprintf("compressed payload of %d bytes does not fit in the %d bytes available for the payload", e.CompressedLen, Size-HeaderSize-TrailerSize)
}

// ChildCountExceededError guards the attachment tree against pathological
// or malicious inputs: more than 1000 children at a single node is
// refused rather than walked.
type ChildCountExceededError struct {
	Count uint32
}

func (e *ChildCountExceededError) Error() string {
	return fmt.Sprintf("item port child count %d exceeds the maximum of %d", e.Count, maxItemPortChildren)
}
