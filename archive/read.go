package archive

import (
	"fmt"

	"github.com/nullsector/assetkit/internal/binreader"
)

// readAt decrypts and decompresses the entry stored at e.LocalHeaderOffset,
// mirroring P4kArchive::read_by_offset: validate the local file header,
// skip past its variable-length name/extra fields to the payload, decrypt
// if flagged, then dispatch on compression method.
func (a *Archive) readAt(e Entry) ([]byte, error) {
	c := binreader.NewCursor(a.data[e.LocalHeaderOffset:])

	sig, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if sig != sigLocalHeader && sig != sigLocalHeaderExtended {
		return nil, &BadSignatureError{Expected: sigLocalHeader, Actual: sig}
	}

	if _, err := c.ReadU16(); err != nil { // version_needed
		return nil, err
	}
	if _, err := c.ReadU16(); err != nil { // flags
		return nil, err
	}
	if _, err := c.ReadU16(); err != nil { // compression_method (already known from the central directory)
		return nil, err
	}
	if _, err := c.ReadU32(); err != nil { // last_modified
		return nil, err
	}
	if _, err := c.ReadU32(); err != nil { // crc32
		return nil, err
	}
	if _, err := c.ReadU32(); err != nil { // compressed_size
		return nil, err
	}
	if _, err := c.ReadU32(); err != nil { // uncompressed_size
		return nil, err
	}
	nameLen, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	extraLen, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	if err := c.Advance(int(nameLen) + int(extraLen)); err != nil {
		return nil, err
	}

	dataStart := int(e.LocalHeaderOffset) + c.Pos()
	compressed, err := readSlice(a.data, dataStart, int(e.CompressedSize))
	if err != nil {
		return nil, err
	}

	if e.IsEncrypted {
		compressed, err = decryptEntry(compressed)
		if err != nil {
			return nil, err
		}
	}

	switch e.CompressionMethod {
	case CompressionStore:
		if uint64(len(compressed)) != e.UncompressedSize {
			return nil, &StoredSizeMismatchError{Expected: int(e.UncompressedSize), Actual: len(compressed)}
		}
		out := make([]byte, len(compressed))
		copy(out, compressed)
		return out, nil
	case CompressionDeflate:
		return decompressDeflate(compressed, int(e.UncompressedSize))
	case CompressionZstd:
		return decompressZstd(compressed, int(e.UncompressedSize))
	default:
		return nil, &UnsupportedCompressionError{Method: uint16(e.CompressionMethod)}
	}
}

func readSlice(data []byte, start, n int) ([]byte, error) {
	if start < 0 || n < 0 || start+n > len(data) {
		return nil, &UnexpectedEOFError{Needed: n, Available: len(data) - start}
	}
	return data[start : start+n], nil
}

// UnexpectedEOFError mirrors binreader's error for archive-local slicing
// that happens outside a Cursor (the payload region itself isn't read
// through one, since it's handed off whole to decrypt/decompress).
type UnexpectedEOFError struct {
	Needed    int
	Available int
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected end of archive data: needed %d bytes, %d available", e.Needed, e.Available)
}
