// Package charfile implements the fixed-4096-byte character file
// container (C4): magic, CRC32C, a Zstandard-compressed payload, and an
// 8-byte modded-file trailer. Grounded on svarog-chf's file.rs/lib.rs.
package charfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/nullsector/assetkit/internal/binreader"
)

const (
	// Size is the exact, non-negotiable container length.
	Size = 4096
	// Magic is the little-endian u16 at offset 0.
	Magic uint16 = 0x4242

	offsetMagic             = 0
	offsetReserved          = 2
	offsetCRC               = 4
	offsetCompressedLen     = 8
	offsetUncompressedLen   = 12
	// HeaderSize is the number of bytes preceding the compressed payload.
	HeaderSize = 16
	// TrailerSize is the width of the modded-file marker region.
	TrailerSize = 8
)

// ModdedMagic is the 8 ASCII bytes that mark a file as user-modified.
// This is a definitional constant.
var ModdedMagic = [TrailerSize]byte{'d', 'i', 'o', 'g', 'o', 't', 'r', '7'}

// File is a parsed 4096-byte character file container. It keeps the
// reserved field and the modded flag around so Save can round-trip them
// byte-for-byte.
type File struct {
	Reserved   uint16
	Payload    []byte
	Modded     bool
	sourceCRC  uint32
}

// Load reads a character file from disk, enforcing a ".chf" extension
// the same way the reference loader does.
func Load(path string) (*File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".chf" {
		return nil, &InvalidExtensionError{Expected: ".chf", Actual: ext}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data)
}

// LoadBytes parses a character file already read into memory.
func LoadBytes(data []byte) (*File, error) {
	if len(data) != Size {
		return nil, &InvalidSizeError{Actual: len(data)}
	}

	c := binreader.NewCursor(data)
	magic, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, &InvalidMagicError{Actual: magic}
	}

	reserved, err := c.ReadU16()
	if err != nil {
		return nil, err
	}

	storedCRC, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	actualCRC := binreader.HashBytes(data[HeaderSize:])
	if actualCRC != storedCRC {
		return nil, &CRCMismatchError{Expected: storedCRC, Actual: actualCRC}
	}

	compressedLen, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	uncompressedLen, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	compressed, err := c.ReadBytes(int(compressedLen))
	if err != nil {
		return nil, err
	}

	payload, err := zstdDecodeAll(compressed)
	if err != nil {
		return nil, err
	}
	if len(payload) != int(uncompressedLen) {
		return nil, &SizeMismatchError{Expected: int(uncompressedLen), Actual: len(payload)}
	}

	trailer := data[Size-TrailerSize:]
	var trailerArr [TrailerSize]byte
	copy(trailerArr[:], trailer)

	modded := trailerArr == ModdedMagic || binreader.IsAllZero(trailer)

	return &File{
		Reserved:  reserved,
		Payload:   payload,
		Modded:    modded,
		sourceCRC: storedCRC,
	}, nil
}

// Save serializes f back into a 4096-byte container: the payload is
// recompressed with Zstandard at level 16, the modded trailer is written
// only when f.Modded is set (otherwise the trailer region stays zero),
// and the CRC32C is recomputed over bytes 16..4096, patching offset 4.
// Byte-for-byte equality with the source file on save(load(F)) only holds
// for files this encoder itself produced: klauspost/compress/zstd has no
// level matching the Rust zstd crate's level 16, so re-compressing a
// foreign-encoder payload yields a different (still valid) byte stream.
func (f *File) Save() ([]byte, error) {
	// The reference encoder asks the Rust zstd crate for level 16 on its
	// 1-22 integer scale. klauspost/compress/zstd only exposes four speed
	// tiers rather than per-level tuning; SpeedBestCompression is the
	// closest match to a level that high. See DESIGN.md.
	compressed, err := zstdEncodeAll(f.Payload, zstd.SpeedBestCompression)
	if err != nil {
		return nil, err
	}
	if HeaderSize+len(compressed) > Size-TrailerSize {
		return nil, &OversizeError{CompressedLen: len(compressed)}
	}

	out := make([]byte, Size)
	out[offsetMagic] = byte(Magic)
	out[offsetMagic+1] = byte(Magic >> 8)
	out[offsetReserved] = byte(f.Reserved)
	out[offsetReserved+1] = byte(f.Reserved >> 8)
	putU32(out[offsetCompressedLen:], uint32(len(compressed)))
	putU32(out[offsetUncompressedLen:], uint32(len(f.Payload)))
	copy(out[HeaderSize:], compressed)

	if f.Modded {
		copy(out[Size-TrailerSize:], ModdedMagic[:])
	}

	crc := binreader.HashBytes(out[HeaderSize:])
	putU32(out[offsetCRC:], crc)

	return out, nil
}

// SaveToFile writes Save's output to path.
func (f *File) SaveToFile(path string) error {
	data, err := f.Save()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func putU32(dst []byte, v uint32) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 24)
}

func zstdDecodeAll(compressed []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(compressed, nil)
}

func zstdEncodeAll(data []byte, level zstd.EncoderLevel) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}
