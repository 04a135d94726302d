// Package binreader is the foundation every codec builds on: a
// little-endian cursor over an immutable byte slice, a permuted
// 16-byte identifier type, seedable CRC32C, and the byte-scan helpers
// the sealed-archive trailer search and the binary-XML string pool
// both need. Grounded on svarog-common's reader.rs/guid.rs/crc.rs/simd.rs.
package binreader

import "fmt"

// Cursor is a read-only position into a byte slice. It never copies the
// underlying bytes; every Read* method advances Pos and returns an error
// carrying (needed, available) on short reads, never panics.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data for sequential reads starting at offset 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.data) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// Seek moves the cursor to an absolute offset. It fails if offset is out
// of [0, len(data)].
func (c *Cursor) Seek(offset int) error {
	if offset < 0 || offset > len(c.data) {
		return &UnexpectedEOFError{Needed: offset, Available: len(c.data)}
	}
	c.pos = offset
	return nil
}

// Advance moves the cursor forward n bytes without reading them.
func (c *Cursor) Advance(n int) error {
	return c.Seek(c.pos + n)
}

func (c *Cursor) require(n int) error {
	if n < 0 || c.pos+n > len(c.data) {
		return &UnexpectedEOFError{Needed: n, Available: len(c.data) - c.pos}
	}
	return nil
}

// ReadBytes returns the next n bytes as a sub-slice (no copy) and
// advances the cursor.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// PeekBytes returns the next n bytes without advancing the cursor.
func (c *Cursor) PeekBytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	return c.data[c.pos : c.pos+n], nil
}

// ReadU8 reads one unsigned byte.
func (c *Cursor) ReadU8() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

// ReadI8 reads one signed byte.
func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

// ReadU16 reads a little-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := uint16(c.data[c.pos]) | uint16(c.data[c.pos+1])<<8
	c.pos += 2
	return v, nil
}

// ReadI16 reads a little-endian int16.
func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := uint32(c.data[c.pos]) | uint32(c.data[c.pos+1])<<8 |
		uint32(c.data[c.pos+2])<<16 | uint32(c.data[c.pos+3])<<24
	c.pos += 4
	return v, nil
}

// ReadI32 reads a little-endian int32.
func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

// ReadU64 reads a little-endian uint64.
func (c *Cursor) ReadU64() (uint64, error) {
	if err := c.require(8); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(c.data[c.pos+i]) << (8 * i)
	}
	c.pos += 8
	return v, nil
}

// ReadI64 reads a little-endian int64.
func (c *Cursor) ReadI64() (int64, error) {
	v, err := c.ReadU64()
	return int64(v), err
}

// ReadF32 reads a little-endian IEEE-754 single.
func (c *Cursor) ReadF32() (float32, error) {
	v, err := c.ReadU32()
	if err != nil {
		return 0, err
	}
	return Float32FromBits(v), nil
}

// ReadF64 reads a little-endian IEEE-754 double.
func (c *Cursor) ReadF64() (float64, error) {
	v, err := c.ReadU64()
	if err != nil {
		return 0, err
	}
	return Float64FromBits(v), nil
}

// PeekU32 reads a little-endian uint32 without advancing the cursor.
func (c *Cursor) PeekU32() (uint32, error) {
	save := c.pos
	v, err := c.ReadU32()
	c.pos = save
	return v, err
}

// ReadCString reads bytes until (and consuming) a NUL terminator, or
// fails with MissingNullTerminatorError if the buffer is exhausted first.
func (c *Cursor) ReadCString() (string, error) {
	idx := IndexByte(c.data[c.pos:], 0)
	if idx < 0 {
		return "", &MissingNullTerminatorError{Offset: c.pos}
	}
	s := string(c.data[c.pos : c.pos+idx])
	c.pos += idx + 1
	return s, nil
}

// ReadString reads exactly n raw bytes and returns them as a string
// (for length-prefixed, non-NUL-terminated text).
func (c *Cursor) ReadString(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadFixedString reads up to n bytes starting at the cursor but stops at
// the first NUL found within that bounded region (matching read_string_in_buffer
// in the Rust reference: a fixed-size buffer whose content is NUL-truncated).
// The cursor always advances by exactly n bytes regardless of where the NUL
// was found.
func (c *Cursor) ReadFixedString(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if idx := IndexByte(b, 0); idx >= 0 {
		return string(b[:idx]), nil
	}
	return string(b), nil
}

// ExpectMagic reads len(magic) bytes and fails with a BadMagicError if
// they don't match exactly.
func (c *Cursor) ExpectMagic(magic []byte) error {
	got, err := c.ReadBytes(len(magic))
	if err != nil {
		return err
	}
	for i := range magic {
		if got[i] != magic[i] {
			return &BadMagicError{Expected: append([]byte(nil), magic...), Actual: append([]byte(nil), got...)}
		}
	}
	return nil
}

// UnexpectedEOFError is returned whenever a read would run past the end
// of the buffer.
type UnexpectedEOFError struct {
	Needed    int
	Available int
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected end of buffer: needed %d bytes, %d available", e.Needed, e.Available)
}

// BadMagicError is returned when a fixed magic byte sequence doesn't match.
type BadMagicError struct {
	Expected []byte
	Actual   []byte
}

func (e *BadMagicError) Error() string {
	return fmt.Sprintf("bad magic: expected % x, got % x", e.Expected, e.Actual)
}

// MissingNullTerminatorError is returned when a NUL-terminated string
// read runs off the end of the buffer without finding one.
type MissingNullTerminatorError struct {
	Offset int
}

func (e *MissingNullTerminatorError) Error() string {
	return fmt.Sprintf("missing NUL terminator starting at offset %d", e.Offset)
}
