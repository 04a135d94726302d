package binreader

import "testing"

func TestCursorReadPrimitives(t *testing.T) {
	data := []byte{
		0x01,             // u8
		0x02, 0x00,       // u16 = 2
		0x03, 0x00, 0x00, 0x00, // u32 = 3
	}
	c := NewCursor(data)

	u8, err := c.ReadU8()
	if err != nil || u8 != 1 {
		t.Fatalf("ReadU8 = %v, %v; want 1, nil", u8, err)
	}

	u16, err := c.ReadU16()
	if err != nil || u16 != 2 {
		t.Fatalf("ReadU16 = %v, %v; want 2, nil", u16, err)
	}

	u32, err := c.ReadU32()
	if err != nil || u32 != 3 {
		t.Fatalf("ReadU32 = %v, %v; want 3, nil", u32, err)
	}

	if c.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", c.Remaining())
	}
}

func TestCursorShortRead(t *testing.T) {
	c := NewCursor([]byte{0x01})
	_, err := c.ReadU32()
	if err == nil {
		t.Fatal("expected short-read error, got nil")
	}
	eofErr, ok := err.(*UnexpectedEOFError)
	if !ok {
		t.Fatalf("expected *UnexpectedEOFError, got %T", err)
	}
	if eofErr.Needed != 4 || eofErr.Available != 1 {
		t.Fatalf("got Needed=%d Available=%d, want 4, 1", eofErr.Needed, eofErr.Available)
	}
}

func TestCursorReadCString(t *testing.T) {
	c := NewCursor([]byte("hello\x00world"))
	s, err := c.ReadCString()
	if err != nil || s != "hello" {
		t.Fatalf("ReadCString() = %q, %v; want hello, nil", s, err)
	}
	if c.Pos() != 6 {
		t.Fatalf("Pos() = %d, want 6", c.Pos())
	}
}

func TestCursorReadCStringMissingTerminator(t *testing.T) {
	c := NewCursor([]byte("nonul"))
	_, err := c.ReadCString()
	if _, ok := err.(*MissingNullTerminatorError); !ok {
		t.Fatalf("expected *MissingNullTerminatorError, got %v", err)
	}
}

func TestCursorReadFixedString(t *testing.T) {
	c := NewCursor([]byte("ab\x00\x00\x00\x00rest"))
	s, err := c.ReadFixedString(6)
	if err != nil || s != "ab" {
		t.Fatalf("ReadFixedString() = %q, %v; want ab, nil", s, err)
	}
	if c.Pos() != 6 {
		t.Fatalf("Pos() = %d, want 6 (advances full width regardless of NUL position)", c.Pos())
	}
}

func TestCursorExpectMagic(t *testing.T) {
	c := NewCursor([]byte{0x42, 0x42, 0xFF})
	if err := c.ExpectMagic([]byte{0x42, 0x42}); err != nil {
		t.Fatalf("ExpectMagic() = %v, want nil", err)
	}

	c2 := NewCursor([]byte{0x00, 0x00})
	if err := c2.ExpectMagic([]byte{0x42, 0x42}); err == nil {
		t.Fatal("expected BadMagicError, got nil")
	}
}

func TestIdentifierRoundTrip(t *testing.T) {
	raw := Identifier{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF,
		0xFE, 0xDC, 0xBA, 0x98, 0x76, 0x54, 0x32, 0x10}
	want := "efcdab89-6745-2301-1032-547698badcfe"

	got := raw.String()
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	parsed, err := ParseIdentifier(got)
	if err != nil {
		t.Fatalf("ParseIdentifier() error: %v", err)
	}
	if parsed != raw {
		t.Fatalf("ParseIdentifier() = %v, want %v", parsed, raw)
	}
}

func TestIdentifierEmpty(t *testing.T) {
	var id Identifier
	if !id.IsEmpty() {
		t.Fatal("zero Identifier should report IsEmpty() == true")
	}
}

func TestFindLastNonZero(t *testing.T) {
	cases := []struct {
		data []byte
		want int
	}{
		{[]byte{1, 2, 3, 0, 0}, 3},
		{[]byte{0, 0, 0}, 0},
		{[]byte{}, 0},
		{[]byte{0, 0, 5}, 3},
	}
	for _, tc := range cases {
		if got := FindLastNonZero(tc.data); got != tc.want {
			t.Errorf("FindLastNonZero(%v) = %d, want %d", tc.data, got, tc.want)
		}
	}
}

func TestHashStringStableAndDistinct(t *testing.T) {
	h1 := HashString("dna")
	h2 := HashString("dna")
	if h1 != h2 {
		t.Fatalf("HashString not stable across calls: %d != %d", h1, h2)
	}
	if h1 == HashString("not-dna") {
		t.Fatal("distinct strings hashed to the same value")
	}
}
