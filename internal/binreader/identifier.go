package binreader

import (
	"encoding/hex"
	"fmt"
)

// Identifier is the 16-byte, non-standard-ordered GUID-like value used
// throughout the sealed archive and object database formats. Its
// canonical text form permutes the raw bytes: textual groups read bytes
// in the order 7,6,5,4 | 3,2 | 1,0 | 15,14 | 13,12,11,10,9,8. Grounded on
// svarog-common's guid.rs (CigGuid).
type Identifier [16]byte

// IsEmpty reports whether every byte is zero.
func (id Identifier) IsEmpty() bool {
	return id == Identifier{}
}

// String renders the canonical permuted text form
// "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx".
func (id Identifier) String() string {
	var buf [36]byte
	order := [16]int{7, 6, 5, 4, 3, 2, 1, 0, 15, 14, 13, 12, 11, 10, 9, 8}
	pos := 0
	dashAfter := map[int]bool{3: true, 5: true, 7: true, 9: true}
	for i, srcIdx := range order {
		hex.Encode(buf[pos:pos+2], id[srcIdx:srcIdx+1])
		pos += 2
		if dashAfter[i] {
			buf[pos] = '-'
			pos++
		}
	}
	return string(buf[:])
}

// ParseIdentifier inverts String's permutation, parsing a canonical
// "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" text form back into 16 bytes.
func ParseIdentifier(s string) (Identifier, error) {
	var id Identifier
	if len(s) != 36 {
		return id, &InvalidIdentifierError{Reason: fmt.Sprintf("expected 36 characters, got %d", len(s))}
	}
	for _, pos := range []int{8, 13, 18, 23} {
		if s[pos] != '-' {
			return id, &InvalidIdentifierError{Reason: fmt.Sprintf("expected '-' at position %d", pos)}
		}
	}
	stripped := s[0:8] + s[9:13] + s[14:18] + s[19:23] + s[24:36]
	raw, err := hex.DecodeString(stripped)
	if err != nil || len(raw) != 16 {
		return id, &InvalidIdentifierError{Reason: "invalid hex digits"}
	}
	order := [16]int{7, 6, 5, 4, 3, 2, 1, 0, 15, 14, 13, 12, 11, 10, 9, 8}
	for i, dstIdx := range order {
		id[dstIdx] = raw[i]
	}
	return id, nil
}

// InvalidIdentifierError is returned when text fails to parse as an Identifier.
type InvalidIdentifierError struct {
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier text: %s", e.Reason)
}
