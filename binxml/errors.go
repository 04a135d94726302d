// Package binxml implements the flattened binary XML codec (C3): a
// shared interned string pool plus parallel node/attribute/child-index
// arrays, position-indexed from a 9-field header. Grounded on
// svarog-cryxml's header.rs/node.rs/attribute.rs/parser.rs/builder.rs/
// from_xml.rs.
package binxml

import "fmt"

// InvalidMagicError is returned when a document doesn't open with the
// 8-byte "CryXmlB\0" signature.
type InvalidMagicError struct {
	Actual []byte
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("bad binary-xml magic: got % x", e.Actual)
}

// StringOffsetOutOfRangeError is returned when a tag/content/attribute
// offset falls outside the string pool.
type StringOffsetOutOfRangeError struct {
	Offset int
	Size   int
}

func (e *StringOffsetOutOfRangeError) Error() string {
	return fmt.Sprintf("string offset %d out of range (pool size %d)", e.Offset, e.Size)
}

// RegionOutOfRangeError is returned when a header-declared table
// position/count pair would read past the end of the file.
type RegionOutOfRangeError struct {
	Region string
	Index  int
}

func (e *RegionOutOfRangeError) Error() string {
	return fmt.Sprintf("%s entry %d out of bounds", e.Region, e.Index)
}

// ParseError wraps a failure encountered while parsing supplied XML text
// into a tree for re-encoding.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return fmt.Sprintf("xml parse error: %s", e.Reason) }

// NoRootElementError is returned by ParseText when the supplied text has
// no top-level element.
type NoRootElementError struct{}

func (e *NoRootElementError) Error() string { return "xml parse error: no root element found" }
