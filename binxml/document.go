package binxml

import "github.com/nullsector/assetkit/internal/binreader"

// Magic is the 8-byte signature every binary-XML file opens with.
var Magic = [8]byte{'C', 'r', 'y', 'X', 'm', 'l', 'B', 0}

// header mirrors the 9 little-endian u32 fields following the magic.
// Every position is relative to the start of the file (magic included),
// matching svarog-cryxml's CryXmlHeader.
type header struct {
	xmlSize                uint32
	nodeTablePosition      uint32
	nodeCount              uint32
	attributeTablePosition uint32
	attributeCount         uint32
	childTablePosition     uint32
	childCount             uint32
	stringDataPosition     uint32
	stringDataSize         uint32
}

// Node is one element in the flattened tree. ParentIndex is -1 for the
// single root. Grounded on svarog-cryxml's node.rs CryXmlNode.
type Node struct {
	TagOffset           uint32
	ContentOffset       uint32
	AttributeCount      uint16
	ChildCount          uint16
	ParentIndex         int32
	FirstAttributeIndex int32
	FirstChildIndex     int32
}

// Attribute is one (key, value) pair, both string-pool offsets.
// Grounded on svarog-cryxml's attribute.rs CryXmlAttribute.
type Attribute struct {
	KeyOffset   uint32
	ValueOffset uint32
}

// Document is a parsed, immutable binary-XML tree. Every accessor
// borrows from the byte region handed to Decode.
type Document struct {
	nodes        []Node
	childIndices []int32
	attributes   []Attribute
	stringData   []byte
}

// Decode parses a complete binary-XML document from data. Grounded on
// svarog-cryxml's parser.rs CryXml::parse: every region is read at the
// position and length the header states, not by sequential cursor
// advance, since the format is position-indexed rather than stream-
// ordered.
func Decode(data []byte) (*Document, error) {
	if len(data) < len(Magic) || [8]byte(data[:8]) != Magic {
		n := len(data)
		if n > 8 {
			n = 8
		}
		return nil, &InvalidMagicError{Actual: append([]byte(nil), data[:n]...)}
	}

	c := binreader.NewCursor(data[len(Magic):])
	h, err := readHeader(c)
	if err != nil {
		return nil, err
	}

	nodes, err := readNodes(data, h)
	if err != nil {
		return nil, err
	}
	childIndices, err := readChildIndices(data, h)
	if err != nil {
		return nil, err
	}
	attrs, err := readAttributes(data, h)
	if err != nil {
		return nil, err
	}

	stringEnd := int(h.stringDataPosition) + int(h.stringDataSize)
	if int(h.stringDataPosition) < 0 || stringEnd > len(data) {
		return nil, &RegionOutOfRangeError{Region: "string data", Index: 0}
	}

	return &Document{
		nodes:        nodes,
		childIndices: childIndices,
		attributes:   attrs,
		stringData:   data[h.stringDataPosition:stringEnd],
	}, nil
}

// IsBinaryXML reports whether data opens with the binary-XML magic.
func IsBinaryXML(data []byte) bool {
	return len(data) >= len(Magic) && [8]byte(data[:8]) == Magic
}

func readHeader(c *binreader.Cursor) (header, error) {
	var h header
	fields := []*uint32{
		&h.xmlSize, &h.nodeTablePosition, &h.nodeCount,
		&h.attributeTablePosition, &h.attributeCount,
		&h.childTablePosition, &h.childCount,
		&h.stringDataPosition, &h.stringDataSize,
	}
	for _, f := range fields {
		v, err := c.ReadU32()
		if err != nil {
			return h, err
		}
		*f = v
	}
	return h, nil
}

const nodeSize = 24 // 4+4+2+2+4+4+4

func readNodes(data []byte, h header) ([]Node, error) {
	start := int(h.nodeTablePosition)
	out := make([]Node, h.nodeCount)
	for i := range out {
		off := start + i*nodeSize
		if off+nodeSize > len(data) {
			return nil, &RegionOutOfRangeError{Region: "node", Index: i}
		}
		c := binreader.NewCursor(data[off : off+nodeSize])
		tag, _ := c.ReadU32()
		content, _ := c.ReadU32()
		attrCount, _ := c.ReadU16()
		childCount, _ := c.ReadU16()
		parent, _ := c.ReadI32()
		firstAttr, _ := c.ReadI32()
		firstChild, _ := c.ReadI32()
		out[i] = Node{
			TagOffset:           tag,
			ContentOffset:       content,
			AttributeCount:      attrCount,
			ChildCount:          childCount,
			ParentIndex:         parent,
			FirstAttributeIndex: firstAttr,
			FirstChildIndex:     firstChild,
		}
	}
	return out, nil
}

func readChildIndices(data []byte, h header) ([]int32, error) {
	start := int(h.childTablePosition)
	out := make([]int32, h.childCount)
	for i := range out {
		off := start + i*4
		if off+4 > len(data) {
			return nil, &RegionOutOfRangeError{Region: "child index", Index: i}
		}
		c := binreader.NewCursor(data[off : off+4])
		v, _ := c.ReadI32()
		out[i] = v
	}
	return out, nil
}

const attrSize = 8

func readAttributes(data []byte, h header) ([]Attribute, error) {
	start := int(h.attributeTablePosition)
	out := make([]Attribute, h.attributeCount)
	for i := range out {
		off := start + i*attrSize
		if off+attrSize > len(data) {
			return nil, &RegionOutOfRangeError{Region: "attribute", Index: i}
		}
		c := binreader.NewCursor(data[off : off+attrSize])
		key, _ := c.ReadU32()
		val, _ := c.ReadU32()
		out[i] = Attribute{KeyOffset: key, ValueOffset: val}
	}
	return out, nil
}

// NodeCount returns the number of nodes in the document.
func (d *Document) NodeCount() int { return len(d.nodes) }

// Root returns the index of the single node with ParentIndex -1, or
// false if the document is empty.
func (d *Document) Root() (int, bool) {
	for i, n := range d.nodes {
		if n.ParentIndex < 0 {
			return i, true
		}
	}
	return 0, false
}

// Node returns the node at index.
func (d *Document) Node(index int) Node { return d.nodes[index] }

// Children returns the node indices that are index's children, in
// order, bounds-checked against the child-index table (a corrupted
// file degrades to no children rather than panicking).
func (d *Document) Children(index int) []int32 {
	n := d.nodes[index]
	start := int(n.FirstChildIndex)
	end := start + int(n.ChildCount)
	if start < 0 || end > len(d.childIndices) {
		return nil
	}
	return d.childIndices[start:end]
}

// Attributes returns the attributes belonging to node index, bounds-
// checked the same way as Children.
func (d *Document) Attributes(index int) []Attribute {
	n := d.nodes[index]
	start := int(n.FirstAttributeIndex)
	end := start + int(n.AttributeCount)
	if start < 0 || end > len(d.attributes) {
		return nil
	}
	return d.attributes[start:end]
}

// String resolves a string-pool offset to its NUL-terminated text,
// using a forward byte scan from offset (SIMD-assisted via Go's
// bytes.IndexByte on amd64/arm64; see binreader.IndexByte).
func (d *Document) String(offset uint32) (string, error) {
	if int(offset) > len(d.stringData) {
		return "", &StringOffsetOutOfRangeError{Offset: int(offset), Size: len(d.stringData)}
	}
	rest := d.stringData[offset:]
	idx := binreader.IndexByte(rest, 0)
	if idx < 0 {
		return string(rest), nil
	}
	return string(rest[:idx]), nil
}

// Tag returns a node's resolved tag name.
func (d *Document) Tag(index int) (string, error) { return d.String(d.nodes[index].TagOffset) }

// Content returns a node's resolved text content.
func (d *Document) Content(index int) (string, error) {
	return d.String(d.nodes[index].ContentOffset)
}

// AttributeKV resolves both sides of an attribute.
func (d *Document) AttributeKV(a Attribute) (key, value string, err error) {
	key, err = d.String(a.KeyOffset)
	if err != nil {
		return "", "", err
	}
	value, err = d.String(a.ValueOffset)
	if err != nil {
		return "", "", err
	}
	return key, value, nil
}
