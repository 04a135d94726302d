package binxml

import (
	"strings"

	"github.com/beevik/etree"
)

// BuilderNode is an in-memory tree node used to construct a binary-XML
// document from scratch or from parsed text, before flattening into the
// wire format's parallel arrays. Grounded on svarog-cryxml's builder.rs
// BuilderNode.
type BuilderNode struct {
	Tag        string
	Content    string
	Attributes []KV
	Children   []*BuilderNode
}

// KV is one ordered attribute pair; order is preserved through encoding
// since the original format has no notion of sorted attributes.
type KV struct {
	Key, Value string
}

// NewBuilderNode starts a node with no attributes or children.
func NewBuilderNode(tag string) *BuilderNode { return &BuilderNode{Tag: tag} }

// Attr appends an attribute and returns the node for chaining.
func (n *BuilderNode) Attr(key, value string) *BuilderNode {
	n.Attributes = append(n.Attributes, KV{key, value})
	return n
}

// WithContent sets the node's text content and returns it for chaining.
func (n *BuilderNode) WithContent(content string) *BuilderNode {
	n.Content = content
	return n
}

// AddChild appends a child node and returns it for chaining.
func (n *BuilderNode) AddChild(child *BuilderNode) *BuilderNode {
	n.Children = append(n.Children, child)
	return n
}

// ParseText parses XML text into a BuilderNode tree ready for Encode.
// Uses beevik/etree rather than a streaming reader since etree gives a
// simple DOM with attribute order preserved, matching what the
// flattening step needs. Grounded on svarog-cryxml's from_xml.rs
// parse_xml_to_node.
func ParseText(xml string) (*BuilderNode, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(xml); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	root := doc.Root()
	if root == nil {
		return nil, &NoRootElementError{}
	}
	return fromEtree(root), nil
}

func fromEtree(el *etree.Element) *BuilderNode {
	n := NewBuilderNode(el.Tag)
	for _, a := range el.Attr {
		key := a.Key
		if a.Space != "" {
			key = a.Space + ":" + a.Key
		}
		n.Attr(key, a.Value)
	}

	var text strings.Builder
	for _, child := range el.Child {
		switch c := child.(type) {
		case *etree.CharData:
			if !c.IsWhitespace() {
				text.WriteString(c.Data)
			}
		case *etree.Element:
			n.AddChild(fromEtree(c))
		}
	}
	n.Content = strings.TrimSpace(text.String())

	return n
}

// stringTable interns strings in first-seen order, matching the
// reference builder.rs StringTable: each new string's offset is the
// cumulative byte size of the table so far.
type stringTable struct {
	order   []string
	offsets map[string]uint32
	size    uint32
}

func newStringTable() *stringTable {
	return &stringTable{offsets: make(map[string]uint32)}
}

func (t *stringTable) add(s string) uint32 {
	if off, ok := t.offsets[s]; ok {
		return off
	}
	off := t.size
	t.offsets[s] = off
	t.order = append(t.order, s)
	t.size += uint32(len(s)) + 1
	return off
}

func (t *stringTable) bytes() []byte {
	out := make([]byte, 0, t.size)
	for _, s := range t.order {
		out = append(out, s...)
		out = append(out, 0)
	}
	return out
}

// Encode flattens root into the binary-XML wire format: magic, header,
// node table, child-index table, attribute table, string pool, in that
// order. Grounded on svarog-cryxml's builder.rs CryXmlBuilder::build.
func Encode(root *BuilderNode) ([]byte, error) {
	strs := newStringTable()
	collectStrings(root, strs)

	var nodes []Node
	var childIndices []int32
	var attrs []Attribute

	flattenNode(root, -1, strs, &nodes, &childIndices, &attrs)

	nodeTablePos := uint32(len(Magic)) + 9*4
	nodeTableSize := uint32(len(nodes)) * nodeSize
	childTablePos := nodeTablePos + nodeTableSize
	childTableSize := uint32(len(childIndices)) * 4
	attrTablePos := childTablePos + childTableSize
	attrTableSize := uint32(len(attrs)) * attrSize
	stringDataPos := attrTablePos + attrTableSize
	stringData := strs.bytes()
	stringDataSize := uint32(len(stringData))

	xmlSize := 9*4 + nodeTableSize + childTableSize + attrTableSize + stringDataSize

	out := make([]byte, 0, len(Magic)+int(xmlSize))
	out = append(out, Magic[:]...)
	out = appendU32(out, xmlSize)
	out = appendU32(out, nodeTablePos)
	out = appendU32(out, uint32(len(nodes)))
	out = appendU32(out, attrTablePos)
	out = appendU32(out, uint32(len(attrs)))
	out = appendU32(out, childTablePos)
	out = appendU32(out, uint32(len(childIndices)))
	out = appendU32(out, stringDataPos)
	out = appendU32(out, stringDataSize)

	for _, n := range nodes {
		out = appendU32(out, n.TagOffset)
		out = appendU32(out, n.ContentOffset)
		out = appendU16(out, n.AttributeCount)
		out = appendU16(out, n.ChildCount)
		out = appendI32(out, n.ParentIndex)
		out = appendI32(out, n.FirstAttributeIndex)
		out = appendI32(out, n.FirstChildIndex)
	}
	for _, idx := range childIndices {
		out = appendI32(out, idx)
	}
	for _, a := range attrs {
		out = appendU32(out, a.KeyOffset)
		out = appendU32(out, a.ValueOffset)
	}
	out = append(out, stringData...)

	return out, nil
}

func collectStrings(n *BuilderNode, t *stringTable) {
	t.add(n.Tag)
	t.add(n.Content)
	for _, a := range n.Attributes {
		t.add(a.Key)
		t.add(a.Value)
	}
	for _, c := range n.Children {
		collectStrings(c, t)
	}
}

// flattenNode assigns n's node index in depth-first traversal order,
// reserving a slot in childIndices per child up front and backfilling it
// once that child's own index is known, matching the reference
// builder.rs flatten_node.
func flattenNode(n *BuilderNode, parentIndex int32, strs *stringTable, nodes *[]Node, childIndices *[]int32, attrs *[]Attribute) int32 {
	nodeIndex := int32(len(*nodes))

	firstAttrIndex := int32(len(*attrs))
	for _, a := range n.Attributes {
		*attrs = append(*attrs, Attribute{
			KeyOffset:   strs.add(a.Key),
			ValueOffset: strs.add(a.Value),
		})
	}

	firstChildIndex := int32(len(*childIndices))
	*nodes = append(*nodes, Node{
		TagOffset:           strs.add(n.Tag),
		ContentOffset:       strs.add(n.Content),
		AttributeCount:      uint16(len(n.Attributes)),
		ChildCount:          uint16(len(n.Children)),
		ParentIndex:         parentIndex,
		FirstAttributeIndex: firstAttrIndex,
		FirstChildIndex:     firstChildIndex,
	})

	childStart := len(*childIndices)
	for range n.Children {
		*childIndices = append(*childIndices, 0)
	}
	for i, child := range n.Children {
		childIdx := flattenNode(child, nodeIndex, strs, nodes, childIndices, attrs)
		(*childIndices)[childStart+i] = childIdx
	}

	return nodeIndex
}

func appendU32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendI32(b []byte, v int32) []byte { return appendU32(b, uint32(v)) }

func appendU16(b []byte, v uint16) []byte { return append(b, byte(v), byte(v>>8)) }
