package binxml

import (
	"testing"
)

func buildSimpleDoc(t *testing.T) *Document {
	t.Helper()
	root := NewBuilderNode("Root").Attr("version", "1.0")
	a := NewBuilderNode("A").Attr("k", "v")
	root.AddChild(a)
	root.Content = "text"
	b := NewBuilderNode("B")
	root.AddChild(b)

	data, err := Encode(root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return doc
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode([]byte("not a binary xml file at all"))
	if err == nil {
		t.Fatal("expected error for bad magic")
	}
	if _, ok := err.(*InvalidMagicError); !ok {
		t.Fatalf("expected *InvalidMagicError, got %T", err)
	}
}

func TestDecodeRejectsTruncated(t *testing.T) {
	_, err := Decode(Magic[:5])
	if err == nil {
		t.Fatal("expected error for truncated input")
	}
}

func TestIsBinaryXML(t *testing.T) {
	if IsBinaryXML([]byte("plain text")) {
		t.Fatal("plain text should not be recognized as binary xml")
	}
	if !IsBinaryXML(Magic[:]) {
		t.Fatal("exact magic should be recognized")
	}
}

func TestEncodeDecodeRoundTripStructure(t *testing.T) {
	doc := buildSimpleDoc(t)

	if doc.NodeCount() != 3 {
		t.Fatalf("expected 3 nodes, got %d", doc.NodeCount())
	}

	root, ok := doc.Root()
	if !ok {
		t.Fatal("expected a root node")
	}
	tag, err := doc.Tag(root)
	if err != nil || tag != "Root" {
		t.Fatalf("root tag = %q, err = %v", tag, err)
	}

	content, err := doc.Content(root)
	if err != nil || content != "text" {
		t.Fatalf("root content = %q, err = %v", content, err)
	}

	children := doc.Children(root)
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}

	aTag, err := doc.Tag(int(children[0]))
	if err != nil || aTag != "A" {
		t.Fatalf("first child tag = %q, err = %v", aTag, err)
	}

	attrs := doc.Attributes(root)
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attribute on root, got %d", len(attrs))
	}
	key, value, err := doc.AttributeKV(attrs[0])
	if err != nil || key != "version" || value != "1.0" {
		t.Fatalf("root attr = %s=%q, err = %v", key, value, err)
	}
}

func TestStringOutOfRange(t *testing.T) {
	doc := buildSimpleDoc(t)
	_, err := doc.String(uint32(len(doc.stringData) + 100))
	if err == nil {
		t.Fatal("expected out-of-range error")
	}
	if _, ok := err.(*StringOffsetOutOfRangeError); !ok {
		t.Fatalf("expected *StringOffsetOutOfRangeError, got %T", err)
	}
}
