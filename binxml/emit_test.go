package binxml

import (
	"strings"
	"testing"
)

func TestPrettySelfClosingAndContent(t *testing.T) {
	root := NewBuilderNode("Root").Attr("version", "1.0")
	root.AddChild(NewBuilderNode("A").Attr("k", "v"))
	root.Content = "text"
	root.AddChild(NewBuilderNode("B"))

	data, err := Encode(root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	out, err := Pretty(doc, nil)
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}

	if !strings.Contains(out, `<A k="v"/>`) {
		t.Fatalf("expected self-closing <A k=\"v\"/>, got:\n%s", out)
	}
	if !strings.Contains(out, "<B/>") {
		t.Fatalf("expected self-closing <B/>, got:\n%s", out)
	}
	if !strings.Contains(out, "text") {
		t.Fatalf("expected root content to appear, got:\n%s", out)
	}
}

func TestPrettyDropsXmlnsAttributes(t *testing.T) {
	root := NewBuilderNode("Root").Attr("xmlns", "http://example.com").Attr("xmlns:foo", "bar").Attr("kept", "yes")

	data, err := Encode(root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	out, err := Pretty(doc, nil)
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if strings.Contains(out, "xmlns") {
		t.Fatalf("expected xmlns attributes to be dropped, got:\n%s", out)
	}
	if !strings.Contains(out, `kept="yes"`) {
		t.Fatalf("expected non-xmlns attribute to survive, got:\n%s", out)
	}
}

func TestPrettyEscapesText(t *testing.T) {
	root := NewBuilderNode("Root")
	root.Content = `a < b & c > d "quoted"`

	data, err := Encode(root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	out, err := Pretty(doc, nil)
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if strings.Contains(out, "a < b") || strings.Contains(out, "c > d") {
		t.Fatalf("expected text to be escaped, got:\n%s", out)
	}
	if !strings.Contains(out, "&lt;") || !strings.Contains(out, "&gt;") || !strings.Contains(out, "&amp;") {
		t.Fatalf("expected escaped entities, got:\n%s", out)
	}
}

func TestTwoStepTextualIdempotence(t *testing.T) {
	original := `<?xml version="1.0" encoding="utf-8"?>
<Root version="1.0">
  <A k="v"/>
  text
  <B/>
</Root>
`
	tree, err := ParseText(original)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}

	firstBin, err := Encode(tree)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	firstDoc, err := Decode(firstBin)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	firstText, err := Pretty(firstDoc, nil)
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}

	secondTree, err := ParseText(firstText)
	if err != nil {
		t.Fatalf("ParseText (second pass): %v", err)
	}
	secondBin, err := Encode(secondTree)
	if err != nil {
		t.Fatalf("Encode (second pass): %v", err)
	}
	secondDoc, err := Decode(secondBin)
	if err != nil {
		t.Fatalf("Decode (second pass): %v", err)
	}
	secondText, err := Pretty(secondDoc, nil)
	if err != nil {
		t.Fatalf("Pretty (second pass): %v", err)
	}

	if firstText != secondText {
		t.Fatalf("expected textual idempotence after two encode/decode passes:\nfirst:\n%s\nsecond:\n%s", firstText, secondText)
	}
}

func TestEmitOptionsCustomIndent(t *testing.T) {
	root := NewBuilderNode("Root")
	root.AddChild(NewBuilderNode("Child"))

	data, err := Encode(root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	out, err := Pretty(doc, &EmitOptions{Indent: "\t"})
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(out, "\t<Child/>") {
		t.Fatalf("expected tab-indented child, got:\n%s", out)
	}
}
