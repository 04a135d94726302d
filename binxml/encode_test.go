package binxml

import "testing"

func TestFlattenAssignsDepthFirstOrderAndBackfillsChildIndices(t *testing.T) {
	root := NewBuilderNode("Root")
	a := NewBuilderNode("A")
	a.AddChild(NewBuilderNode("A1"))
	root.AddChild(a)
	root.AddChild(NewBuilderNode("B"))

	data, err := Encode(root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if doc.NodeCount() != 4 {
		t.Fatalf("expected 4 nodes, got %d", doc.NodeCount())
	}

	rootIdx, ok := doc.Root()
	if !ok {
		t.Fatal("expected root")
	}
	if rootIdx != 0 {
		t.Fatalf("expected root to be node 0 in traversal order, got %d", rootIdx)
	}

	rootChildren := doc.Children(rootIdx)
	if len(rootChildren) != 2 {
		t.Fatalf("expected 2 children of root, got %d", len(rootChildren))
	}

	aIdx := int(rootChildren[0])
	aTag, _ := doc.Tag(aIdx)
	if aTag != "A" {
		t.Fatalf("expected first root child to be A, got %s", aTag)
	}

	aChildren := doc.Children(aIdx)
	if len(aChildren) != 1 {
		t.Fatalf("expected A to have 1 child, got %d", len(aChildren))
	}
	a1Tag, _ := doc.Tag(int(aChildren[0]))
	if a1Tag != "A1" {
		t.Fatalf("expected A's child to be A1, got %s", a1Tag)
	}

	aNode := doc.Node(aIdx)
	if aNode.ParentIndex != int32(rootIdx) {
		t.Fatalf("expected A's parent index to be root, got %d", aNode.ParentIndex)
	}
}

func TestStringTableInternsRepeatedValues(t *testing.T) {
	root := NewBuilderNode("Item").Attr("name", "x")
	root.AddChild(NewBuilderNode("Item").Attr("name", "x"))

	data, err := Encode(root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	rootIdx, _ := doc.Root()
	rootNode := doc.Node(rootIdx)
	childNode := doc.Node(int(doc.Children(rootIdx)[0]))

	if rootNode.TagOffset != childNode.TagOffset {
		t.Fatalf("expected repeated tag string to be interned to the same offset: %d vs %d", rootNode.TagOffset, childNode.TagOffset)
	}
}

func TestParseTextRejectsEmptyDocument(t *testing.T) {
	_, err := ParseText("")
	if err == nil {
		t.Fatal("expected error parsing empty document")
	}
}
