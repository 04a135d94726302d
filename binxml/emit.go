package binxml

import (
	"strings"
)

// EmitOptions configures Pretty. A nil *EmitOptions applies the
// default: two-space indentation, matching svarog-cryxml's
// Writer::new_with_indent(writer, b' ', 2) (see SPEC_FULL.md's
// supplemented features).
type EmitOptions struct {
	Indent string
}

func (o *EmitOptions) orDefault() *EmitOptions {
	if o == nil {
		return &EmitOptions{Indent: "  "}
	}
	if o.Indent == "" {
		o.Indent = "  "
	}
	return o
}

// stackItem is one entry in the explicit depth-first traversal stack:
// either "write this node's start tag, then push its children" or
// "write this tag's end tag" (closing a node whose children were
// already pushed). Grounded on svarog-cryxml's parser.rs write_element
// StackItem enum.
type stackItem struct {
	nodeIndex int
	isEnd     bool
	depth     int
}

// Pretty renders doc as indented XML text. Traversal is iterative
// (explicit stack, not recursion) so arbitrarily deep trees don't blow
// the Go call stack. A childless node with non-empty content becomes
// `<tag>content</tag>`; a childless node with empty content becomes a
// self-closing `<tag/>`. A node with children and non-empty content
// writes its content on its own indented line right after the start tag,
// before its children. Attribute keys starting with "xmlns" are
// dropped. Grounded on svarog-cryxml's parser.rs write_element.
func Pretty(doc *Document, opts *EmitOptions) (string, error) {
	opts = opts.orDefault()
	root, ok := doc.Root()
	if !ok {
		return "", nil
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")

	stack := []stackItem{{nodeIndex: root, depth: 0}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.isEnd {
			tag, err := doc.Tag(item.nodeIndex)
			if err != nil {
				return "", err
			}
			b.WriteString(strings.Repeat(opts.Indent, item.depth))
			b.WriteString("</")
			b.WriteString(tag)
			b.WriteString(">\n")
			continue
		}

		node := doc.Node(item.nodeIndex)
		tag, err := doc.Tag(item.nodeIndex)
		if err != nil {
			return "", err
		}
		content, err := doc.Content(item.nodeIndex)
		if err != nil {
			return "", err
		}

		attrs, err := renderAttributes(doc, item.nodeIndex)
		if err != nil {
			return "", err
		}

		indent := strings.Repeat(opts.Indent, item.depth)
		hasContent := content != ""

		switch {
		case node.ChildCount == 0 && !hasContent:
			b.WriteString(indent)
			b.WriteString("<")
			b.WriteString(tag)
			b.WriteString(attrs)
			b.WriteString("/>\n")
		case node.ChildCount == 0 && hasContent:
			b.WriteString(indent)
			b.WriteString("<")
			b.WriteString(tag)
			b.WriteString(attrs)
			b.WriteString(">")
			b.WriteString(escapeText(content))
			b.WriteString("</")
			b.WriteString(tag)
			b.WriteString(">\n")
		default:
			b.WriteString(indent)
			b.WriteString("<")
			b.WriteString(tag)
			b.WriteString(attrs)
			b.WriteString(">\n")
			if hasContent {
				b.WriteString(indent)
				b.WriteString(opts.Indent)
				b.WriteString(escapeText(content))
				b.WriteString("\n")
			}

			stack = append(stack, stackItem{nodeIndex: item.nodeIndex, isEnd: true, depth: item.depth})

			children := doc.Children(item.nodeIndex)
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, stackItem{nodeIndex: int(children[i]), depth: item.depth + 1})
			}
		}
	}

	return b.String(), nil
}

func renderAttributes(doc *Document, nodeIndex int) (string, error) {
	var b strings.Builder
	for _, a := range doc.Attributes(nodeIndex) {
		key, value, err := doc.AttributeKV(a)
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(key, "xmlns") {
			continue
		}
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(value))
		b.WriteString(`"`)
	}
	return b.String(), nil
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
