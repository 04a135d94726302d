package objectdb

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/beevik/etree"

	"github.com/nullsector/assetkit/internal/binreader"
)

// exportContext is stack-local state for a single ExportRecord call:
// the weak-pointer label map computed once up front, the exporting
// record's own file (for the same-file/cross-file reference split),
// and a cycle guard for strong pointers and same-file references
// followed inline. Grounded on svarog-datacore's export/xml.rs
// ExportContext.
type exportContext struct {
	db          *Database
	originFile  StringID
	currentPath string
	weakIDs     map[Pointer]int
	inlining    map[Pointer]bool
}

// ExportRecord walks r's instance and renders it as an XML-like tree:
// every property becomes an element named after the property, embedded
// structs become nested elements, strong pointers and same-file
// references are inlined, weak pointers get a stable "ptr:<n>" label,
// and cross-file references become a path-relative "file://./../.."
// URI. Grounded on svarog-datacore's export/xml.rs export_record.
func (db *Database) ExportRecord(r Record) (string, error) {
	weakIDs, err := db.walkRecordForWeakPointers(r)
	if err != nil {
		return "", &ExportError{Reason: err.Error()}
	}

	ctx := &exportContext{
		db:          db,
		originFile:  r.FileNameOffset,
		currentPath: db.RecordFileName(r),
		weakIDs:     weakIDs,
		inlining:    make(map[Pointer]bool),
	}

	root := etree.NewElement(sanitizeElementName(db.RecordName(r)))
	root.CreateAttr("Id", binreader.Identifier(r.ID).String())
	if typeName := db.StructName(r.StructIndex); typeName != "" {
		root.CreateAttr("Type", typeName)
	}

	if err := ctx.populateInstance(root, r.StructIndex, int32(r.InstanceIndex)); err != nil {
		return "", err
	}

	doc := etree.NewDocument()
	doc.Indent(2)
	doc.SetRoot(root)
	text, err := doc.WriteToString()
	if err != nil {
		return "", &ExportError{Reason: err.Error()}
	}
	return text, nil
}

func (ctx *exportContext) populateInstance(el *etree.Element, structIndex, instanceIndex int32) error {
	inst := ctx.db.NewInstance(structIndex, instanceIndex)
	props, err := inst.Properties()
	if err != nil {
		return err
	}
	for _, pv := range props {
		if err := ctx.appendProperty(el, pv); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *exportContext) appendProperty(parent *etree.Element, pv PropertyValue) error {
	return ctx.appendValue(parent, sanitizeElementName(pv.Name), pv.Value)
}

// appendValue renders a single (possibly array) property value as one
// or more child elements named name, appended to parent in place.
func (ctx *exportContext) appendValue(parent *etree.Element, name string, v Value) error {
	if v.Array != nil {
		for _, el := range v.Array {
			if err := ctx.appendValue(parent, name, el); err != nil {
				return err
			}
		}
		return nil
	}

	child := parent.CreateElement(name)

	switch v.Type {
	case TypeClass:
		for _, pv := range v.Class {
			if err := ctx.appendProperty(child, pv); err != nil {
				return err
			}
		}
		return nil

	case TypeStrongPointer:
		p := v.AsPointer()
		if p.IsNull() {
			return nil
		}
		return ctx.inlinePointer(child, p)

	case TypeWeakPointer:
		p := v.AsPointer()
		if p.IsNull() {
			return nil
		}
		if id, ok := ctx.weakIDs[p]; ok {
			child.CreateAttr("PointsTo", fmt.Sprintf("ptr:%d", id))
		}
		return nil

	case TypeReference:
		ref := v.AsReference()
		if ref.IsNull() {
			return nil
		}
		rec, found := ctx.db.Record(ref.RecordID)
		if !found {
			child.CreateAttr("Reference", binreader.Identifier(ref.RecordID).String())
			return nil
		}
		if rec.FileNameOffset == ctx.originFile {
			return ctx.inlinePointer(child, Pointer{StructIndex: rec.StructIndex, InstanceIndex: int32(rec.InstanceIndex)})
		}
		child.CreateAttr("Href", ctx.relativeURI(ctx.db.RecordFileName(rec)))
		return nil

	case TypeGUID:
		child.SetText(binreader.Identifier(v.GUID()).String())
		return nil

	case TypeBoolean:
		child.SetText(strconv.FormatBool(v.Bool()))
		return nil

	case TypeSByte, TypeInt16, TypeInt32, TypeInt64:
		child.SetText(strconv.FormatInt(v.Int64(), 10))
		return nil

	case TypeByte, TypeUInt16, TypeUInt32, TypeUInt64:
		child.SetText(strconv.FormatUint(v.Uint64(), 10))
		return nil

	case TypeSingle, TypeDouble:
		child.SetText(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
		return nil

	case TypeString, TypeLocale, TypeEnumChoice:
		child.SetText(v.String())
		return nil

	default:
		child.SetText(fmt.Sprint(v.Raw))
		return nil
	}
}

// inlinePointer recurses into another instance (a strong pointer's
// target or a same-file reference's target), guarding against a cycle
// re-entering an instance currently being rendered on the same path.
func (ctx *exportContext) inlinePointer(el *etree.Element, p Pointer) error {
	if ctx.inlining[p] {
		el.CreateAttr("Cyclic", "true")
		return nil
	}
	ctx.inlining[p] = true
	err := ctx.populateInstance(el, p.StructIndex, p.InstanceIndex)
	delete(ctx.inlining, p)
	return err
}

// relativeURI builds the "file://./<up>/<path>" form of a cross-file
// reference: one "../" per "/" found in the exporting record's own
// file path, then the target path verbatim, with no separator
// normalization. Grounded on svarog-datacore's export/xml.rs
// compute_relative_path (see SPEC_FULL.md's supplemented features).
func (ctx *exportContext) relativeURI(targetPath string) string {
	up := strings.Count(ctx.currentPath, "/")
	return "file://./" + strings.Repeat("../", up) + targetPath
}

// sanitizeElementName maps a name into a well-formed XML element name:
// the first character must be a letter or underscore, the rest letters,
// digits, '_', '-', or '.'; any other byte becomes '_'. An empty result
// becomes "Element".
func sanitizeElementName(s string) string {
	if s == "" {
		return "Element"
	}
	var b strings.Builder
	for i, r := range s {
		var ok bool
		if i == 0 {
			ok = unicode.IsLetter(r) || r == '_'
		} else {
			ok = unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
		}
		if ok {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" {
		return "Element"
	}
	return out
}
