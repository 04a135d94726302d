package objectdb

import "fmt"

// UnsupportedVersionError is returned when the header's version field is
// neither 5 nor 6.
type UnsupportedVersionError struct {
	Version uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported object database version: %d (want 5 or 6)", e.Version)
}

// StringOffsetOutOfRangeError describes a string id that resolves
// outside its table, or doesn't land on a NUL-terminated run. String1
// and String2 do not return it: they resolve such an id to "".
type StringOffsetOutOfRangeError struct {
	Table  int
	Offset int32
}

func (e *StringOffsetOutOfRangeError) Error() string {
	return fmt.Sprintf("string offset %d out of range for table %d", e.Offset, e.Table)
}

// BadStructIndexError is returned when a struct index from a record,
// property, or pointer falls outside the parsed struct-definition array.
type BadStructIndexError struct {
	Index int
}

func (e *BadStructIndexError) Error() string {
	return fmt.Sprintf("bad struct index: %d", e.Index)
}

// RecordNotFoundError describes a failed lookup by id or name. Record,
// RecordIndex and Query.First do not return it: they report a miss with
// a false second result.
type RecordNotFoundError struct {
	ID   string
	Name string
}

func (e *RecordNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("record not found: %s", e.Name)
	}
	return fmt.Sprintf("record not found: id %s", e.ID)
}

// InvalidDataTypeError is returned for a property or value pool tag not
// in the known DataType set.
type InvalidDataTypeError struct {
	Tag uint16
}

func (e *InvalidDataTypeError) Error() string {
	return fmt.Sprintf("invalid data type tag: %#06x", e.Tag)
}

// ExportError wraps a failure encountered while walking a record for
// textual export (a dangling pointer, an unresolvable reference).
type ExportError struct {
	Reason string
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error: %s", e.Reason)
}

// PropertyNotFoundError is returned by a direct name lookup that doesn't
// match any property on the struct.
type PropertyNotFoundError struct {
	StructName   string
	PropertyName string
}

func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("property %q not found on struct %q", e.PropertyName, e.StructName)
}
