// Package objectdb implements the columnar object database (C2): schema
// definitions, 19 typed value pools, two interned string tables, and
// per-struct instance blocks laid out in data-mapping order. Grounded on
// svarog-datacore's types.rs/database.rs/instance.rs/query.rs/builder.rs
// and export/{walker,xml}.rs.
package objectdb

import "fmt"

// DataType identifies the shape of a property or pool value. Grounded on
// svarog-datacore's types.rs DataType enum.
type DataType uint16

const (
	TypeBoolean       DataType = 0x0001
	TypeSByte         DataType = 0x0002
	TypeInt16         DataType = 0x0003
	TypeInt32         DataType = 0x0004
	TypeInt64         DataType = 0x0005
	TypeByte          DataType = 0x0006
	TypeUInt16        DataType = 0x0007
	TypeUInt32        DataType = 0x0008
	TypeUInt64        DataType = 0x0009
	TypeString        DataType = 0x000A
	TypeSingle        DataType = 0x000B
	TypeDouble        DataType = 0x000C
	TypeLocale        DataType = 0x000D
	TypeGUID          DataType = 0x000E
	TypeEnumChoice    DataType = 0x000F
	TypeClass         DataType = 0x0010
	TypeStrongPointer DataType = 0x0110
	TypeWeakPointer   DataType = 0x0210
	TypeReference     DataType = 0x0310
)

// parseDataType validates a raw tag against the known set.
func parseDataType(raw uint16) (DataType, error) {
	switch DataType(raw) {
	case TypeBoolean, TypeSByte, TypeInt16, TypeInt32, TypeInt64, TypeByte, TypeUInt16,
		TypeUInt32, TypeUInt64, TypeString, TypeSingle, TypeDouble, TypeLocale, TypeGUID,
		TypeEnumChoice, TypeClass, TypeStrongPointer, TypeWeakPointer, TypeReference:
		return DataType(raw), nil
	default:
		return 0, &InvalidDataTypeError{Tag: raw}
	}
}

// InlineSize returns the number of bytes a scalar property of this type
// occupies inline within an instance (0 for Class, whose size is the
// target struct's declared size, not a fixed constant).
func (t DataType) InlineSize() int {
	switch t {
	case TypeBoolean, TypeSByte, TypeByte:
		return 1
	case TypeInt16, TypeUInt16:
		return 2
	case TypeInt32, TypeUInt32, TypeSingle, TypeString, TypeLocale, TypeEnumChoice:
		return 4
	case TypeInt64, TypeUInt64, TypeDouble:
		return 8
	case TypeGUID:
		return 16
	case TypeClass:
		return 0
	case TypeStrongPointer, TypeWeakPointer:
		return 8
	case TypeReference:
		return 20
	default:
		return 0
	}
}

// IsPrimitive reports whether t is a scalar value with no nested schema
// (everything except Class, the pointer kinds, and Reference).
func (t DataType) IsPrimitive() bool {
	switch t {
	case TypeClass, TypeStrongPointer, TypeWeakPointer, TypeReference:
		return false
	default:
		return true
	}
}

// IsReference reports whether t is one of the pointer/reference kinds
// that link to another instance or record.
func (t DataType) IsReference() bool {
	switch t {
	case TypeStrongPointer, TypeWeakPointer, TypeReference:
		return true
	default:
		return false
	}
}

func (t DataType) String() string {
	switch t {
	case TypeBoolean:
		return "Boolean"
	case TypeSByte:
		return "SByte"
	case TypeInt16:
		return "Int16"
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeByte:
		return "Byte"
	case TypeUInt16:
		return "UInt16"
	case TypeUInt32:
		return "UInt32"
	case TypeUInt64:
		return "UInt64"
	case TypeString:
		return "String"
	case TypeSingle:
		return "Single"
	case TypeDouble:
		return "Double"
	case TypeLocale:
		return "Locale"
	case TypeGUID:
		return "Guid"
	case TypeEnumChoice:
		return "EnumChoice"
	case TypeClass:
		return "Class"
	case TypeStrongPointer:
		return "StrongPointer"
	case TypeWeakPointer:
		return "WeakPointer"
	case TypeReference:
		return "Reference"
	default:
		return fmt.Sprintf("DataType(%#06x)", uint16(t))
	}
}

// StringID is an offset into string table 1 (file paths, interned
// primitive strings). Negative means null.
type StringID int32

// IsNull reports whether the id points at nothing.
func (id StringID) IsNull() bool { return id < 0 }

// StringID2 is an offset into string table 2 (type/property/enum/record
// names). Version 5 files reuse table 1 for this role. Negative means
// null.
type StringID2 int32

// IsNull reports whether the id points at nothing.
func (id StringID2) IsNull() bool { return id < 0 }

// Pointer is a (struct index, instance index) pair used by both the
// strong and weak pointer pools. It is null if either field is -1.
type Pointer struct {
	StructIndex   int32
	InstanceIndex int32
}

// IsNull reports whether the pointer targets nothing.
func (p Pointer) IsNull() bool { return p.StructIndex < 0 || p.InstanceIndex < 0 }

// Reference targets a record by id, optionally with an instance index
// whose purpose is undocumented upstream (possibly legacy). Null if
// RecordID is the all-zero GUID.
type Reference struct {
	RecordID      [16]byte
	InstanceIndex int32
}

// IsNull reports whether the reference targets nothing.
func (r Reference) IsNull() bool {
	for _, b := range r.RecordID {
		if b != 0 {
			return false
		}
	}
	return true
}
