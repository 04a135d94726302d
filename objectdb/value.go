package objectdb

// Value is a decoded property value. Exactly one of its fields is
// meaningful, selected by Type: Raw holds the native Go representation
// for every scalar kind (bool, int8/16/32/64, uint8/16/32/64, float32/64,
// string for String/Locale/EnumChoice, [16]byte for Guid, Pointer for
// Strong/WeakPointer, Reference for Reference); Class/ClassStructIndex
// are populated instead when Type is Class; Array holds decoded elements
// when the originating property is an array (Type names the element
// kind in that case).
type Value struct {
	Type             DataType
	Raw              interface{}
	ClassStructIndex int32
	Class            []PropertyValue
	Array            []Value
}

// PropertyValue pairs a decoded value with the property definition and
// resolved name it came from.
type PropertyValue struct {
	Def   PropertyDefinition
	Name  string
	Value Value
}

// Bool returns Raw as a bool, or false if Type isn't Boolean.
func (v Value) Bool() bool { b, _ := v.Raw.(bool); return b }

// Int64 widens any signed integer scalar (SByte/Int16/Int32/Int64) to
// int64; zero for any other type.
func (v Value) Int64() int64 {
	switch x := v.Raw.(type) {
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	default:
		return 0
	}
}

// Uint64 widens any unsigned integer scalar (Byte/UInt16/UInt32/UInt64)
// to uint64; zero for any other type.
func (v Value) Uint64() uint64 {
	switch x := v.Raw.(type) {
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	default:
		return 0
	}
}

// Float64 widens Single/Double to float64; zero for any other type.
func (v Value) Float64() float64 {
	switch x := v.Raw.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}

// String returns Raw as a string for String/Locale/EnumChoice values.
func (v Value) String() string { s, _ := v.Raw.(string); return s }

// GUID returns Raw as a 16-byte id.
func (v Value) GUID() [16]byte { g, _ := v.Raw.([16]byte); return g }

// AsPointer returns Raw as a Pointer for StrongPointer/WeakPointer values.
func (v Value) AsPointer() Pointer { p, _ := v.Raw.(Pointer); return p }

// AsReference returns Raw as a Reference for Reference values.
func (v Value) AsReference() Reference { r, _ := v.Raw.(Reference); return r }
