package objectdb

// header mirrors the 30 little-endian fields at the start of the file,
// in exactly the order they're written (count-order, distinct from the
// pools' file-order below). Grounded on svarog-datacore's database.rs
// parse_internal.
type header struct {
	unknown1 uint32
	version  uint32
	unknown2 uint32
	unknown3 uint32

	structDefCount   int32
	propertyDefCount int32
	enumDefCount     int32
	dataMappingCount int32
	recordDefCount   int32

	boolCount        int32
	int8Count        int32
	int16Count       int32
	int32Count       int32
	int64Count       int32
	uint8Count       int32
	uint16Count      int32
	uint32Count      int32
	uint64Count      int32
	floatCount       int32
	doubleCount      int32
	guidCount        int32
	stringIDCount    int32
	localeCount      int32
	enumValueCount   int32
	strongCount      int32
	weakCount        int32
	referenceCount   int32
	enumOptionCount  int32

	textLength1 uint32
	textLength2 uint32
}

// StructDefinition describes one concrete or abstract struct type.
// Grounded on svarog-datacore's structs/definition.rs DataCoreStructDefinition.
type StructDefinition struct {
	NameOffset       StringID2
	ParentTypeIndex  int32 // -1 if none
	AttributeCount   uint16
	FirstAttrIndex   uint16
	StructSize       uint32
}

// HasParent reports whether this struct inherits from another.
func (d StructDefinition) HasParent() bool { return d.ParentTypeIndex >= 0 }

// PropertyDefinition describes one field of a struct. Grounded on
// svarog-datacore's structs/property.rs DataCorePropertyDefinition.
type PropertyDefinition struct {
	NameOffset      StringID2
	StructIndex     uint16 // meaningful for Class/StrongPointer/WeakPointer
	DataType        DataType
	ConversionType  uint16 // 0 = scalar, non-zero = array
}

// IsArray reports whether this property is an array (count+first-index
// header) rather than an inline scalar value.
func (d PropertyDefinition) IsArray() bool { return d.ConversionType != 0 }

// EnumDefinition describes one enum type and the range of its options
// in the enum-option-id pool.
type EnumDefinition struct {
	NameOffset     StringID2
	ValueCount     uint16
	FirstValueIndex uint16
}

// DataMapping gives the layout order of instance blocks: struct-index s
// has struct_count instances occupying the next struct_count*struct_size
// bytes of the instance section.
type DataMapping struct {
	StructCount uint32
	StructIndex int32
}

// Record names one concrete instance as an addressable, identified
// object. Grounded on svarog-datacore's structs/record.rs DataCoreRecord.
type Record struct {
	NameOffset     StringID2
	FileNameOffset StringID
	StructIndex    int32
	ID             [16]byte
	InstanceIndex  uint16
	StructSize     uint16 // redundant with the struct's own declared size
}

// pools holds all 19 typed value pools, decoded into Go-native slices
// rather than kept as raw bytes behind an unsafe cast — idiomatic Go
// favors an explicit typed copy over a zero-copy struct reinterpretation.
type pools struct {
	bools     []bool
	int8s     []int8
	int16s    []int16
	int32s    []int32
	int64s    []int64
	uint8s    []uint8
	uint16s   []uint16
	uint32s   []uint32
	uint64s   []uint64
	floats    []float32
	doubles   []float64
	guids     [][16]byte
	stringIDs []StringID
	locales   []StringID
	enumVals  []StringID
	strongs   []Pointer
	weaks     []Pointer
	refs      []Reference
	enumOpts  []StringID2
}
