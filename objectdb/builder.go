package objectdb

import "github.com/nullsector/assetkit/internal/binreader"

// Builder assembles a complete object database byte stream from a set of
// definitions, pools, and instance blocks. It is owned by a single
// producer: nothing here is safe to share across goroutines while being
// mutated. Grounded on svarog-datacore's builder.rs DataCoreBuilder.
type Builder struct {
	version  uint32
	unknown1 uint32
	unknown2 uint32
	unknown3 uint32

	structDefs   []StructDefinition
	propertyDefs []PropertyDefinition
	enumDefs     []EnumDefinition
	dataMappings []DataMapping
	records      []Record
	pools        pools

	stringTable1 []byte
	stringTable2 []byte

	// instanceBlocks[i] holds the raw instance bytes for dataMappings[i],
	// exactly StructCount*StructSize bytes for that mapping's struct.
	instanceBlocks [][]byte
}

// NewBuilder returns an empty builder for version 6, the format the
// reference encoder currently writes.
func NewBuilder() *Builder {
	return &Builder{version: 6}
}

// FromDatabase seeds a Builder with everything a parsed Database holds,
// so Build can reproduce it byte-for-byte when nothing is changed.
// Instance bytes are copied verbatim from the source rather than
// re-serialized property-by-property, since the wire layout inside a
// struct's instance block is exactly what was parsed out of it.
// Grounded on svarog-datacore's builder.rs DataCoreBuilder::from_database.
func FromDatabase(db *Database) (*Builder, error) {
	b := &Builder{
		version:      db.version,
		unknown1:     db.unknown1,
		unknown2:     db.unknown2,
		unknown3:     db.unknown3,
		structDefs:   append([]StructDefinition(nil), db.structDefs...),
		propertyDefs: append([]PropertyDefinition(nil), db.propertyDefs...),
		enumDefs:     append([]EnumDefinition(nil), db.enumDefs...),
		dataMappings: append([]DataMapping(nil), db.dataMappings...),
		records:      append([]Record(nil), db.records...),
		pools:        copyPools(db.pools),
		stringTable1: append([]byte(nil), db.stringTable1...),
	}
	if db.version >= 6 {
		b.stringTable2 = append([]byte(nil), db.stringTable2...)
	}

	current := db.dataSectionOffset
	b.instanceBlocks = make([][]byte, len(db.dataMappings))
	for i, m := range db.dataMappings {
		if m.StructIndex < 0 || int(m.StructIndex) >= len(db.structDefs) {
			return nil, &BadStructIndexError{Index: int(m.StructIndex)}
		}
		size := int(db.structDefs[m.StructIndex].StructSize) * int(m.StructCount)
		if current+size > len(db.data) {
			return nil, &ExportError{Reason: "instance block runs past end of file"}
		}
		b.instanceBlocks[i] = append([]byte(nil), db.data[current:current+size]...)
		current += size
	}

	return b, nil
}

func copyPools(p pools) pools {
	return pools{
		bools:     append([]bool(nil), p.bools...),
		int8s:     append([]int8(nil), p.int8s...),
		int16s:    append([]int16(nil), p.int16s...),
		int32s:    append([]int32(nil), p.int32s...),
		int64s:    append([]int64(nil), p.int64s...),
		uint8s:    append([]uint8(nil), p.uint8s...),
		uint16s:   append([]uint16(nil), p.uint16s...),
		uint32s:   append([]uint32(nil), p.uint32s...),
		uint64s:   append([]uint64(nil), p.uint64s...),
		floats:    append([]float32(nil), p.floats...),
		doubles:   append([]float64(nil), p.doubles...),
		guids:     append([][16]byte(nil), p.guids...),
		stringIDs: append([]StringID(nil), p.stringIDs...),
		locales:   append([]StringID(nil), p.locales...),
		enumVals:  append([]StringID(nil), p.enumVals...),
		strongs:   append([]Pointer(nil), p.strongs...),
		weaks:     append([]Pointer(nil), p.weaks...),
		refs:      append([]Reference(nil), p.refs...),
		enumOpts:  append([]StringID2(nil), p.enumOpts...),
	}
}

// Build serializes the builder's current state into a complete object
// database byte stream: header, definitions, pools in file order, both
// string tables, then instance blocks in data-mapping order. Grounded on
// svarog-datacore's builder.rs DataCoreBuilder::write_to.
func (b *Builder) Build() ([]byte, error) {
	instanceSize := 0
	for _, blk := range b.instanceBlocks {
		instanceSize += len(blk)
	}

	out := make([]byte, 0, 128+len(b.stringTable1)+len(b.stringTable2)+instanceSize)

	out = appendU32(out, b.unknown1)
	out = appendU32(out, b.version)
	out = appendU32(out, b.unknown2)
	out = appendU32(out, b.unknown3)

	out = appendI32(out, int32(len(b.structDefs)))
	out = appendI32(out, int32(len(b.propertyDefs)))
	out = appendI32(out, int32(len(b.enumDefs)))
	out = appendI32(out, int32(len(b.dataMappings)))
	out = appendI32(out, int32(len(b.records)))

	out = appendI32(out, int32(len(b.pools.bools)))
	out = appendI32(out, int32(len(b.pools.int8s)))
	out = appendI32(out, int32(len(b.pools.int16s)))
	out = appendI32(out, int32(len(b.pools.int32s)))
	out = appendI32(out, int32(len(b.pools.int64s)))
	out = appendI32(out, int32(len(b.pools.uint8s)))
	out = appendI32(out, int32(len(b.pools.uint16s)))
	out = appendI32(out, int32(len(b.pools.uint32s)))
	out = appendI32(out, int32(len(b.pools.uint64s)))
	out = appendI32(out, int32(len(b.pools.floats)))
	out = appendI32(out, int32(len(b.pools.doubles)))
	out = appendI32(out, int32(len(b.pools.guids)))
	out = appendI32(out, int32(len(b.pools.stringIDs)))
	out = appendI32(out, int32(len(b.pools.locales)))
	out = appendI32(out, int32(len(b.pools.enumVals)))
	out = appendI32(out, int32(len(b.pools.strongs)))
	out = appendI32(out, int32(len(b.pools.weaks)))
	out = appendI32(out, int32(len(b.pools.refs)))
	out = appendI32(out, int32(len(b.pools.enumOpts)))

	out = appendU32(out, uint32(len(b.stringTable1)))
	if b.version >= 6 {
		out = appendU32(out, uint32(len(b.stringTable2)))
	} else {
		out = appendU32(out, 0)
	}

	for _, d := range b.structDefs {
		out = appendI32(out, int32(d.NameOffset))
		out = appendI32(out, d.ParentTypeIndex)
		out = appendU16(out, d.AttributeCount)
		out = appendU16(out, d.FirstAttrIndex)
		out = appendU32(out, d.StructSize)
	}
	for _, d := range b.propertyDefs {
		out = appendI32(out, int32(d.NameOffset))
		out = appendU16(out, d.StructIndex)
		out = appendU16(out, uint16(d.DataType))
		out = appendU16(out, d.ConversionType)
		out = appendU16(out, 0) // padding
	}
	for _, d := range b.enumDefs {
		out = appendI32(out, int32(d.NameOffset))
		out = appendU16(out, d.ValueCount)
		out = appendU16(out, d.FirstValueIndex)
	}
	for _, m := range b.dataMappings {
		out = appendU32(out, m.StructCount)
		out = appendI32(out, m.StructIndex)
	}
	for _, r := range b.records {
		out = appendI32(out, int32(r.NameOffset))
		out = appendI32(out, int32(r.FileNameOffset))
		out = appendI32(out, r.StructIndex)
		out = append(out, r.ID[:]...)
		out = appendU16(out, r.InstanceIndex)
		out = appendU16(out, r.StructSize)
	}

	out = writeI8Pool(out, b.pools.int8s)
	out = writeI16Pool(out, b.pools.int16s)
	out = writeI32Pool(out, b.pools.int32s)
	out = writeI64Pool(out, b.pools.int64s)
	out = writeU8Pool(out, b.pools.uint8s)
	out = writeU16Pool(out, b.pools.uint16s)
	out = writeU32Pool(out, b.pools.uint32s)
	out = writeU64Pool(out, b.pools.uint64s)
	out = writeBoolPool(out, b.pools.bools)
	out = writeFloatPool(out, b.pools.floats)
	out = writeDoublePool(out, b.pools.doubles)
	out = writeGUIDPool(out, b.pools.guids)
	out = writeStringIDPool(out, b.pools.stringIDs)
	out = writeStringIDPool(out, b.pools.locales)
	out = writeStringIDPool(out, b.pools.enumVals)
	out = writePointerPool(out, b.pools.strongs)
	out = writePointerPool(out, b.pools.weaks)
	out = writeReferencePool(out, b.pools.refs)
	out = writeStringID2Pool(out, b.pools.enumOpts)

	out = append(out, b.stringTable1...)
	if b.version >= 6 {
		out = append(out, b.stringTable2...)
	}

	for _, blk := range b.instanceBlocks {
		out = append(out, blk...)
	}

	return out, nil
}

func appendU32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendI32(b []byte, v int32) []byte { return appendU32(b, uint32(v)) }

func appendU16(b []byte, v uint16) []byte { return append(b, byte(v), byte(v>>8)) }

func appendU64(b []byte, v uint64) []byte {
	return append(b,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

func appendI64(b []byte, v int64) []byte { return appendU64(b, uint64(v)) }

func appendF32(b []byte, v float32) []byte {
	return appendU32(b, binreader.Float32Bits(v))
}

func appendF64(b []byte, v float64) []byte {
	return appendU64(b, binreader.Float64Bits(v))
}

func writeI8Pool(out []byte, vals []int8) []byte {
	for _, v := range vals {
		out = append(out, byte(v))
	}
	return out
}

func writeI16Pool(out []byte, vals []int16) []byte {
	for _, v := range vals {
		out = appendU16(out, uint16(v))
	}
	return out
}

func writeI32Pool(out []byte, vals []int32) []byte {
	for _, v := range vals {
		out = appendI32(out, v)
	}
	return out
}

func writeI64Pool(out []byte, vals []int64) []byte {
	for _, v := range vals {
		out = appendI64(out, v)
	}
	return out
}

func writeU8Pool(out []byte, vals []uint8) []byte {
	return append(out, vals...)
}

func writeU16Pool(out []byte, vals []uint16) []byte {
	for _, v := range vals {
		out = appendU16(out, v)
	}
	return out
}

func writeU32Pool(out []byte, vals []uint32) []byte {
	for _, v := range vals {
		out = appendU32(out, v)
	}
	return out
}

func writeU64Pool(out []byte, vals []uint64) []byte {
	for _, v := range vals {
		out = appendU64(out, v)
	}
	return out
}

func writeBoolPool(out []byte, vals []bool) []byte {
	for _, v := range vals {
		if v {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
	}
	return out
}

func writeFloatPool(out []byte, vals []float32) []byte {
	for _, v := range vals {
		out = appendF32(out, v)
	}
	return out
}

func writeDoublePool(out []byte, vals []float64) []byte {
	for _, v := range vals {
		out = appendF64(out, v)
	}
	return out
}

func writeGUIDPool(out []byte, vals [][16]byte) []byte {
	for _, v := range vals {
		out = append(out, v[:]...)
	}
	return out
}

func writeStringIDPool(out []byte, vals []StringID) []byte {
	for _, v := range vals {
		out = appendI32(out, int32(v))
	}
	return out
}

func writeStringID2Pool(out []byte, vals []StringID2) []byte {
	for _, v := range vals {
		out = appendI32(out, int32(v))
	}
	return out
}

func writePointerPool(out []byte, vals []Pointer) []byte {
	for _, v := range vals {
		out = appendI32(out, v.StructIndex)
		out = appendI32(out, v.InstanceIndex)
	}
	return out
}

func writeReferencePool(out []byte, vals []Reference) []byte {
	for _, v := range vals {
		out = append(out, v.RecordID[:]...)
		out = appendI32(out, v.InstanceIndex)
	}
	return out
}
