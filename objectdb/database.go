package objectdb

import (
	"github.com/nullsector/assetkit/internal/assetlog"
	"github.com/nullsector/assetkit/internal/binreader"
)

// Options configures Parse. A nil *Options applies the defaults: no
// logging.
type Options struct {
	Logger *assetlog.Helper
}

func (o *Options) orDefault() *Options {
	if o == nil {
		return &Options{}
	}
	return o
}

// Database is a parsed, immutable view over a columnar object database
// file. All accessor methods borrow from the byte region handed to
// Parse; the caller must keep it alive for the Database's lifetime.
// Grounded on svarog-datacore's database.rs DataCoreDatabase.
type Database struct {
	data    []byte
	log     *assetlog.Helper
	version uint32

	unknown1 uint32
	unknown2 uint32
	unknown3 uint32

	structDefs    []StructDefinition
	propertyDefs  []PropertyDefinition
	enumDefs      []EnumDefinition
	dataMappings  []DataMapping
	records       []Record
	pools         pools

	stringTable1 []byte
	stringTable2 []byte
	strings1     map[int32]string
	strings2     map[int32]string

	structOffsets     []int
	dataSectionOffset int

	recordsByID map[[16]byte]int
	mainRecords map[int32]int // file-name-offset id -> canonical record index
}

// Version reports the file's declared format version (5 or 6).
func (db *Database) Version() uint32 { return db.version }

// StructDefinitions returns every struct definition in file order.
func (db *Database) StructDefinitions() []StructDefinition { return db.structDefs }

// PropertyDefinitions returns every property definition in file order.
func (db *Database) PropertyDefinitions() []PropertyDefinition { return db.propertyDefs }

// EnumDefinitions returns every enum definition in file order.
func (db *Database) EnumDefinitions() []EnumDefinition { return db.enumDefs }

// Records returns every record in file order.
func (db *Database) Records() []Record { return db.records }

// Parse reads a complete object database from data, validating the
// version and computing the offset tables accessors need. Grounded on
// svarog-datacore's database.rs parse/parse_internal.
func Parse(data []byte, opts *Options) (*Database, error) {
	opts = opts.orDefault()
	c := binreader.NewCursor(data)

	h, err := readHeader(c)
	if err != nil {
		return nil, err
	}
	if h.version != 5 && h.version != 6 {
		return nil, &UnsupportedVersionError{Version: h.version}
	}

	db := &Database{
		data:     data,
		log:      opts.Logger,
		version:  h.version,
		unknown1: h.unknown1,
		unknown2: h.unknown2,
		unknown3: h.unknown3,
	}

	if db.structDefs, err = readStructDefs(c, int(h.structDefCount)); err != nil {
		return nil, err
	}
	if db.propertyDefs, err = readPropertyDefs(c, int(h.propertyDefCount)); err != nil {
		return nil, err
	}
	if db.enumDefs, err = readEnumDefs(c, int(h.enumDefCount)); err != nil {
		return nil, err
	}
	if db.dataMappings, err = readDataMappings(c, int(h.dataMappingCount)); err != nil {
		return nil, err
	}
	if db.records, err = readRecords(c, int(h.recordDefCount)); err != nil {
		return nil, err
	}

	if db.pools, err = readPools(c, h); err != nil {
		return nil, err
	}

	table1, err := c.ReadBytes(int(h.textLength1))
	if err != nil {
		return nil, err
	}
	db.stringTable1 = table1

	if h.version >= 6 {
		table2, err := c.ReadBytes(int(h.textLength2))
		if err != nil {
			return nil, err
		}
		db.stringTable2 = table2
	} else {
		db.stringTable2 = db.stringTable1
	}

	db.strings1 = buildStringCache(db.stringTable1)
	if h.version >= 6 {
		db.strings2 = buildStringCache(db.stringTable2)
	} else {
		db.strings2 = db.strings1
	}

	db.dataSectionOffset = c.Pos()
	db.structOffsets = computeStructOffsets(db.structDefs, db.dataMappings, db.dataSectionOffset)

	db.recordsByID = make(map[[16]byte]int, len(db.records))
	for i, r := range db.records {
		db.recordsByID[r.ID] = i
	}
	db.mainRecords = computeMainRecords(db.records)

	return db, nil
}

func readHeader(c *binreader.Cursor) (header, error) {
	var h header
	var err error

	fields := []*uint32{&h.unknown1, &h.version, &h.unknown2, &h.unknown3}
	for _, f := range fields {
		if *f, err = c.ReadU32(); err != nil {
			return h, err
		}
	}

	i32fields := []*int32{
		&h.structDefCount, &h.propertyDefCount, &h.enumDefCount, &h.dataMappingCount, &h.recordDefCount,
		&h.boolCount, &h.int8Count, &h.int16Count, &h.int32Count, &h.int64Count,
		&h.uint8Count, &h.uint16Count, &h.uint32Count, &h.uint64Count,
		&h.floatCount, &h.doubleCount, &h.guidCount, &h.stringIDCount, &h.localeCount,
		&h.enumValueCount, &h.strongCount, &h.weakCount, &h.referenceCount, &h.enumOptionCount,
	}
	for _, f := range i32fields {
		if *f, err = c.ReadI32(); err != nil {
			return h, err
		}
	}

	if h.textLength1, err = c.ReadU32(); err != nil {
		return h, err
	}
	if h.textLength2, err = c.ReadU32(); err != nil {
		return h, err
	}

	return h, nil
}

func readStructDefs(c *binreader.Cursor, n int) ([]StructDefinition, error) {
	out := make([]StructDefinition, n)
	for i := range out {
		nameOff, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		parent, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		attrCount, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		firstAttr, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		size, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		out[i] = StructDefinition{
			NameOffset:      StringID2(nameOff),
			ParentTypeIndex: parent,
			AttributeCount:  attrCount,
			FirstAttrIndex:  firstAttr,
			StructSize:      size,
		}
	}
	return out, nil
}

func readPropertyDefs(c *binreader.Cursor, n int) ([]PropertyDefinition, error) {
	out := make([]PropertyDefinition, n)
	for i := range out {
		nameOff, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		structIndex, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		dataTypeRaw, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		conversion, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		if _, err := c.ReadU16(); err != nil { // padding
			return nil, err
		}
		dt, err := parseDataType(dataTypeRaw)
		if err != nil {
			return nil, err
		}
		out[i] = PropertyDefinition{
			NameOffset:     StringID2(nameOff),
			StructIndex:    structIndex,
			DataType:       dt,
			ConversionType: conversion,
		}
	}
	return out, nil
}

func readEnumDefs(c *binreader.Cursor, n int) ([]EnumDefinition, error) {
	out := make([]EnumDefinition, n)
	for i := range out {
		nameOff, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		valueCount, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		firstValue, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		out[i] = EnumDefinition{
			NameOffset:      StringID2(nameOff),
			ValueCount:      valueCount,
			FirstValueIndex: firstValue,
		}
	}
	return out, nil
}

func readDataMappings(c *binreader.Cursor, n int) ([]DataMapping, error) {
	out := make([]DataMapping, n)
	for i := range out {
		count, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		idx, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = DataMapping{StructCount: count, StructIndex: idx}
	}
	return out, nil
}

func readRecords(c *binreader.Cursor, n int) ([]Record, error) {
	out := make([]Record, n)
	for i := range out {
		nameOff, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		fileNameOff, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		structIndex, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		idBytes, err := c.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		instanceIndex, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		structSize, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		var id [16]byte
		copy(id[:], idBytes)
		out[i] = Record{
			NameOffset:     StringID2(nameOff),
			FileNameOffset: StringID(fileNameOff),
			StructIndex:    structIndex,
			ID:             id,
			InstanceIndex:  instanceIndex,
			StructSize:     structSize,
		}
	}
	return out, nil
}

// buildStringCache scans a NUL-terminated string table once, recording
// every run's starting offset and decoded text so repeated lookups by
// offset don't rescan.
func buildStringCache(table []byte) map[int32]string {
	cache := make(map[int32]string)
	start := 0
	for start < len(table) {
		idx := binreader.IndexByte(table[start:], 0)
		if idx < 0 {
			break
		}
		cache[int32(start)] = string(table[start : start+idx])
		start += idx + 1
	}
	return cache
}

// computeStructOffsets walks the data-mapping list in order, assigning
// each struct index the absolute file offset where its instance block
// begins. Grounded on svarog-datacore's compute_struct_offsets_fast.
func computeStructOffsets(structDefs []StructDefinition, mappings []DataMapping, dataSectionOffset int) []int {
	offsets := make([]int, len(structDefs))
	current := dataSectionOffset
	for _, m := range mappings {
		if m.StructIndex >= 0 && int(m.StructIndex) < len(offsets) {
			offsets[m.StructIndex] = current
			current += int(structDefs[m.StructIndex].StructSize) * int(m.StructCount)
		}
	}
	return offsets
}

// computeMainRecords builds the "one record per file" map: the first
// record encountered in file order for a given file-name offset is
// canonical. Grounded on svarog-datacore's compute_main_records_fast.
func computeMainRecords(records []Record) map[int32]int {
	seen := make(map[int32]int)
	for i, r := range records {
		key := int32(r.FileNameOffset)
		if _, ok := seen[key]; !ok {
			seen[key] = i
		}
	}
	return seen
}
