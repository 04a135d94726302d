package objectdb

import "fmt"

// String1 resolves a string-table-1 offset (file paths, interned
// primitive strings). Returns "" for a null id.
func (db *Database) String1(id StringID) string {
	if id.IsNull() {
		return ""
	}
	return db.strings1[int32(id)]
}

// String2 resolves a string-table-2 offset (type/property/enum/record
// names). Version 5 files alias this onto table 1. Returns "" for a
// null id.
func (db *Database) String2(id StringID2) string {
	if id.IsNull() {
		return ""
	}
	return db.strings2[int32(id)]
}

// StructName returns the name of the struct at index, or "" if out of
// range.
func (db *Database) StructName(index int32) string {
	if index < 0 || int(index) >= len(db.structDefs) {
		return ""
	}
	return db.String2(db.structDefs[index].NameOffset)
}

// EnumName returns the name of the enum at index, or "" if out of
// range.
func (db *Database) EnumName(index int32) string {
	if index < 0 || int(index) >= len(db.enumDefs) {
		return ""
	}
	return db.String2(db.enumDefs[index].NameOffset)
}

// PropertyName returns the name of a property definition.
func (db *Database) PropertyName(p PropertyDefinition) string { return db.String2(p.NameOffset) }

// RecordName returns a record's display name.
func (db *Database) RecordName(r Record) string { return db.String2(r.NameOffset) }

// RecordFileName returns the file path a record was sourced from.
func (db *Database) RecordFileName(r Record) string { return db.String1(r.FileNameOffset) }

// EnumOption returns the textual form of one of an enum's values, given
// its absolute index into the enum-option-id pool.
func (db *Database) EnumOption(index int) string {
	if index < 0 || index >= len(db.pools.enumOpts) {
		return ""
	}
	return db.String2(db.pools.enumOpts[index])
}

// EnumOptions returns every option name for the enum at enumIndex, in
// declared order.
func (db *Database) EnumOptions(enumIndex int32) []string {
	if enumIndex < 0 || int(enumIndex) >= len(db.enumDefs) {
		return nil
	}
	def := db.enumDefs[enumIndex]
	out := make([]string, def.ValueCount)
	for i := range out {
		out[i] = db.EnumOption(int(def.FirstValueIndex) + i)
	}
	return out
}

// Record looks up a record by its 16-byte id.
func (db *Database) Record(id [16]byte) (Record, bool) {
	idx, ok := db.recordsByID[id]
	if !ok {
		return Record{}, false
	}
	return db.records[idx], true
}

// RecordIndex returns the index of the record with the given id.
func (db *Database) RecordIndex(id [16]byte) (int, bool) {
	idx, ok := db.recordsByID[id]
	return idx, ok
}

// IsMainRecord reports whether recordIndex is the canonical record for
// its source file (the first record encountered in file order sharing
// that file-name offset).
func (db *Database) IsMainRecord(recordIndex int) bool {
	if recordIndex < 0 || recordIndex >= len(db.records) {
		return false
	}
	main, ok := db.mainRecords[int32(db.records[recordIndex].FileNameOffset)]
	return ok && main == recordIndex
}

// MainRecords returns the index of every canonical (main) record.
func (db *Database) MainRecords() []int {
	out := make([]int, 0, len(db.mainRecords))
	for _, idx := range db.mainRecords {
		out = append(out, idx)
	}
	return out
}

// getStructProperties flattens the property list for structIndex,
// walking from the struct up through its parent chain and prepending
// each ancestor's properties, so the result is ordered parent-first
// with the struct's own properties last. Grounded on svarog-datacore's
// database.rs get_struct_properties.
func (db *Database) getStructProperties(structIndex int32) ([]PropertyDefinition, error) {
	var result []PropertyDefinition
	current := structIndex
	for current >= 0 {
		if int(current) >= len(db.structDefs) {
			return nil, &BadStructIndexError{Index: int(current)}
		}
		def := db.structDefs[current]
		own := make([]PropertyDefinition, 0, def.AttributeCount)
		for i := 0; i < int(def.AttributeCount); i++ {
			idx := int(def.FirstAttrIndex) + i
			if idx < 0 || idx >= len(db.propertyDefs) {
				return nil, &BadStructIndexError{Index: idx}
			}
			own = append(own, db.propertyDefs[idx])
		}
		result = append(own, result...)
		current = def.ParentTypeIndex
	}
	return result, nil
}

// getInstanceReader slices out the struct_size bytes belonging to one
// instance of structIndex, computed from the precomputed struct
// offsets. Grounded on svarog-datacore's database.rs get_instance_reader.
func (db *Database) getInstanceReader(structIndex int32, instanceIndex int32) ([]byte, error) {
	if structIndex < 0 || int(structIndex) >= len(db.structDefs) {
		return nil, &BadStructIndexError{Index: int(structIndex)}
	}
	size := int(db.structDefs[structIndex].StructSize)
	base := db.structOffsets[structIndex] + size*int(instanceIndex)
	if base < 0 || base+size > len(db.data) {
		return nil, &binreaderEOF{Needed: size, Available: len(db.data) - base}
	}
	return db.data[base : base+size], nil
}

// binreaderEOF mirrors binreader's bounds-check error for slicing done
// directly against the file buffer (outside a Cursor, since the slice
// itself becomes a fresh Cursor for instance decoding).
type binreaderEOF struct {
	Needed    int
	Available int
}

func (e *binreaderEOF) Error() string {
	return fmt.Sprintf("instance slice out of range: needed %d bytes, %d available", e.Needed, e.Available)
}
