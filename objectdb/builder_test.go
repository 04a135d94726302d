package objectdb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildMinimalDatabase hand-assembles a tiny but complete object database
// file: one struct with no properties, one data mapping, one record, and
// both string tables populated, matching the exact field order Parse
// expects.
func buildMinimalDatabase(t *testing.T) []byte {
	t.Helper()

	table1 := []byte("widget.xml\x00")
	table2 := []byte("Widget\x00")
	instance := []byte{0xAA, 0xBB, 0xCC, 0xDD}

	var out []byte
	out = appendU32(out, 0) // unknown1
	out = appendU32(out, 6) // version
	out = appendU32(out, 0) // unknown2
	out = appendU32(out, 0) // unknown3

	out = appendI32(out, 1) // structDefCount
	out = appendI32(out, 0) // propertyDefCount
	out = appendI32(out, 0) // enumDefCount
	out = appendI32(out, 1) // dataMappingCount
	out = appendI32(out, 1) // recordDefCount

	for i := 0; i < 19; i++ {
		out = appendI32(out, 0) // every pool count is empty
	}

	out = appendU32(out, uint32(len(table1)))
	out = appendU32(out, uint32(len(table2)))

	// struct def: name offset 0 ("Widget"), no parent, no attrs
	out = appendI32(out, 0)
	out = appendI32(out, -1)
	out = appendU16(out, 0)
	out = appendU16(out, 0)
	out = appendU32(out, uint32(len(instance)))

	// data mapping: 1 instance of struct 0
	out = appendU32(out, 1)
	out = appendI32(out, 0)

	// record: name offset 0, file name offset 0, struct 0, id, instance 0
	out = appendI32(out, 0)
	out = appendI32(out, 0)
	out = appendI32(out, 0)
	id := [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	out = append(out, id[:]...)
	out = appendU16(out, 0)
	out = appendU16(out, uint16(len(instance)))

	// pools: all empty, nothing to write

	out = append(out, table1...)
	out = append(out, table2...)
	out = append(out, instance...)

	return out
}

func TestFromDatabaseBuildRoundTrip(t *testing.T) {
	original := buildMinimalDatabase(t)

	db, err := Parse(original, nil)
	require.NoError(t, err)
	require.Equal(t, uint32(6), db.Version())
	require.Len(t, db.StructDefinitions(), 1)
	require.Len(t, db.Records(), 1)

	b, err := FromDatabase(db)
	require.NoError(t, err)

	rebuilt, err := b.Build()
	require.NoError(t, err)

	require.Equal(t, original, rebuilt, "rebuilding an untouched database should reproduce it byte-for-byte")

	db2, err := Parse(rebuilt, nil)
	require.NoError(t, err)
	require.Equal(t, db.Version(), db2.Version())
	require.Equal(t, db.Records()[0].ID, db2.Records()[0].ID)
	require.Equal(t, db.StructDefinitions()[0].StructSize, db2.StructDefinitions()[0].StructSize)
}

func TestNewBuilderDefaultsToVersionSix(t *testing.T) {
	b := NewBuilder()
	require.Equal(t, uint32(6), b.version)
}

func TestFromDatabaseRejectsBadStructIndex(t *testing.T) {
	original := buildMinimalDatabase(t)
	db, err := Parse(original, nil)
	require.NoError(t, err)

	db.dataMappings[0].StructIndex = 99

	_, err = FromDatabase(db)
	require.Error(t, err)
	require.IsType(t, &BadStructIndexError{}, err)
}
