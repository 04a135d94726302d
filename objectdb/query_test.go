package objectdb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildTwoRecordDatabase builds two structs ("Widget", "Gadget"), each
// with one zero-length instance, so Query filters have more than one
// record to discriminate between.
func buildTwoRecordDatabase(t *testing.T) []byte {
	t.Helper()

	table1 := []byte("widget.xml\x00gadget.xml\x00")
	table2 := []byte("Widget\x00Gadget\x00")

	var out []byte
	out = appendU32(out, 0) // unknown1
	out = appendU32(out, 6) // version
	out = appendU32(out, 0) // unknown2
	out = appendU32(out, 0) // unknown3

	out = appendI32(out, 2) // structDefCount
	out = appendI32(out, 0) // propertyDefCount
	out = appendI32(out, 0) // enumDefCount
	out = appendI32(out, 2) // dataMappingCount
	out = appendI32(out, 2) // recordDefCount

	for i := 0; i < 19; i++ {
		out = appendI32(out, 0)
	}

	out = appendU32(out, uint32(len(table1)))
	out = appendU32(out, uint32(len(table2)))

	// struct 0: Widget at offset 0, no parent, zero size
	out = appendI32(out, 0)
	out = appendI32(out, -1)
	out = appendU16(out, 0)
	out = appendU16(out, 0)
	out = appendU32(out, 0)

	// struct 1: Gadget at offset 7 ("Widget\x00" is 7 bytes)
	out = appendI32(out, 7)
	out = appendI32(out, -1)
	out = appendU16(out, 0)
	out = appendU16(out, 0)
	out = appendU32(out, 0)

	// data mappings: one instance each, zero-size structs
	out = appendU32(out, 1)
	out = appendI32(out, 0)
	out = appendU32(out, 1)
	out = appendI32(out, 1)

	// record 0: Widget, file "widget.xml" (offset 0 into table1)
	out = appendI32(out, 0)
	out = appendI32(out, 0)
	out = appendI32(out, 0)
	id0 := [16]byte{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	out = append(out, id0[:]...)
	out = appendU16(out, 0)
	out = appendU16(out, 0)

	// record 1: Gadget, file "gadget.xml" (offset 11 into table1)
	out = appendI32(out, 7)
	out = appendI32(out, 11)
	out = appendI32(out, 1)
	id1 := [16]byte{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}
	out = append(out, id1[:]...)
	out = appendU16(out, 0)
	out = appendU16(out, 0)

	out = append(out, table1...)
	out = append(out, table2...)
	// no instance bytes: both structs are zero-size

	return out
}

func TestQueryTypeExactFiltersByStructName(t *testing.T) {
	db, err := Parse(buildTwoRecordDatabase(t), nil)
	require.NoError(t, err)

	got := NewQuery(db).TypeExact("Gadget").Collect()
	require.Len(t, got, 1)
	require.Equal(t, [16]byte{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}, got[0].ID)
}

func TestQueryTypeContainsMatchesSubstring(t *testing.T) {
	db, err := Parse(buildTwoRecordDatabase(t), nil)
	require.NoError(t, err)

	require.Equal(t, 2, NewQuery(db).TypeContains("dget").Count())
	require.Equal(t, 1, NewQuery(db).TypeContains("Wid").Count())
}

func TestQueryByIDReturnsExactRecord(t *testing.T) {
	db, err := Parse(buildTwoRecordDatabase(t), nil)
	require.NoError(t, err)

	id := [16]byte{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}
	r, ok := NewQuery(db).ByID(id).First()
	require.True(t, ok)
	require.Equal(t, "Gadget", db.StructName(r.StructIndex))

	_, ok = NewQuery(db).ByID([16]byte{9, 9}).First()
	require.False(t, ok)
}

func TestQueryFileFiltersByRecordFileName(t *testing.T) {
	db, err := Parse(buildTwoRecordDatabase(t), nil)
	require.NoError(t, err)

	got := NewQuery(db).File("gadget.xml").Collect()
	require.Len(t, got, 1)
	require.Equal(t, "Gadget", db.StructName(got[0].StructIndex))
}

func TestCountByTypeMatchesQueryCount(t *testing.T) {
	db, err := Parse(buildTwoRecordDatabase(t), nil)
	require.NoError(t, err)

	require.Equal(t, 1, db.CountByType("Widget"))
	require.Equal(t, 0, db.CountByType("Nonexistent"))
}

func TestResolveReferenceNullIsFalse(t *testing.T) {
	db, err := Parse(buildTwoRecordDatabase(t), nil)
	require.NoError(t, err)

	_, ok := db.ResolveReference(Reference{})
	require.False(t, ok)
}
