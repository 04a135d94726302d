package objectdb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildWidgetDatabase hand-assembles a one-struct, two-property database
// (Count: UInt32, Label: String) with a single record, exercising the
// scalar and string-pool paths of ExportRecord.
func buildWidgetDatabase(t *testing.T) ([]byte, [16]byte) {
	t.Helper()

	table1 := []byte("Data/Widget.xml\x00Hello\x00")
	table2 := []byte("Widget\x00Count\x00Label\x00MyWidget\x00")

	var out []byte
	out = appendU32(out, 0) // unknown1
	out = appendU32(out, 6) // version
	out = appendU32(out, 0) // unknown2
	out = appendU32(out, 0) // unknown3

	out = appendI32(out, 1) // structDefCount
	out = appendI32(out, 2) // propertyDefCount
	out = appendI32(out, 0) // enumDefCount
	out = appendI32(out, 1) // dataMappingCount
	out = appendI32(out, 1) // recordDefCount

	for i := 0; i < 19; i++ {
		out = appendI32(out, 0)
	}

	out = appendU32(out, uint32(len(table1)))
	out = appendU32(out, uint32(len(table2)))

	// struct def: name "Widget" @0, no parent, 2 attrs starting at 0, size 8
	out = appendI32(out, 0)
	out = appendI32(out, -1)
	out = appendU16(out, 2)
	out = appendU16(out, 0)
	out = appendU32(out, 8)

	// property 0: Count, UInt32, scalar
	out = appendI32(out, 7) // "Count" offset in table2
	out = appendU16(out, 0)
	out = appendU16(out, uint16(TypeUInt32))
	out = appendU16(out, 0)
	out = appendU16(out, 0) // pad

	// property 1: Label, String, scalar
	out = appendI32(out, 13) // "Label" offset in table2
	out = appendU16(out, 0)
	out = appendU16(out, uint16(TypeString))
	out = appendU16(out, 0)
	out = appendU16(out, 0) // pad

	// data mapping: 1 instance of struct 0
	out = appendU32(out, 1)
	out = appendI32(out, 0)

	// record: name "MyWidget" @19, file "Data/Widget.xml" @0, struct 0
	out = appendI32(out, 19)
	out = appendI32(out, 0)
	out = appendI32(out, 0)
	id := [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	out = append(out, id[:]...)
	out = appendU16(out, 0)
	out = appendU16(out, 8)

	// pools: all empty

	out = append(out, table1...)
	out = append(out, table2...)

	var instance []byte
	instance = appendU32(instance, 42) // Count
	instance = appendI32(instance, 16) // Label -> "Hello" offset in table1
	out = append(out, instance...)

	return out, id
}

func TestExportRecordRendersScalarsAndStringPoolValues(t *testing.T) {
	data, _ := buildWidgetDatabase(t)
	db, err := Parse(data, nil)
	require.NoError(t, err)
	require.Len(t, db.Records(), 1)

	xml, err := db.ExportRecord(db.Records()[0])
	require.NoError(t, err)

	require.Contains(t, xml, "<MyWidget")
	require.Contains(t, xml, `Type="Widget"`)
	require.Contains(t, xml, "<Count>42</Count>")
	require.Contains(t, xml, "<Label>Hello</Label>")
}

func TestSanitizeElementName(t *testing.T) {
	cases := map[string]string{
		"Count":     "Count",
		"":          "Element",
		"1Count":    "_Count",
		"a.b-c_d":   "a.b-c_d",
		"weird name": "weird_name",
	}
	for in, want := range cases {
		require.Equal(t, want, sanitizeElementName(in), "input %q", in)
	}
}
