package charfile

import (
	"testing"

	"github.com/nullsector/assetkit/internal/binreader"
)

func buildPayload(t *testing.T, genderID binreader.Identifier, morphIndex int, weight float32) []byte {
	t.Helper()
	d := &Data{GenderID: genderID}
	d.DNA.Parts[morphIndex].SetPercent(weight)
	return d.Bytes()
}

func TestFileSaveLoadRoundTrip(t *testing.T) {
	gender, err := binreader.ParseIdentifier("44332211-6677-8899-aabb-ccddeeff0011")
	if err != nil {
		t.Fatalf("ParseIdentifier: %v", err)
	}

	payload := buildPayload(t, gender, 8, 0.5)

	f := &File{Payload: payload}
	out, err := f.Save()
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if len(out) != Size {
		t.Fatalf("Save() produced %d bytes, want %d", len(out), Size)
	}

	loaded, err := LoadBytes(out)
	if err != nil {
		t.Fatalf("LoadBytes() error: %v", err)
	}

	data, err := ParseData(loaded.Payload)
	if err != nil {
		t.Fatalf("ParseData() error: %v", err)
	}
	if data.GenderID != gender {
		t.Fatalf("GenderID = %v, want %v", data.GenderID, gender)
	}

	weight := data.DNA.Parts[8].Percent()
	if diff := weight - 0.5; diff < -1.0/65535 || diff > 1.0/65535 {
		t.Fatalf("decoded weight = %v, want within 1/65535 of 0.5", weight)
	}
	for i, part := range data.DNA.Parts {
		if i != 8 && part.PercentRaw != 0 {
			t.Fatalf("morph slot %d expected zero weight, got raw %d", i, part.PercentRaw)
		}
	}
	if len(data.Materials) != 0 {
		t.Fatalf("Materials = %v, want empty", data.Materials)
	}
	if data.ItemPort != nil {
		t.Fatal("ItemPort should be nil for an empty attachment tree")
	}

	out2, err := loaded.Save()
	if err != nil {
		t.Fatalf("second Save() error: %v", err)
	}
	if string(out) != string(out2) {
		t.Fatal("save(load(save(...))) was not byte-identical")
	}
}

func TestLoadBytesWrongSize(t *testing.T) {
	_, err := LoadBytes(make([]byte, 10))
	if _, ok := err.(*InvalidSizeError); !ok {
		t.Fatalf("expected *InvalidSizeError, got %v", err)
	}
}

func TestModdedTrailerBothAcceptedForms(t *testing.T) {
	f := &File{Payload: []byte{}, Modded: true}
	out, err := f.Save()
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	loaded, err := LoadBytes(out)
	if err != nil {
		t.Fatalf("LoadBytes() error: %v", err)
	}
	if !loaded.Modded {
		t.Fatal("expected Modded == true for the marker trailer")
	}

	f2 := &File{Payload: []byte{}, Modded: false}
	out2, err := f2.Save()
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	loaded2, err := LoadBytes(out2)
	if err != nil {
		t.Fatalf("LoadBytes() error: %v", err)
	}
	if !loaded2.Modded {
		t.Fatal("an all-zero trailer must also be treated as modded")
	}
}

func TestItemPortChildCountGuard(t *testing.T) {
	var buf []byte
	var head [20]byte
	head[0] = 1 // non-zero name hash, the shape tryParseItemPort's peek accepts
	buf = append(buf, head[:]...)
	var count [4]byte
	putU32(count[:], 1001)
	buf = append(buf, count[:]...)

	c := binreader.NewCursor(buf)
	_, err := parseItemPortGuarded(c)
	if _, ok := err.(*ChildCountExceededError); !ok {
		t.Fatalf("expected *ChildCountExceededError, got %v", err)
	}
}

func TestNameHashKnownAndUnknown(t *testing.T) {
	known := HashName("dna")
	if name, ok := known.KnownName(); !ok || name != "dna" {
		t.Fatalf("KnownName() = %q, %v; want dna, true", name, ok)
	}

	unknown := NameHash(0xDEADBEEF)
	if _, ok := unknown.KnownName(); ok {
		t.Fatal("expected unknown hash to report ok == false")
	}
	if unknown.String() != "0xDEADBEEF" {
		t.Fatalf("String() = %q, want 0xDEADBEEF", unknown.String())
	}
}
