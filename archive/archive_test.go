package archive

import (
	"encoding/binary"
	"hash/crc32"
	"testing"
)

// buildTestArchive assembles a minimal, non-ZIP64, unencrypted Store-method
// archive containing a single entry, matching the byte layout
// read_cd_entry_compact/read_by_offset expect.
func buildTestArchive(t *testing.T, name string, content []byte) []byte {
	t.Helper()

	var buf []byte
	localOffset := len(buf)

	nameBytes := []byte(name)
	crc := crc32.ChecksumIEEE(content)

	local := make([]byte, 30)
	binary.LittleEndian.PutUint32(local[0:], sigLocalHeader)
	binary.LittleEndian.PutUint16(local[4:], 20) // version_needed
	binary.LittleEndian.PutUint16(local[6:], 0)  // flags
	binary.LittleEndian.PutUint16(local[8:], uint16(CompressionStore))
	binary.LittleEndian.PutUint32(local[10:], 0) // last_modified
	binary.LittleEndian.PutUint32(local[14:], crc)
	binary.LittleEndian.PutUint32(local[18:], uint32(len(content)))
	binary.LittleEndian.PutUint32(local[22:], uint32(len(content)))
	binary.LittleEndian.PutUint16(local[26:], uint16(len(nameBytes)))
	binary.LittleEndian.PutUint16(local[28:], 0) // extra_len
	buf = append(buf, local...)
	buf = append(buf, nameBytes...)
	buf = append(buf, content...)

	cdOffset := len(buf)
	cd := make([]byte, 46)
	binary.LittleEndian.PutUint32(cd[0:], sigCentralDir)
	binary.LittleEndian.PutUint16(cd[4:], 20) // version_made_by
	binary.LittleEndian.PutUint16(cd[6:], 20) // version_needed
	binary.LittleEndian.PutUint16(cd[8:], 0)  // flags
	binary.LittleEndian.PutUint16(cd[10:], uint16(CompressionStore))
	binary.LittleEndian.PutUint32(cd[12:], 0) // last_modified
	binary.LittleEndian.PutUint32(cd[16:], crc)
	binary.LittleEndian.PutUint32(cd[20:], uint32(len(content)))
	binary.LittleEndian.PutUint32(cd[24:], uint32(len(content)))
	binary.LittleEndian.PutUint16(cd[28:], uint16(len(nameBytes)))
	binary.LittleEndian.PutUint16(cd[30:], 0) // extra_len
	binary.LittleEndian.PutUint16(cd[32:], 0) // comment_len
	binary.LittleEndian.PutUint16(cd[34:], 0) // disk_number_start
	binary.LittleEndian.PutUint16(cd[36:], 0) // internal_attrs
	binary.LittleEndian.PutUint32(cd[38:], 0) // external_attrs
	binary.LittleEndian.PutUint32(cd[42:], uint32(localOffset))
	buf = append(buf, cd...)
	buf = append(buf, nameBytes...)
	cdSize := len(buf) - cdOffset

	eocd := make([]byte, 22)
	binary.LittleEndian.PutUint32(eocd[0:], sigEocd)
	binary.LittleEndian.PutUint16(eocd[4:], 0)
	binary.LittleEndian.PutUint16(eocd[6:], 0)
	binary.LittleEndian.PutUint16(eocd[8:], 1)
	binary.LittleEndian.PutUint16(eocd[10:], 1)
	binary.LittleEndian.PutUint32(eocd[12:], uint32(cdSize))
	binary.LittleEndian.PutUint32(eocd[16:], uint32(cdOffset))
	binary.LittleEndian.PutUint16(eocd[20:], 0)
	buf = append(buf, eocd...)

	return buf
}

func TestOpenBytesFindAndRead(t *testing.T) {
	content := []byte("hello, archive")
	data := buildTestArchive(t, "data\\test.txt", content)

	a, err := OpenBytes(data, nil)
	if err != nil {
		t.Fatalf("OpenBytes() error: %v", err)
	}
	if a.EntryCount() != 1 {
		t.Fatalf("EntryCount() = %d, want 1", a.EntryCount())
	}

	e, err := a.Find("data/test.txt")
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if e.Name != "data\\test.txt" {
		t.Fatalf("Name = %q, want normalized backslash form", e.Name)
	}

	got, err := a.Read(e)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("Read() = %q, want %q", got, content)
	}
}

func TestFindMissingEntry(t *testing.T) {
	data := buildTestArchive(t, "present.txt", []byte("x"))
	a, err := OpenBytes(data, nil)
	if err != nil {
		t.Fatalf("OpenBytes() error: %v", err)
	}

	if _, err := a.Find("missing.txt"); err == nil {
		t.Fatal("expected error for missing entry")
	} else if _, ok := err.(*EntryNotFoundError); !ok {
		t.Fatalf("expected *EntryNotFoundError, got %T", err)
	}
}

func TestEocdNotFound(t *testing.T) {
	_, err := OpenBytes(make([]byte, 64), nil)
	if _, ok := err.(*EocdNotFoundError); !ok {
		t.Fatalf("expected *EocdNotFoundError, got %v", err)
	}
}

func TestReadParallelMatchesSequentialRead(t *testing.T) {
	data := buildTestArchive(t, "parallel.txt", []byte("concurrent bytes"))
	a, err := OpenBytes(data, nil)
	if err != nil {
		t.Fatalf("OpenBytes() error: %v", err)
	}

	entries := a.Iter()
	results := a.ReadParallel(entries)
	if len(results) != len(entries) {
		t.Fatalf("ReadParallel() returned %d results, want %d", len(results), len(entries))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("ReadParallel() entry %d error: %v", i, r.Err)
		}
		want, err := a.Read(entries[i])
		if err != nil {
			t.Fatalf("Read() error: %v", err)
		}
		if string(r.Data) != string(want) {
			t.Fatalf("ReadParallel() entry %d = %q, want %q", i, r.Data, want)
		}
	}
}

func TestEntryCacheReusesDecodedBytes(t *testing.T) {
	data := buildTestArchive(t, "cached.txt", []byte("cache me"))
	a, err := OpenBytes(data, WithEntryCache(4))
	if err != nil {
		t.Fatalf("OpenBytes() error: %v", err)
	}

	e, err := a.Find("cached.txt")
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}

	first, err := a.Read(e)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	second, err := a.Read(e)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("cached Read() result diverged from first read")
	}
}
