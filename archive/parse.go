package archive

import (
	"strings"

	"github.com/goburrow/cache"

	"github.com/nullsector/assetkit/internal/binreader"
)

const (
	sigEocd        uint32 = 0x06054b50
	sigEocd64Loc   uint32 = 0x07064b50
	sigEocd64      uint32 = 0x06064b50
	sigCentralDir  uint32 = 0x02014b50
	sigLocalHeader uint32 = 0x04034b50
	// sigLocalHeaderExtended is an alternate local-header signature this
	// archive format emits for some entries.
	sigLocalHeaderExtended uint32 = 0x14034b50
)

// extra field tags, in the fixed order this format writes them.
const (
	extraTagZip64 uint16 = 0x0001
	extraTag5000  uint16 = 0x5000
	extraTag5002  uint16 = 0x5002
	extraTag5003  uint16 = 0x5003
)

func parse(data []byte, opts *Options) (*Archive, error) {
	opts = opts.orDefault()

	actualEnd := binreader.FindLastNonZero(data)
	if opts.VerifyPadding && opts.Logger != nil && actualEnd < len(data) {
		if first := binreader.FindFirstNonZero(data[actualEnd:], 0); first >= 0 {
			opts.Logger.Warnf("non-zero byte at offset %d inside what should be a zero-padded tail", actualEnd+first)
		}
	}

	eocdOffset, err := findEocd(data, actualEnd)
	if err != nil {
		return nil, err
	}

	c := binreader.NewCursor(data[eocdOffset:])
	if err := c.ExpectMagic(magicBytes(sigEocd)); err != nil {
		return nil, err
	}
	disk := struct {
		diskNumber           uint16
		centralDirDisk       uint16
		centralDirCountDisk  uint16
		centralDirCountTotal uint16
		centralDirSize       uint32
		centralDirOffset     uint32
		commentLength        uint16
	}{}
	if disk.diskNumber, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if disk.centralDirDisk, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if disk.centralDirCountDisk, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if disk.centralDirCountTotal, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if disk.centralDirSize, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if disk.centralDirOffset, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if disk.commentLength, err = c.ReadU16(); err != nil {
		return nil, err
	}

	isZip64 := disk.centralDirCountTotal == 0xFFFF ||
		disk.centralDirOffset == 0xFFFFFFFF ||
		disk.centralDirSize == 0xFFFFFFFF

	var totalEntries uint64
	var centralDirOffset uint64
	if isZip64 {
		totalEntries, centralDirOffset, err = readZip64Eocd(data, eocdOffset)
		if err != nil {
			return nil, err
		}
		// When the regular EOCD count isn't itself the ZIP64 sentinel, it
		// must still agree with the ZIP64 EOCD's count (§4.1.2).
		if disk.centralDirCountTotal != 0xFFFF && uint64(disk.centralDirCountTotal) != totalEntries {
			return nil, &EntryCountMismatchError{EocdCount: disk.centralDirCountTotal, Zip64Count: totalEntries}
		}
	} else {
		totalEntries = uint64(disk.centralDirCountTotal)
		centralDirOffset = uint64(disk.centralDirOffset)
	}

	entries, err := parseCentralDirectory(data, centralDirOffset, int(totalEntries), isZip64)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int, len(entries))
	for i, e := range entries {
		byName[strings.ToLower(e.Name)] = i
	}

	a := &Archive{
		data:    data,
		entries: entries,
		byName:  byName,
		log:     opts.Logger,
	}
	if opts.EntryCacheSize > 0 {
		a.cache = cache.New(cache.WithMaximumSize(opts.EntryCacheSize))
	}
	return a, nil
}

func magicBytes(sig uint32) []byte {
	return []byte{byte(sig), byte(sig >> 8), byte(sig >> 16), byte(sig >> 24)}
}

// findEocd searches backwards for the EOCD signature within the last
// eocdSearchWindow bytes of the real (non-padded) content, matching
// P4kArchive::find_eocd_optimized.
func findEocd(data []byte, actualEnd int) (int, error) {
	searchStart := actualEnd - eocdSearchWindow
	if searchStart < 0 {
		searchStart = 0
	}
	idx := binreader.LastIndex(data[searchStart:actualEnd], magicBytes(sigEocd))
	if idx < 0 {
		return 0, &EocdNotFoundError{SearchedBytes: actualEnd - searchStart}
	}
	return searchStart + idx, nil
}

// readZip64Eocd locates the ZIP64 locator just before the standard EOCD
// record and follows it to the ZIP64 EOCD record, matching
// P4kArchive::read_zip64_eocd's 100-byte backward search window.
func readZip64Eocd(data []byte, eocdOffset int) (totalEntries, centralDirOffset uint64, err error) {
	searchStart := eocdOffset - 100
	if searchStart < 0 {
		searchStart = 0
	}

	locatorOffset := -1
	for i := eocdOffset - 1; i >= searchStart; i-- {
		if i+4 <= len(data) && string(data[i:i+4]) == string(magicBytes(sigEocd64Loc)) {
			locatorOffset = i
			break
		}
	}
	if locatorOffset < 0 {
		return 0, 0, &Zip64EocdNotFoundError{}
	}

	c := binreader.NewCursor(data[locatorOffset:])
	if err := c.ExpectMagic(magicBytes(sigEocd64Loc)); err != nil {
		return 0, 0, err
	}
	if _, err := c.ReadU32(); err != nil { // zip64_eocd_disk
		return 0, 0, err
	}
	eocd64Offset, err := c.ReadU64()
	if err != nil {
		return 0, 0, err
	}
	// total_disks field follows but is unused.

	if int(eocd64Offset)+4 > len(data) {
		return 0, 0, &Zip64EocdNotFoundError{}
	}

	c2 := binreader.NewCursor(data[eocd64Offset:])
	if err := c2.ExpectMagic(magicBytes(sigEocd64)); err != nil {
		return 0, 0, err
	}
	if _, err := c2.ReadU64(); err != nil { // record_size
		return 0, 0, err
	}
	if _, err := c2.ReadU16(); err != nil { // version_made_by
		return 0, 0, err
	}
	if _, err := c2.ReadU16(); err != nil { // version_needed
		return 0, 0, err
	}
	if _, err := c2.ReadU32(); err != nil { // disk_number
		return 0, 0, err
	}
	if _, err := c2.ReadU32(); err != nil { // central_dir_disk
		return 0, 0, err
	}
	if _, err := c2.ReadU64(); err != nil { // central_dir_count_disk
		return 0, 0, err
	}
	totalEntries, err = c2.ReadU64()
	if err != nil {
		return 0, 0, err
	}
	if _, err := c2.ReadU64(); err != nil { // central_dir_size
		return 0, 0, err
	}
	centralDirOffset, err = c2.ReadU64()
	if err != nil {
		return 0, 0, err
	}

	return totalEntries, centralDirOffset, nil
}

func parseCentralDirectory(data []byte, offset uint64, count int, isZip64 bool) ([]Entry, error) {
	c := binreader.NewCursor(data[offset:])
	entries := make([]Entry, 0, count)

	for i := 0; i < count; i++ {
		e, err := readCentralDirEntry(c, isZip64)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func readCentralDirEntry(c *binreader.Cursor, isZip64 bool) (Entry, error) {
	sig, err := c.ReadU32()
	if err != nil {
		return Entry{}, err
	}
	if sig != sigCentralDir {
		return Entry{}, &BadSignatureError{Expected: sigCentralDir, Actual: sig}
	}

	if _, err := c.ReadU16(); err != nil { // version_made_by
		return Entry{}, err
	}
	if _, err := c.ReadU16(); err != nil { // version_needed
		return Entry{}, err
	}
	if _, err := c.ReadU16(); err != nil { // flags
		return Entry{}, err
	}
	compressionMethodRaw, err := c.ReadU16()
	if err != nil {
		return Entry{}, err
	}
	if _, err := c.ReadU32(); err != nil { // last_modified
		return Entry{}, err
	}
	crc32, err := c.ReadU32()
	if err != nil {
		return Entry{}, err
	}
	compressedSize32, err := c.ReadU32()
	if err != nil {
		return Entry{}, err
	}
	uncompressedSize32, err := c.ReadU32()
	if err != nil {
		return Entry{}, err
	}
	nameLen, err := c.ReadU16()
	if err != nil {
		return Entry{}, err
	}
	extraLen, err := c.ReadU16()
	if err != nil {
		return Entry{}, err
	}
	commentLen, err := c.ReadU16()
	if err != nil {
		return Entry{}, err
	}
	diskNumberStart, err := c.ReadU16()
	if err != nil {
		return Entry{}, err
	}
	if _, err := c.ReadU16(); err != nil { // internal_attrs
		return Entry{}, err
	}
	if _, err := c.ReadU32(); err != nil { // external_attrs
		return Entry{}, err
	}
	localHeaderOffset32, err := c.ReadU32()
	if err != nil {
		return Entry{}, err
	}

	nameBytes, err := c.ReadBytes(int(nameLen))
	if err != nil {
		return Entry{}, err
	}
	name := strings.ReplaceAll(string(nameBytes), "/", "\\")

	compressedSize := uint64(compressedSize32)
	uncompressedSize := uint64(uncompressedSize32)
	localHeaderOffset := uint64(localHeaderOffset32)
	isEncrypted := false

	extraBytes, err := c.ReadBytes(int(extraLen))
	if err != nil {
		return Entry{}, err
	}

	if isZip64 {
		ec := binreader.NewCursor(extraBytes)

		zip64ID, err := ec.ReadU16()
		if err != nil {
			return Entry{}, err
		}
		if zip64ID != extraTagZip64 {
			return Entry{}, &BadExtraFieldTagError{Expected: extraTagZip64, Actual: zip64ID}
		}
		if _, err := ec.ReadU16(); err != nil { // zip64 field size
			return Entry{}, err
		}

		if uncompressedSize32 == 0xFFFFFFFF {
			if uncompressedSize, err = ec.ReadU64(); err != nil {
				return Entry{}, err
			}
		}
		if compressedSize32 == 0xFFFFFFFF {
			if compressedSize, err = ec.ReadU64(); err != nil {
				return Entry{}, err
			}
		}
		if localHeaderOffset32 == 0xFFFFFFFF {
			if localHeaderOffset, err = ec.ReadU64(); err != nil {
				return Entry{}, err
			}
		}
		if diskNumberStart == 0xFFFF {
			if _, err := ec.ReadU32(); err != nil {
				return Entry{}, err
			}
		}

		field5000ID, err := ec.ReadU16()
		if err != nil {
			return Entry{}, err
		}
		if field5000ID != extraTag5000 {
			return Entry{}, &BadExtraFieldTagError{Expected: extraTag5000, Actual: field5000ID}
		}
		field5000Size, err := ec.ReadU16()
		if err != nil {
			return Entry{}, err
		}
		if err := ec.Advance(int(field5000Size) - 4); err != nil {
			return Entry{}, err
		}

		field5002ID, err := ec.ReadU16()
		if err != nil {
			return Entry{}, err
		}
		if field5002ID != extraTag5002 {
			return Entry{}, &BadExtraFieldTagError{Expected: extraTag5002, Actual: field5002ID}
		}
		field5002Size, err := ec.ReadU16()
		if err != nil {
			return Entry{}, err
		}
		if field5002Size != 6 {
			return Entry{}, &BadExtraFieldSizeError{Expected: 6, Actual: field5002Size}
		}
		encFlag, err := ec.ReadU16()
		if err != nil {
			return Entry{}, err
		}
		isEncrypted = encFlag == 1

		field5003ID, err := ec.ReadU16()
		if err != nil {
			return Entry{}, err
		}
		if field5003ID != extraTag5003 {
			return Entry{}, &BadExtraFieldTagError{Expected: extraTag5003, Actual: field5003ID}
		}
		field5003Size, err := ec.ReadU16()
		if err != nil {
			return Entry{}, err
		}
		if err := ec.Advance(int(field5003Size) - 4); err != nil {
			return Entry{}, err
		}
	}

	if commentLen > 0 {
		if err := c.Advance(int(commentLen)); err != nil {
			return Entry{}, err
		}
	}

	method, err := parseCompressionMethod(compressionMethodRaw)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Name:              name,
		CompressedSize:    compressedSize,
		UncompressedSize:  uncompressedSize,
		CompressionMethod: method,
		IsEncrypted:       isEncrypted,
		LocalHeaderOffset: localHeaderOffset,
		CRC32:             crc32,
	}, nil
}
