package archive

// CompressionMethod identifies how an entry's bytes are stored on disk.
// Grounded on svarog-p4k's zip/mod.rs CompressionMethod enum.
type CompressionMethod uint16

// Compression methods the sealed archive format actually emits.
const (
	CompressionStore   CompressionMethod = 0
	CompressionDeflate CompressionMethod = 8
	CompressionZstd    CompressionMethod = 100
)

func (m CompressionMethod) String() string {
	switch m {
	case CompressionStore:
		return "Store"
	case CompressionDeflate:
		return "Deflate"
	case CompressionZstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}

func parseCompressionMethod(raw uint16) (CompressionMethod, error) {
	switch CompressionMethod(raw) {
	case CompressionStore, CompressionDeflate, CompressionZstd:
		return CompressionMethod(raw), nil
	default:
		return 0, &UnsupportedCompressionError{Method: raw}
	}
}

// Entry describes one file packed into the archive. Names are stored
// with backslash separators, matching the P4K reference's normalization
// of central-directory names on load.
type Entry struct {
	Name              string
	CompressedSize    uint64
	UncompressedSize  uint64
	CompressionMethod CompressionMethod
	IsEncrypted       bool
	LocalHeaderOffset uint64
	CRC32             uint32
}
