package binreader

import (
	"bytes"
	"math"
)

// Float32FromBits reinterprets raw little-endian bits as an IEEE-754
// single-precision float. Named to match the cursor's Read* vocabulary
// rather than exposing math.Float32frombits directly at call sites.
func Float32FromBits(bits uint32) float32 { return math.Float32frombits(bits) }

// Float64FromBits reinterprets raw little-endian bits as an IEEE-754
// double-precision float.
func Float64FromBits(bits uint64) float64 { return math.Float64frombits(bits) }

// Float32Bits is the inverse of Float32FromBits, used by every encoder
// writing inline float values back out.
func Float32Bits(v float32) uint32 { return math.Float32bits(v) }

// Float64Bits is the inverse of Float64FromBits.
func Float64Bits(v float64) uint64 { return math.Float64bits(v) }

// IndexByte finds the first occurrence of b in data, or -1. Go's
// standard bytes.IndexByte is already a hand-tuned, architecture-aware
// implementation (SSE2/AVX2/NEON depending on GOARCH), so there is no
// third-party memchr-equivalent worth reaching for here — see
// DESIGN.md.
func IndexByte(data []byte, b byte) int {
	return bytes.IndexByte(data, b)
}

// LastIndexByte finds the last occurrence of b in data, or -1.
func LastIndexByte(data []byte, b byte) int {
	return bytes.LastIndexByte(data, b)
}

// Index finds the first occurrence of the byte pattern sep in data, or -1.
func Index(data, sep []byte) int {
	return bytes.Index(data, sep)
}

// LastIndex finds the last occurrence of the byte pattern sep in data, or -1.
func LastIndex(data, sep []byte) int {
	return bytes.LastIndex(data, sep)
}

// FindLastNonZero returns the index one past the last non-zero byte in
// data, i.e. the length data would have after trimming a trailing run of
// zero bytes. Returns 0 if data is all zero or empty. Used to find the
// real end of content before a sealed-archive's NUL padding tail.
func FindLastNonZero(data []byte) int {
	for i := len(data) - 1; i >= 0; i-- {
		if data[i] != 0 {
			return i + 1
		}
	}
	return 0
}

// FindFirstNonZero returns the index of the first non-zero byte in data
// starting at from, or -1 if none exists. The reference simd.rs exposes
// this as a complementary direction to FindLastNonZero, used to sanity
// check the quality of a padding run (not just where it ends).
func FindFirstNonZero(data []byte, from int) int {
	for i := from; i < len(data); i++ {
		if data[i] != 0 {
			return i
		}
	}
	return -1
}

// IsAllZero reports whether every byte in data is zero.
func IsAllZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
