package archive

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
)

// decompressZstd runs the archive's method-100 payload through a pooled
// klauspost/compress/zstd decoder, mirroring compress.ZstdDecompressor's
// reuse pattern from arloliu/mebo rather than allocating a fresh decoder
// per call.
func decompressZstd(data []byte, expectedSize int) ([]byte, error) {
	dec, err := zstdDecoderPool.get()
	if err != nil {
		return nil, err
	}
	defer zstdDecoderPool.put(dec)

	out := make([]byte, 0, expectedSize)
	return dec.DecodeAll(data, out)
}

// decompressDeflate runs the archive's method-8 payload through
// klauspost/compress/flate, the same family wired for charfile's
// Zstandard codec so both compression paths in this module route
// through one vendor.
func decompressDeflate(data []byte, expectedSize int) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out := make([]byte, 0, expectedSize)
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type decoderPool struct {
	ch chan *zstd.Decoder
}

func newDecoderPool(size int) *decoderPool {
	return &decoderPool{ch: make(chan *zstd.Decoder, size)}
}

func (p *decoderPool) get() (*zstd.Decoder, error) {
	select {
	case d := <-p.ch:
		return d, nil
	default:
		return zstd.NewReader(nil)
	}
}

func (p *decoderPool) put(d *zstd.Decoder) {
	select {
	case p.ch <- d:
	default:
		d.Close()
	}
}

// zstdDecoderPool is shared across every Archive; zstd.Decoder is safe
// for concurrent DecodeAll calls from multiple goroutines but pooling a
// small number avoids the allocation cost of NewReader on cache misses
// during parallel extraction.
var zstdDecoderPool = newDecoderPool(8)
