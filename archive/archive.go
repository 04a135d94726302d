// Package archive implements the sealed asset container (C1): a ZIP64
// central-directory layout carrying a custom 0x5000/0x5002/0x5003 extra
// field set, AES-128-CBC encrypted entries, and Store/Deflate/
// Zstandard(100) payloads. Grounded on svarog-p4k's archive.rs/zip/*.rs.
package archive

import (
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/goburrow/cache"

	"github.com/nullsector/assetkit/internal/assetlog"
	"github.com/nullsector/assetkit/internal/binreader"
)

// eocdSearchWindow bounds how far back from the end of the file the
// end-of-central-directory signature is searched for — the EOCD record
// itself is at most 22 bytes plus a 16-bit comment, 65557 bytes total.
const eocdSearchWindow = 65557

// Options configures how an Archive is opened. A nil *Options (or a
// zero Options) applies the defaults: no logging, no decoded-entry
// cache, no padding sanity check.
type Options struct {
	// Logger receives non-fatal diagnostics; nil is silent.
	Logger *assetlog.Helper
	// EntryCacheSize bounds an LRU of decoded entry bytes shared across
	// Read calls on the same Archive. Zero disables the cache.
	EntryCacheSize int
	// VerifyPadding runs a non-fatal forward scan for the first non-zero
	// byte in the trailing pad region when opening, logging a warning if
	// the padding looks corrupted. Only meaningful with a non-nil Logger.
	VerifyPadding bool
}

// WithEntryCache is a convenience constructor for the common case of
// wanting only a bounded decoded-entry cache.
func WithEntryCache(n int) *Options {
	return &Options{EntryCacheSize: n}
}

func (o *Options) orDefault() *Options {
	if o == nil {
		return &Options{}
	}
	return o
}

// Archive is a parsed, open sealed container. The underlying bytes
// (memory-mapped from a file, or a caller-supplied slice) are retained
// for the lifetime of the Archive since Entry offsets point back into
// them.
type Archive struct {
	data    []byte
	mm      mmap.MMap
	entries []Entry
	byName  map[string]int
	log     *assetlog.Helper
	cache   cache.Cache
}

// Open memory-maps path and parses its central directory, exactly like
// a PE-dumping tool memory-maps an executable image before parsing it.
func Open(path string, opts *Options) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}

	a, err := parse(m, opts)
	if err != nil {
		m.Unmap()
		return nil, err
	}
	a.mm = m
	return a, nil
}

// OpenBytes parses an archive already resident in memory (e.g. handed
// in from another mmap.MMap or read via os.ReadFile).
func OpenBytes(data []byte, opts *Options) (*Archive, error) {
	return parse(data, opts)
}

// Close releases the archive's memory mapping, if any. It is a no-op
// for archives opened with OpenBytes.
func (a *Archive) Close() error {
	if a.mm != nil {
		return a.mm.Unmap()
	}
	return nil
}

// EntryCount returns the number of entries in the central directory.
func (a *Archive) EntryCount() int { return len(a.entries) }

// Iter returns every entry in central-directory order.
func (a *Archive) Iter() []Entry { return a.entries }

// Get returns the entry at index, or an error if out of bounds.
func (a *Archive) Get(index int) (Entry, error) {
	if index < 0 || index >= len(a.entries) {
		return Entry{}, &EntryNotFoundError{Index: index}
	}
	return a.entries[index], nil
}

// Find looks up an entry by name, case-insensitively, normalizing '/'
// to '\' the way every stored name already is. Grounded on
// P4kArchive::find.
func (a *Archive) Find(name string) (Entry, error) {
	normalized := strings.ReplaceAll(name, "/", "\\")
	if idx, ok := a.byName[strings.ToLower(normalized)]; ok {
		return a.entries[idx], nil
	}
	return Entry{}, &EntryNotFoundError{Name: name}
}

// Read decrypts and decompresses an entry's bytes.
func (a *Archive) Read(e Entry) ([]byte, error) {
	if a.cache != nil {
		if v, ok := a.cache.GetIfPresent(e.LocalHeaderOffset); ok {
			return v.([]byte), nil
		}
	}

	out, err := a.readAt(e)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		a.cache.Put(e.LocalHeaderOffset, out)
	}
	return out, nil
}

// ReadIndex reads the entry at index.
func (a *Archive) ReadIndex(index int) ([]byte, error) {
	e, err := a.Get(index)
	if err != nil {
		return nil, err
	}
	return a.Read(e)
}

// readResult pairs a ReadParallel/ExtractParallel input with its output.
type readResult struct {
	index int
	data  []byte
	err   error
}

// ReadParallel decrypts and decompresses a batch of entries concurrently,
// returning results in the same order as the input slice. Grounded on
// P4kArchive::read_parallel, generalized from a data-parallel map over
// a thread pool to a bounded goroutine fan-out — see DESIGN.md.
func (a *Archive) ReadParallel(entries []Entry) []Result {
	return a.extractParallel(entries, nil)
}

// Result is one ReadParallel output slot.
type Result struct {
	Data []byte
	Err  error
}

// ExtractParallel concurrently reads entries by index, then, once every
// read has finished, invokes fn for each one in the order of indices. Grounded on P4kArchive::extract_parallel.
func (a *Archive) ExtractParallel(indices []int, fn func(index int, name string, data []byte, err error)) error {
	entries := make([]Entry, len(indices))
	for i, idx := range indices {
		e, err := a.Get(idx)
		if err != nil {
			return err
		}
		entries[i] = e
	}

	results := a.extractParallelResults(entries)
	for i, r := range results {
		fn(indices[i], entries[i].Name, r.data, r.err)
	}
	return nil
}

func (a *Archive) extractParallel(entries []Entry, _ func(int)) []Result {
	raw := a.extractParallelResults(entries)
	out := make([]Result, len(raw))
	for i, r := range raw {
		out[i] = Result{Data: r.data, Err: r.err}
	}
	return out
}

const maxParallelWorkers = 16

func (a *Archive) extractParallelResults(entries []Entry) []readResult {
	results := make([]readResult, len(entries))
	jobs := make(chan int)

	workers := maxParallelWorkers
	if workers > len(entries) {
		workers = len(entries)
	}
	if workers == 0 {
		return results
	}

	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				data, err := a.Read(entries[i])
				results[i] = readResult{index: i, data: data, err: err}
			}
			done <- struct{}{}
		}()
	}

	go func() {
		for i := range entries {
			jobs <- i
		}
		close(jobs)
	}()

	for w := 0; w < workers; w++ {
		<-done
	}

	return results
}
