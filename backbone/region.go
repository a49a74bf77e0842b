package backbone

import (
	"fmt"
	"unsafe"

	"github.com/rs/zerolog"

	"github.com/joeycumines/go-shmslab/spinlock"
)

// Region is an attached view over a caller-supplied byte buffer laid out
// per the region layout contract. The first attacher initializes shared
// state; subsequent attachers bind to it without writing, per spec's
// "first attacher initializes" rule.
type Region struct {
	buf      []byte
	header   *Header
	records  []Record
	pageBase uintptr
	log      zerolog.Logger
}

// Option configures optional Region behavior.
type Option func(*Region)

// WithLogger attaches a logger used only for cold-path events — region
// init/attach and page exhaustion. The balloc/bfree fast paths never log.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Region) { r.log = log }
}

// Init attaches start as a backbone region. start must be 16-byte
// aligned (true of any page-aligned buffer, e.g. one returned by the
// shmregion package, or one built with NewAlignedBuffer). When
// initialize is true the caller is the first attacher: the header,
// metadata array, and free-page list are written. When false, start
// must already hold a region previously initialized by another
// attacher — possibly in another process mapping the same bytes — and
// no writes occur; only offsets are computed and bound.
func Init(start []byte, initialize bool, opts ...Option) (*Region, error) {
	size := uintptr(len(start))
	if size == 0 {
		return nil, fmt.Errorf("backbone: empty region")
	}
	if uintptr(unsafe.Pointer(&start[0]))%align16 != 0 {
		return nil, fmt.Errorf("backbone: region start must be 16-byte aligned")
	}

	lo := computeLayout(size)
	if lo.pageCount <= 0 {
		return nil, fmt.Errorf("backbone: region of %d bytes yields zero pages", size)
	}

	base := unsafe.Pointer(&start[0])
	header := (*Header)(base)
	records := unsafe.Slice((*Record)(unsafe.Add(base, lo.metadataOffset)), lo.pageCount)
	pageBase := uintptr(base) + lo.pagesOffset

	r := &Region{
		buf:      start,
		header:   header,
		records:  records,
		pageBase: pageBase,
	}
	for _, opt := range opts {
		opt(r)
	}

	if initialize {
		header.mu = spinlock.Lock{}
		header.free = List{}
		for i := range records {
			records[i] = Record{}
			records[i].addr = pageBase + uintptr(i)*PageSize
			header.free.PushFront(&records[i])
		}
		r.log.Debug().
			Int("pages", lo.pageCount).
			Int("bytes", int(size)).
			Msg("backbone: region initialized")
	} else {
		r.log.Debug().
			Int("pages", len(records)).
			Msg("backbone: region attached")
	}

	return r, nil
}

// NewAlignedBuffer allocates a plain in-process buffer of size bytes,
// suitable for Init, guaranteed 16-byte aligned. Go's allocator does not
// itself guarantee 16-byte alignment for arbitrary slice sizes (unlike
// the page-aligned mmap regions a production deployment would pass in
// via the shmregion package), so tests and single-process callers that
// don't need real shared memory use this helper instead of make([]byte).
func NewAlignedBuffer(size int) []byte {
	raw := make([]byte, size+align16)
	off := (align16 - int(uintptr(unsafe.Pointer(&raw[0]))%align16)) % align16
	return raw[off : off+size : off+size]
}

// Balloc hands out a single page record, or nil if the region is
// exhausted. No retries.
func (r *Region) Balloc() *Record {
	r.header.mu.Lock()
	rec := r.header.free.PopFront()
	r.header.mu.Unlock()
	if rec == nil {
		r.log.Warn().Msg("backbone: page exhaustion")
	}
	return rec
}

// Bfree returns a whole page record to the backbone's free-page list.
func (r *Region) Bfree(rec *Record) {
	r.header.mu.Lock()
	r.header.free.PushFront(rec)
	r.header.mu.Unlock()
}

// Size returns the total configured byte size of the region, S.
func (r *Region) Size() uint64 { return uint64(len(r.buf)) }

// UsedBytes returns S minus the free-page list length times PageSize.
// Header and padding bytes count as used by construction, matching
// spec's accounting rule.
func (r *Region) UsedBytes() uint64 {
	r.header.mu.Lock()
	free := r.header.free.Len()
	r.header.mu.Unlock()
	return uint64(len(r.buf)) - uint64(free)*PageSize
}

// Pressure returns UsedBytes()/Size(), a value in (0,1].
func (r *Region) Pressure() float64 {
	return float64(r.UsedBytes()) / float64(r.Size())
}

// PageCount returns the number of pages this region was carved into.
func (r *Region) PageCount() int { return len(r.records) }

// PageForAddr maps an address inside some page's bytes back to that
// page's Record, or nil if addr does not fall within any page this
// region owns.
func (r *Region) PageForAddr(addr uintptr) *Record {
	if addr < r.pageBase {
		return nil
	}
	idx := (addr - r.pageBase) / PageSize
	if idx >= uintptr(len(r.records)) {
		return nil
	}
	return &r.records[idx]
}

// HeaderExtra returns a pointer to the reserved header extension area
// the slab package carves its bucket array out of.
func (r *Region) HeaderExtra() unsafe.Pointer {
	return unsafe.Pointer(&r.header.extra[0])
}

// PageIndex returns rec's position in this region's page array, for
// callers (the slab package) that keep their own per-page bookkeeping
// alongside backbone's.
func (r *Region) PageIndex(rec *Record) int {
	return int((rec.Addr() - r.pageBase) / PageSize)
}
