package slab

import (
	"unsafe"

	"github.com/joeycumines/go-shmslab/asanshim"
	"github.com/joeycumines/go-shmslab/backbone"
)

// magazine is a CPU's view onto the backbone page it is currently
// drawing chunks from. rec is the page currently claimed exclusively
// by this magazine; freelist is a private chain threaded through that
// page's as-yet-unallocated chunks, distinct from rec's own
// (Freelist, Inuse) pair. While a page is magazine-owned, rec stays
// frozen at (Freelist=0, Inuse=N) (see Bucket.refill's claim helpers);
// only freelist moves on the local alloc/local-free paths, and neither
// touches rec at all, so the common case needs no atomic and no lock.
//
// Bucket.mag is a [NRCPUs]magazine array living inside the region's
// fixed-size header extension (see slab.Init's budget check), so
// unlike ordinary heap-resident per-CPU state it is not padded out to
// a cache line per slot: at 128 CPUs, cachepad-style padding would by
// itself exceed backbone.HeaderExtraBytes. False sharing between
// neighboring magazines is accepted as a cost of keeping bucket state
// inside the shared region rather than process-local memory.
type magazine struct {
	rec      *backbone.Record
	freelist uintptr
}

// inPage reports whether addr falls within the page m currently owns,
// the test a free uses to decide whether it can take the private,
// lock-free local path.
func (m *magazine) inPage(addr uintptr) bool {
	if m.rec == nil {
		return false
	}
	base := m.rec.Addr()
	return addr >= base && addr < base+backbone.PageSize
}

// pop hands out one chunk from m's private freelist, or reports
// ok=false if it is currently exhausted (the owner must then refill
// before retrying). It never touches m.rec's (Freelist, Inuse) pair.
func (m *magazine) pop(k int) (addr uintptr, ok bool) {
	if m.freelist == 0 {
		return 0, false
	}
	addr = m.freelist
	asanshim.Unpoison(unsafe.Pointer(addr), uintptr(1)<<uint(k))
	m.freelist = *(*uintptr)(unsafe.Pointer(addr))
	return addr, true
}

// localFree returns addr, a chunk of m's own currently owned page, to
// m's private freelist. No atomic operation, no lock: callers must
// have already established addr is within m's page (inPage) and that
// the freeing cpu is the one that owns m.
func (m *magazine) localFree(addr uintptr, k int) {
	*(*uintptr)(unsafe.Pointer(addr)) = m.freelist
	m.freelist = addr
	asanshim.Poison(unsafe.Pointer(addr), uintptr(1)<<uint(k))
}
