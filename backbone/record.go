package backbone

import "github.com/joeycumines/go-shmslab/spinlock"

// Record is one page's bookkeeping entry, stored in the region's
// metadata array. Freelist and Inuse occupy the first 16 bytes of the
// struct so the pair can be updated with a single double-word
// compare-and-swap on builds with hardware DWCAS support; field order
// must not change without re-checking that every array element stays
// 16-byte aligned (see computeLayout and the padding field below).
type Record struct {
	Freelist uintptr // address of the first free object in the page, or 0
	Inuse    uint64  // chunks currently allocated out of this page, in [0,N]

	next, prev *Record // intrusive hook for backbone free-list / bucket lists
	addr       uintptr // base address of the owned page, valid in this process

	fallback spinlock.Lock // guards (Freelist,Inuse) when arch.HasHardwareDWCAS is false
	_        [4]byte       // pad fallback out to 8B, keeping sizeof(Record)%16==0
}

// Addr returns the base address of the page this record owns.
func (r *Record) Addr() uintptr { return r.addr }

// CompareAndSwapPair performs the fallback (Freelist,Inuse) pair update,
// guarded by this record's own spinlock, for builds without hardware
// DWCAS. It is never called on builds where arch.HasHardwareDWCAS is
// true — those instead issue a real DWCAS against &r.Freelist directly.
func (r *Record) CompareAndSwapPair(oldFreelist uintptr, oldInuse uint64, newFreelist uintptr, newInuse uint64) bool {
	r.fallback.Lock()
	defer r.fallback.Unlock()
	if r.Freelist == oldFreelist && r.Inuse == oldInuse {
		r.Freelist = newFreelist
		r.Inuse = newInuse
		return true
	}
	return false
}
