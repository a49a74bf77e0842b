package slab

import (
	"unsafe"

	"github.com/joeycumines/go-shmslab/arch"
	"github.com/joeycumines/go-shmslab/backbone"
)

// casPairRecord atomically transitions rec's (Freelist, Inuse) pair from
// (oldFreelist, oldInuse) to (newFreelist, newInuse), using a real
// double-word CAS when the build has hardware support and rec's own
// fallback spinlock otherwise. Both paths give the same linearization
// point: the pair changes together, or not at all.
func casPairRecord(rec *backbone.Record, oldFreelist uintptr, oldInuse uint64, newFreelist uintptr, newInuse uint64) bool {
	if arch.HasHardwareDWCAS {
		return arch.CompareAndSwapPair(
			unsafe.Pointer(&rec.Freelist),
			uint64(oldFreelist), oldInuse,
			uint64(newFreelist), newInuse,
		)
	}
	return rec.CompareAndSwapPair(oldFreelist, oldInuse, newFreelist, newInuse)
}
