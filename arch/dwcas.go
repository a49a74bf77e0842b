package arch

import "unsafe"

// HasHardwareDWCAS reports whether CompareAndSwapPair is backed by a real
// double-word compare-and-swap instruction on this build. When false,
// callers must not call CompareAndSwapPair; they must instead emulate
// (freelist, inuse)-pair atomicity with an external per-record lock, per
// the allocator's documented DWCAS-vs-spinlock fallback contract.
var HasHardwareDWCAS = hasHardwareDWCAS

// CompareAndSwapPair atomically compares the 16-byte-aligned (lo, hi)
// 128-bit word pair at addr against (oldLo, oldHi); on match it stores
// (newLo, newHi) and reports true, otherwise it reports false and leaves
// the memory at addr unchanged. addr must be 16-byte aligned. Valid to
// call only when HasHardwareDWCAS is true.
func CompareAndSwapPair(addr unsafe.Pointer, oldLo, oldHi, newLo, newHi uint64) bool {
	return compareAndSwapPair(addr, oldLo, oldHi, newLo, newHi)
}
