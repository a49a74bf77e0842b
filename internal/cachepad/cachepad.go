// Package cachepad provides cache-line padding helpers for hot,
// per-CPU data accessed by independent goroutines without
// synchronization. Unpadded neighboring elements of an array such as
// slab's per-CPU magazine table would otherwise share a cache line,
// so traffic on one CPU's magazine would force cache-coherency
// invalidation on its neighbors even though they touch disjoint
// memory.
package cachepad

// Size is the padding unit. 64 bytes is the common x86-64 line size;
// 128 covers Apple Silicon and other ARM64 parts with the largest
// common alignment.
const Size = 128

// Pad is an opaque trailing field of exactly Size bytes. Embed it after
// the hot fields, so the hot fields of neighboring array elements are at
// least Size bytes apart:
//
//	type slot struct {
//	    v uint64
//	    _ cachepad.Pad
//	}
//
// Pad is always Size bytes, so a padded struct is larger than Size by
// the size of its hot fields; cachepad does not shrink the pad to fit
// them, because Go array lengths in a generic struct must be
// compile-time constants, not a function of a type parameter's size.
type Pad [Size]byte
