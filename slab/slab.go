package slab

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/rs/zerolog"

	"github.com/joeycumines/go-shmslab/arch"
	"github.com/joeycumines/go-shmslab/asanshim"
	"github.com/joeycumines/go-shmslab/backbone"
)

// Allocator is the tier-two, size-classed object allocator layered on
// top of a backbone.Region. It carves the region's header extension
// area into its Buckets array the first time it is initialized in a
// region, mirroring backbone.Region's own "first attacher initializes"
// contract.
type Allocator struct {
	region  *backbone.Region
	buckets *[Buckets]Bucket
	// owner records which bucket each backbone page currently belongs
	// to (as an index into buckets), or -1 for a page not currently
	// owned by any bucket. It lives in the region's header extension
	// alongside the bucket array itself, so every attacher (including
	// ones in other processes sharing the region) sees the same
	// mapping, and Free can assert a caller's claimed size class
	// against the page's actual owner instead of trusting it blindly.
	owner []int8
	state []int8
	log   zerolog.Logger
	// turboPolicy is nil when the FPU turbo self-check (WithTurboPolicy)
	// is disabled, the default. Otherwise it points at the required
	// enabled/disabled state.
	turboPolicy *bool
}

const noOwner int8 = -1

// Option configures optional Allocator behavior.
type Option func(*Allocator)

// WithLogger attaches a logger used only for cold-path events: bucket
// initialization and free-page-list spills back to the backbone.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Allocator) { a.log = log }
}

// WithTurboPolicy enables a self-check, at the entry and exit of every
// Alloc/Free call, that the calling goroutine's OS thread has its FPU
// turbo (flush-to-zero/denormals-are-zero) state set to enabled. A
// mismatch panics rather than silently running with the wrong FPU
// policy. Off by default: most callers have no turbo policy to
// enforce, and the check costs a control-register read on every call.
func WithTurboPolicy(enabled bool) Option {
	return func(a *Allocator) { a.turboPolicy = &enabled }
}

// checkTurboPolicy panics if a turbo policy is configured and the
// live FPU state no longer matches it.
func (a *Allocator) checkTurboPolicy() {
	if a.turboPolicy != nil && !arch.CheckTurbo(*a.turboPolicy) {
		panic("slab: FPU turbo state does not match the configured policy")
	}
}

// Init attaches an Allocator to region. When initialize is true the
// caller is the first attacher and the bucket array is zeroed and
// bound to each size class; when false, the region's existing bucket
// array (previously written by another attacher) is reused as-is.
func Init(region *backbone.Region, initialize bool, opts ...Option) (*Allocator, error) {
	bucketsSize := unsafe.Sizeof([Buckets]Bucket{})
	pageCount := region.PageCount()
	if bucketsSize+2*uintptr(pageCount) > backbone.HeaderExtraBytes {
		return nil, fmt.Errorf("slab: bucket array + %d-page owner/state maps exceed %d-byte header extension",
			pageCount, backbone.HeaderExtraBytes)
	}

	ownerOff := bucketsSize
	stateOff := bucketsSize + uintptr(pageCount)
	a := &Allocator{
		region:  region,
		buckets: (*[Buckets]Bucket)(region.HeaderExtra()),
		owner:   unsafe.Slice((*int8)(unsafe.Add(region.HeaderExtra(), ownerOff)), pageCount),
		state:   unsafe.Slice((*int8)(unsafe.Add(region.HeaderExtra(), stateOff)), pageCount),
	}
	for _, opt := range opts {
		opt(a)
	}

	if initialize {
		for i := range a.buckets {
			a.buckets[i] = Bucket{k: MinK + i, region: region, owner: a.owner, state: a.state}
		}
		for i := range a.owner {
			a.owner[i] = noOwner
			a.state[i] = pageUnlinked
		}
		a.log.Debug().Int("buckets", Buckets).Int("pages", pageCount).Msg("slab: allocator initialized")
	} else {
		for i := range a.buckets {
			a.buckets[i].region = region
			a.buckets[i].owner = a.owner
			a.buckets[i].state = a.state
		}
		a.log.Debug().Msg("slab: allocator attached")
	}

	return a, nil
}

// initPageFreelist threads rec's owned page into a singly-linked chain
// of chunkSize-byte free chunks and sets rec to the all-free state.
// Called only on a freshly balloc'd page, which has no other attacher;
// pages popped off a bucket's free list keep their existing chain.
func initPageFreelist(rec *backbone.Record, k int) {
	chunkSize := uintptr(1) << uint(k)
	n := chunksPerPage(k)
	base := rec.Addr()
	asanshim.Unpoison(unsafe.Pointer(base), uintptr(n)*chunkSize)
	var next uintptr
	for i := n - 1; i >= 0; i-- {
		addr := base + uintptr(i)*chunkSize
		*(*uintptr)(unsafe.Pointer(addr)) = next
		next = addr
	}
	asanshim.Poison(unsafe.Pointer(base), uintptr(n)*chunkSize)
	rec.Freelist = next
	rec.Inuse = 0
}

// claimExclusivePage transfers rec — known to have no other attacher,
// either freshly balloc'd or popped off a bucket's free list — into
// magazine ownership: its existing freelist chain becomes the
// magazine's private freelist, and rec itself is stamped to the
// frozen (Freelist=0, Inuse=N) state magazine-owned pages must show to
// any remote observer. No CAS needed: nothing else can be touching rec
// concurrently.
func claimExclusivePage(rec *backbone.Record, k int) uintptr {
	freelist := rec.Freelist
	rec.Freelist = 0
	rec.Inuse = uint64(chunksPerPage(k))
	return freelist
}

// claimPartialPage transfers rec — just popped off the partial list,
// still reachable by racing remote frees that don't need the bucket
// lock while 0 < inuse < N — into magazine ownership via a DWCAS retry
// loop. Called with the bucket lock held, since a concurrent refill on
// another CPU must not also steal rec.
func claimPartialPage(rec *backbone.Record, k int) uintptr {
	n := uint64(chunksPerPage(k))
	for {
		freelist := atomic.LoadUintptr(&rec.Freelist)
		inuse := atomic.LoadUint64(&rec.Inuse)
		if casPairRecord(rec, freelist, inuse, 0, n) {
			return freelist
		}
	}
}

// refill gives m ownership of a page with at least one free chunk,
// trying in order: (1) steal a page off the partial list, (2) claim a
// whole free page off the free-page cache, (3) balloc a fresh page
// from the backbone. Reports false only when all three are exhausted,
// which the caller surfaces as a null allocation rather than a panic.
func (b *Bucket) refill(m *magazine) bool {
	b.mu.Lock()
	if rec := b.partial.PopFront(); rec != nil {
		// Unlinked from partial: until rec next transitions back to
		// full or to empty, free() must not treat it as a member of
		// either list.
		b.state[b.region.PageIndex(rec)] = pageUnlinked
		freelist := claimPartialPage(rec, b.k)
		b.mu.Unlock()
		m.rec = rec
		m.freelist = freelist
		return true
	}
	if rec := b.free.PopFront(); rec != nil {
		b.freeN--
		b.state[b.region.PageIndex(rec)] = pageUnlinked
		b.mu.Unlock()
		freelist := claimExclusivePage(rec, b.k)
		m.rec = rec
		m.freelist = freelist
		return true
	}
	b.mu.Unlock()

	rec := b.region.Balloc()
	if rec == nil {
		return false
	}
	initPageFreelist(rec, b.k)
	idx := b.region.PageIndex(rec)
	b.owner[idx] = int8(b.k - MinK)
	b.state[idx] = pageUnlinked
	freelist := claimExclusivePage(rec, b.k)
	m.rec = rec
	m.freelist = freelist
	return true
}

// alloc returns one 2^k-byte object from the bucket of size class k on
// behalf of logical CPU cpu, or 0 if the backbone is exhausted. A refill
// that leaves the magazine with no chunk to pop panics.
func (a *Allocator) alloc(k int, cpu int) uintptr {
	b := &a.buckets[k-MinK]
	m, lock := b.magazineFor(cpu)
	if lock != nil {
		lock.Lock()
		defer lock.Unlock()
	}
	if addr, ok := m.pop(k); ok {
		return addr
	}
	if !b.refill(m) {
		return 0
	}
	addr, ok := m.pop(k)
	if !ok {
		panic("slab: magazine refill produced no free chunk")
	}
	return addr
}

// free returns the object at addr, of size class k, to its owning
// bucket, on behalf of logical CPU cpu. If cpu owns a magazine whose
// currently cached page contains addr, this is a local free: push
// addr onto that magazine's private freelist, no atomic operation, no
// lock. Otherwise it is a remote free, arbitrated through the page
// Record's (Freelist, Inuse) pair via DWCAS — also always the case for
// cpu < 0, which never gets a local fast path, mirroring bucket_free's
// `cpu >= 0 && ...` guard.
func (a *Allocator) free(k int, addr uintptr, cpu int) {
	b := &a.buckets[k-MinK]
	rec := a.region.PageForAddr(addr)
	if rec == nil {
		panic("slab: free of address outside the attached region")
	}
	if owned := a.owner[a.region.PageIndex(rec)]; owned != int8(k-MinK) {
		panic("slab: free size class does not match the page's owning bucket")
	}

	if cpu >= 0 && cpu < NRCPUs {
		if m := &b.mag[cpu]; m.inPage(addr) {
			m.localFree(addr, k)
			return
		}
	}

	chunkSize := uintptr(1) << uint(k)
	n := chunksPerPage(b.k)

	for {
		freelist := atomic.LoadUintptr(&rec.Freelist)
		inuse := atomic.LoadUint64(&rec.Inuse)
		// Speculative lock: acquired before the CAS attempt, and only
		// for the two transitions that also move rec between bucket
		// lists (about to become empty, or about to leave the fully-
		// allocated state for the first time), mirroring the source's
		// bucket_free. Every other free only needs the CAS itself.
		needsLock := inuse == 1 || inuse == uint64(n)
		if needsLock {
			b.mu.Lock()
		}
		*(*uintptr)(unsafe.Pointer(addr)) = freelist
		asanshim.Poison(unsafe.Pointer(addr), chunkSize)
		if !casPairRecord(rec, freelist, inuse, addr, inuse-1) {
			asanshim.Unpoison(unsafe.Pointer(addr), chunkSize)
			if needsLock {
				b.mu.Unlock()
			}
			continue
		}
		if needsLock {
			idx := a.region.PageIndex(rec)
			if inuse-1 == 0 {
				if b.state[idx] == pagePartial {
					b.partial.Remove(rec)
				}
				b.free.PushFront(rec)
				b.state[idx] = pageFree
				b.freeN++
				if b.freeN > MaxFreePages {
					victim := b.free.PopFront()
					b.freeN--
					vidx := a.region.PageIndex(victim)
					b.state[vidx] = pageUnlinked
					a.owner[vidx] = noOwner
					a.region.Bfree(victim)
					a.log.Debug().Msg("slab: free-page cache spilled to backbone")
				}
			} else {
				b.partial.PushFront(rec)
				b.state[idx] = pagePartial
			}
			b.mu.Unlock()
		}
		return
	}
}

// Alloc returns a pointer to a freshly allocated object of size bytes,
// drawn from the smallest bucket able to hold it, using cpu's magazine.
// cpu should be a stable logical id in [0, NRCPUs); cpu<0 (or >=NRCPUs)
// routes through a shared, locked slow magazine instead. Returns nil if
// size exceeds MaxObjectSize or the backbone is exhausted.
func (a *Allocator) Alloc(size uintptr, cpu int) unsafe.Pointer {
	a.checkTurboPolicy()
	defer a.checkTurboPolicy()
	k, ok := sizeClass(size)
	if !ok {
		return nil
	}
	addr := a.alloc(k, cpu)
	if addr == 0 {
		return nil
	}
	return unsafe.Pointer(addr)
}

// Free returns an object previously returned by Alloc(size, ...) back
// to its bucket, on behalf of logical CPU cpu. cpu should be the
// caller's own stable logical id, the same space Alloc's cpu argument
// is drawn from; it need not match the cpu the object was originally
// allocated with. size must exactly match the size originally passed
// to Alloc; a mismatched size class panics, since it can only indicate
// caller corruption or a freed/already-freed double-free.
func (a *Allocator) Free(p unsafe.Pointer, size uintptr, cpu int) {
	a.checkTurboPolicy()
	defer a.checkTurboPolicy()
	k, ok := sizeClass(size)
	if !ok {
		panic("slab: free with out-of-range size")
	}
	a.free(k, uintptr(p), cpu)
}
