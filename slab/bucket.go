package slab

import (
	"github.com/joeycumines/go-shmslab/backbone"
	"github.com/joeycumines/go-shmslab/spinlock"
)

// chunksPerPage returns how many k-sized chunks a single backbone page
// is divided into for a bucket of size class k.
func chunksPerPage(k int) int {
	return backbone.PageSize / (1 << uint(k))
}

// Page list-membership states, tracked in Bucket.state alongside the
// owner map so that a free() running concurrently with a refill() can
// tell, under mu, whether a page it is about to empty is currently
// linked into partial (and must be unlinked) or not linked anywhere
// (because some CPU's magazine claimed it straight off backbone and
// hasn't yet freed enough of it to ever touch a list).
const (
	pageUnlinked int8 = iota
	pagePartial
	pageFree
)

// Bucket is one power-of-two size class: a partial-page list, a
// capped fully-free-page cache, a slow locked magazine for cpu<0
// callers, and an array of per-CPU active-page magazines.
//
// mu guards list membership (partial/free) bookkeeping and the state
// array together; the (Freelist, Inuse) pair on any given Record is
// updated independently via casPairRecord. A page is linked into at
// most one of {partial, free} at a time, and refill() always unlinks
// it (PopFront) and resets its state before handing it to a magazine.
// A remote free that takes a magazine's page from Inuse=N to N-1 links
// that page into partial while the magazine still holds it as its
// current page.
type Bucket struct {
	k       int
	region  *backbone.Region
	owner   []int8 // shared with Allocator.owner; indexed by region.PageIndex
	state   []int8 // shared with Allocator.state; indexed by region.PageIndex
	mu      spinlock.Lock
	partial backbone.List
	free    backbone.List
	freeN   int

	mag  [NRCPUs]magazine
	slow magazine
	// slowMu guards slow's ownership transitions (refill/drain) the same
	// way a real per-CPU magazine is implicitly guarded by only ever
	// running on its own CPU; cpu<0 callers share one magazine instead
	// of one per negative id, so they need an explicit lock.
	slowMu spinlock.Lock
}

func (b *Bucket) magazineFor(cpu int) (*magazine, *spinlock.Lock) {
	if cpu < 0 || cpu >= NRCPUs {
		return &b.slow, &b.slowMu
	}
	return &b.mag[cpu], nil
}
