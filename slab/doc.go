// Package slab is the allocator's tier-two object allocator: size-class
// buckets at power-of-two granularity, each with a per-CPU magazine
// cache in front of a partial/free page list pair, backed by a
// backbone.Region for whole pages. Allocation from, and local free into,
// a per-CPU magazine takes no lock (callers with cpu<0 share one locked
// slow magazine). Cross-CPU frees and refills from the partial list
// update each page's (Freelist, Inuse) pair with a double-word
// compare-and-swap; refills, and the cross-CPU frees that move a page
// between bucket lists, also take the bucket's lock.
package slab
