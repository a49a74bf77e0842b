// Package backbone is the allocator's tier-one page store: it carves a
// fixed, externally supplied byte range into fixed-size pages and hands
// them out one at a time under a coarse lock. The region may be attached
// by more than one process mapping the same bytes; the first attacher
// initializes the header, metadata array, and free-page list, and every
// subsequent attacher binds to that existing state without writing.
package backbone
