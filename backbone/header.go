package backbone

import "github.com/joeycumines/go-shmslab/spinlock"

// HeaderExtraBytes is reserved, unstructured space at the tail of the
// fixed region header for higher-tier state — concretely, the slab
// package's bucket array. Reserving it here means backbone need not
// import slab to describe the header's full on-region layout, and slab
// need not duplicate backbone's region-attach/layout bookkeeping; the
// slab package carves its bucket array out of this extension the same
// way backbone carves its own metadata array out of the raw region.
const HeaderExtraBytes = 1 << 16 // 64KiB

// Header is the fixed-offset-zero control block of an attached region:
// the cross-process mutex, the free-page list, and the reserved
// extension area for the slab layer. Because the region may back shared
// memory mapped by more than one process, Header's mutex is a plain
// spinlock rather than an OS mutex object — atomic instructions on
// shared bytes behave identically no matter which process executes
// them, whereas a pthread_mutex would need PTHREAD_PROCESS_SHARED
// plumbing this module deliberately avoids (see DESIGN.md).
type Header struct {
	mu    spinlock.Lock
	free  List
	extra [HeaderExtraBytes]byte
}
