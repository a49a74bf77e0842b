// Package spinlock implements a single-word spinlock suitable for memory
// shared across processes: Lock and Unlock reduce to plain atomic
// instructions on the backing word, so two processes mapping the same
// bytes can contend on the same Lock value correctly, with no kernel
// object to share.
package spinlock

import (
	"sync/atomic"

	"github.com/joeycumines/go-shmslab/arch"
)

// Lock is an unfair spinlock. Zero value is unlocked. There is no
// fairness guarantee; contention is expected to be short-lived, which
// holds for the allocator's region mutex and per-bucket locks.
type Lock struct {
	state int32
}

// Lock acquires the lock, spinning until it does.
func (l *Lock) Lock() {
	if atomic.CompareAndSwapInt32(&l.state, 0, 1) {
		return
	}
	l.lockSlow()
}

func (l *Lock) lockSlow() {
	for {
		for atomic.LoadInt32(&l.state) != 0 {
			arch.SpinHint()
		}
		if atomic.CompareAndSwapInt32(&l.state, 0, 1) {
			arch.SpinHintRelease()
			return
		}
	}
}

// TryLock attempts to acquire the lock without spinning, reporting
// whether it succeeded.
func (l *Lock) TryLock() bool {
	return atomic.CompareAndSwapInt32(&l.state, 0, 1)
}

// Unlock releases the lock. Unlocking an already-unlocked Lock is
// undefined, same as sync.Mutex.
func (l *Lock) Unlock() {
	atomic.StoreInt32(&l.state, 0)
}
