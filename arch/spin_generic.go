//go:build !amd64

package arch

import "runtime"

// spinHint has no dedicated hardware instruction on this architecture;
// yielding the P lets the scheduler run whichever goroutine is holding
// the lock instead of burning the core spinning.
func spinHint() { runtime.Gosched() }

func spinHintRelease() {}
