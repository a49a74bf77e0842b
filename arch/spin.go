package arch

// SpinHint yields hardware resources to sibling threads inside a busy-wait
// loop. Cheap and safe to call on every iteration of a contended spin.
func SpinHint() { spinHint() }

// SpinHintRelease signals exit from a busy-wait, undoing whatever
// SpinHint set up. Call it once, after the lock is finally acquired.
func SpinHintRelease() { spinHintRelease() }
