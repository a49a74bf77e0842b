package arch

// ConfigureTurbo sets the current OS thread's FPU such that subnormal
// inputs and outputs are flushed to zero when enabled is true, and
// restores IEEE-754-conformant subnormal handling when false. On
// architectures with no such control, this is a no-op.
//
// Go reuses OS threads across goroutines, so this setting is only
// meaningful for goroutines locked to their OS thread with
// runtime.LockOSThread; callers are responsible for that.
func ConfigureTurbo(enabled bool) { configureTurbo(enabled) }

// CheckTurbo reports whether the current OS thread's live FPU state
// matches enabled. Architectures with no turbo concept always report a
// match.
func CheckTurbo(enabled bool) bool { return checkTurbo(enabled) }
