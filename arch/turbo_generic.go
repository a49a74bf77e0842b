//go:build !amd64

package arch

// HasTurboControl reports whether ConfigureTurbo/CheckTurbo are backed
// by a real FPU control register on this architecture, as opposed to
// the always-matching no-op fallback.
const HasTurboControl = false

// Non-amd64 targets have no wired-up turbo control yet; always report a
// match so callers enforcing a configured policy never spuriously abort.
func configureTurbo(enabled bool) {}

func checkTurbo(enabled bool) bool { return true }
