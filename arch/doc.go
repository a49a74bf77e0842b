// Package arch collects the small set of architecture-specific primitives
// the allocator needs: a busy-wait spin hint, an optional hardware
// double-word compare-and-swap (DWCAS), and an optional per-thread FPU
// "turbo" control (flush-to-zero / denormals-are-zero). Every primitive
// has a portable fallback, selected at compile time via build tags, so
// the allocator always builds regardless of target architecture.
package arch
