//go:build !asan

package asanshim

import "unsafe"

// Poison marks [addr, addr+size) as unaddressable. No-op in this build.
func Poison(addr unsafe.Pointer, size uintptr) {}

// Unpoison marks [addr, addr+size) as addressable. No-op in this build.
func Unpoison(addr unsafe.Pointer, size uintptr) {}
