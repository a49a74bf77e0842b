//go:build asan && cgo

package asanshim

/*
#cgo CFLAGS: -fsanitize=address
#cgo LDFLAGS: -fsanitize=address

#include <stddef.h>

void __asan_poison_memory_region(void const volatile *addr, size_t size);
void __asan_unpoison_memory_region(void const volatile *addr, size_t size);
*/
import "C"
import "unsafe"

// Poison marks [addr, addr+size) as unaddressable to the address
// sanitizer. Not guaranteed to poison every byte in range due to ASan's
// own internal alignment restrictions.
func Poison(addr unsafe.Pointer, size uintptr) {
	C.__asan_poison_memory_region(addr, C.size_t(size))
}

// Unpoison marks [addr, addr+size) as addressable again.
func Unpoison(addr unsafe.Pointer, size uintptr) {
	C.__asan_unpoison_memory_region(addr, C.size_t(size))
}
