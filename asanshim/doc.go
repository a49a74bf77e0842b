// Package asanshim provides the allocator's two address-sanitizer
// annotations: Poison marks a byte range as unaddressable, Unpoison
// marks it addressable again. With the "asan" build tag and cgo, both
// delegate to the real compiler-rt entry points; otherwise both are
// no-ops, and callers must tolerate either behavior.
package asanshim
