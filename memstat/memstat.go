// Package memstat implements the allocator's public, stable
// memory-introspection calls: total region size, bytes used, and
// pressure (used/size). All three are read-only and never mutate
// allocator state.
package memstat

import "github.com/joeycumines/go-shmslab/backbone"

// Status mirrors the embedding contract's status codes.
type Status int

const (
	// StatusOK indicates the call succeeded and *out was written.
	StatusOK Status = iota
	// StatusInvalidParameter indicates a nil output pointer.
	StatusInvalidParameter
	// StatusNotInitialized indicates the region is not attached.
	StatusNotInitialized
)

// GetSize writes the region's total configured byte size to *out.
// Unlike GetUsed/GetPressure, a nil region is not an error here — size
// is a static, compile-time-ish property callers may query even before
// the region header has anything written into it.
func GetSize(region *backbone.Region, out *uint64) Status {
	if out == nil {
		return StatusInvalidParameter
	}
	if region == nil {
		*out = 0
		return StatusOK
	}
	*out = region.Size()
	return StatusOK
}

// GetUsed writes the region's currently used bytes to *out.
func GetUsed(region *backbone.Region, out *uint64) Status {
	if out == nil {
		return StatusInvalidParameter
	}
	if region == nil {
		return StatusNotInitialized
	}
	*out = region.UsedBytes()
	return StatusOK
}

// GetPressure writes region.UsedBytes()/region.Size(), a value in (0,1],
// to *out.
func GetPressure(region *backbone.Region, out *float64) Status {
	if out == nil {
		return StatusInvalidParameter
	}
	if region == nil {
		return StatusNotInitialized
	}
	*out = region.Pressure()
	return StatusOK
}
