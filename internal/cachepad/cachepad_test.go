package cachepad

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestPadSize(t *testing.T) {
	var p Pad
	assert.EqualValues(t, Size, unsafe.Sizeof(p))
}

func TestPaddedStructReachesCacheLine(t *testing.T) {
	type slot struct {
		v uint64
		_ Pad
	}
	var s slot
	assert.GreaterOrEqual(t, unsafe.Sizeof(s), uintptr(Size))
}
