package arch

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestSpinHint(t *testing.T) {
	// Spin hints must never panic and must be safe to call back-to-back;
	// this is the entire contract on architectures with no hint at all.
	for i := 0; i < 64; i++ {
		SpinHint()
	}
	SpinHintRelease()
}

func TestCurrentFeatures(t *testing.T) {
	f := CurrentFeatures()
	assert.NotEmpty(t, f.Arch)
	assert.Equal(t, HasHardwareDWCAS, f.HasHardwareDWCAS)
	assert.Equal(t, HasTurboControl, f.HasTurboControl)
}

func TestTurboRoundTrip(t *testing.T) {
	ConfigureTurbo(true)
	assert.True(t, CheckTurbo(true))

	ConfigureTurbo(false)
	assert.True(t, CheckTurbo(false))
}

func TestCompareAndSwapPair(t *testing.T) {
	if !HasHardwareDWCAS {
		t.Skip("no hardware DWCAS on this build; CompareAndSwapPair must not be called")
	}

	type pair struct {
		lo uint64
		hi uint64
	}
	// align to 16 bytes: allocate extra and round the pointer up.
	buf := make([]uint64, 4)
	p := (*pair)(unsafe.Pointer(&buf[0]))
	if uintptr(unsafe.Pointer(p))%16 != 0 {
		p = (*pair)(unsafe.Pointer(&buf[1]))
	}

	p.lo, p.hi = 1, 2

	ok := CompareAndSwapPair(unsafe.Pointer(p), 1, 2, 3, 4)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), p.lo)
	assert.Equal(t, uint64(4), p.hi)

	ok = CompareAndSwapPair(unsafe.Pointer(p), 1, 2, 5, 6)
	assert.False(t, ok)
	assert.Equal(t, uint64(3), p.lo)
	assert.Equal(t, uint64(4), p.hi)
}
