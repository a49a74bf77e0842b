package backbone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegion(t *testing.T, size int) *Region {
	t.Helper()
	buf := NewAlignedBuffer(size)
	r, err := Init(buf, true)
	require.NoError(t, err)
	return r
}

func TestInitSizesAndPressure(t *testing.T) {
	const size = 1 << 30 // 1 GiB
	r := newTestRegion(t, size)

	assert.EqualValues(t, size, r.Size())
	assert.Greater(t, r.UsedBytes(), uint64(0))

	p := r.Pressure()
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)
}

func TestBallocIncreasesPressure(t *testing.T) {
	r := newTestRegion(t, 1<<20)
	before := r.Pressure()

	var recs []*Record
	for i := 0; i < 100; i++ {
		rec := r.Balloc()
		require.NotNil(t, rec)
		assert.NotZero(t, rec.Addr())
		recs = append(recs, rec)
	}

	// all distinct addresses
	seen := make(map[uintptr]bool, len(recs))
	for _, rec := range recs {
		assert.False(t, seen[rec.Addr()])
		seen[rec.Addr()] = true
	}

	after := r.Pressure()
	assert.Greater(t, after, before)
}

func TestBallocExhaustionIsStable(t *testing.T) {
	r := newTestRegion(t, 1<<20)

	n := int((r.Size() - r.UsedBytes()) / PageSize)
	for i := 0; i < n; i++ {
		require.NotNil(t, r.Balloc())
	}

	assert.Nil(t, r.Balloc())
	assert.Nil(t, r.Balloc())
	assert.InDelta(t, 1.0, r.Pressure(), 1e-9)
}

func TestBfreeDecreasesPressure(t *testing.T) {
	r := newTestRegion(t, 1<<20)
	initial := r.Pressure()

	var recs []*Record
	for i := 0; i < 100; i++ {
		recs = append(recs, r.Balloc())
	}
	mid := r.Pressure()
	assert.Greater(t, mid, initial)

	for _, rec := range recs {
		r.Bfree(rec)
	}
	final := r.Pressure()

	assert.Less(t, final, mid)
	assert.Greater(t, final, 0.0)
}

func TestPageForAddrRoundTrip(t *testing.T) {
	r := newTestRegion(t, 1<<20)
	rec := r.Balloc()
	require.NotNil(t, rec)

	found := r.PageForAddr(rec.Addr())
	assert.Same(t, rec, found)

	found = r.PageForAddr(rec.Addr() + 1)
	assert.Same(t, rec, found)

	assert.Nil(t, r.PageForAddr(0))
}

func TestGetCallsDoNotMutateState(t *testing.T) {
	r := newTestRegion(t, 1<<20)
	before := r.Pressure()
	for i := 0; i < 10; i++ {
		_ = r.Size()
		_ = r.UsedBytes()
		_ = r.Pressure()
	}
	assert.Equal(t, before, r.Pressure())
}

func TestAttachBindsToExistingState(t *testing.T) {
	buf := NewAlignedBuffer(1 << 20)
	first, err := Init(buf, true)
	require.NoError(t, err)

	rec := first.Balloc()
	require.NotNil(t, rec)
	usedAfterBalloc := first.UsedBytes()

	second, err := Init(buf, false)
	require.NoError(t, err)

	assert.Equal(t, usedAfterBalloc, second.UsedBytes())

	// the second attacher observes the same free list: a further balloc
	// from either handle must not reuse rec's page.
	rec2 := second.Balloc()
	require.NotNil(t, rec2)
	assert.NotEqual(t, rec.Addr(), rec2.Addr())
}
