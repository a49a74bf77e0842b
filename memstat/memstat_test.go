package memstat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/go-shmslab/backbone"
)

func newRegion(t *testing.T, size int) *backbone.Region {
	t.Helper()
	r, err := backbone.Init(backbone.NewAlignedBuffer(size), true)
	require.NoError(t, err)
	return r
}

func TestInvalidParameter(t *testing.T) {
	r := newRegion(t, 1<<20)
	assert.Equal(t, StatusInvalidParameter, GetSize(r, nil))
	assert.Equal(t, StatusInvalidParameter, GetUsed(r, nil))
	assert.Equal(t, StatusInvalidParameter, GetPressure(r, nil))
}

func TestNotInitialized(t *testing.T) {
	var used uint64
	var pressure float64
	assert.Equal(t, StatusNotInitialized, GetUsed(nil, &used))
	assert.Equal(t, StatusNotInitialized, GetPressure(nil, &pressure))

	var size uint64
	assert.Equal(t, StatusOK, GetSize(nil, &size))
	assert.Zero(t, size)
}

func TestHappyPath(t *testing.T) {
	r := newRegion(t, 1<<20)

	var size, used uint64
	var pressure float64

	require.Equal(t, StatusOK, GetSize(r, &size))
	require.Equal(t, StatusOK, GetUsed(r, &used))
	require.Equal(t, StatusOK, GetPressure(r, &pressure))

	assert.EqualValues(t, 1<<20, size)
	assert.Greater(t, used, uint64(0))
	assert.Greater(t, pressure, 0.0)
	assert.Less(t, pressure, 1.0)
}

func TestIdempotent(t *testing.T) {
	r := newRegion(t, 1<<20)
	var p1, p2 float64
	require.Equal(t, StatusOK, GetPressure(r, &p1))
	require.Equal(t, StatusOK, GetPressure(r, &p2))
	assert.Equal(t, p1, p2)
}
