package backbone

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestComputeLayoutAlignment(t *testing.T) {
	lo := computeLayout(1 << 20)
	assert.Zero(t, lo.metadataOffset%align16)
	assert.Zero(t, lo.pagesOffset%PageSize)
	assert.Greater(t, lo.pageCount, 0)
}

func TestRecordSizeIsDWCASAligned(t *testing.T) {
	// Every element of the metadata array must independently satisfy the
	// 16-byte alignment CMPXCHG16B/CASP require, not just the first.
	assert.Zero(t, unsafe.Sizeof(Record{})%16)
}

func TestComputeLayoutTooSmall(t *testing.T) {
	lo := computeLayout(unsafe.Sizeof(Header{}))
	assert.LessOrEqual(t, lo.pageCount, 0)
}
