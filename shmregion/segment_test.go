package shmregion

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsNonPositiveSize(t *testing.T) {
	_, err := Open(Config{Size: 0})
	assert.Error(t, err)
}

func TestOpenFirstAttacherCreates(t *testing.T) {
	seg, err := Open(Config{Path: filepath.Join(t.TempDir(), "region"), Size: 1 << 16})
	require.NoError(t, err)
	defer seg.Close()

	assert.True(t, seg.Created())
	assert.Len(t, seg.Bytes(), 1<<16)
}

func TestOpenWritesAreVisibleThroughBytes(t *testing.T) {
	seg, err := Open(Config{Path: filepath.Join(t.TempDir(), "region"), Size: 4096})
	require.NoError(t, err)
	defer seg.Close()

	buf := seg.Bytes()
	buf[0] = 0x42
	buf[len(buf)-1] = 0x7f
	assert.EqualValues(t, 0x42, seg.Bytes()[0])
	assert.EqualValues(t, 0x7f, seg.Bytes()[len(buf)-1])
}
