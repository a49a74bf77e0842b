//go:build unix

package shmregion

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondOpenAttachesToExistingSegment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region")

	first, err := Open(Config{Path: path, Size: 1 << 16})
	require.NoError(t, err)
	defer first.Close()
	require.True(t, first.Created())

	first.Bytes()[100] = 0xab

	second, err := Open(Config{Path: path, Size: 1 << 16})
	require.NoError(t, err)
	defer second.Close()

	assert.False(t, second.Created())
	assert.Len(t, second.Bytes(), 1<<16)
	assert.EqualValues(t, 0xab, second.Bytes()[100])
}
