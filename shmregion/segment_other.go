//go:build !unix

package shmregion

import "github.com/joeycumines/go-shmslab/backbone"

// openPlatform falls back to a process-local buffer on non-unix
// targets, where this module has no cgo-free shared memory primitive.
// Every Open call "creates" its own segment; two processes (or two
// Open calls) never actually share bytes here, unlike segment_unix.go.
func openPlatform(cfg Config) (*Segment, error) {
	return &Segment{
		buf:     backbone.NewAlignedBuffer(cfg.Size),
		created: true,
		closer:  nil,
	}, nil
}
