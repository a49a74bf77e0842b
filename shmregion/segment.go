package shmregion

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config describes the shared memory segment to open.
type Config struct {
	// Path names the backing file. Every process that wants to share
	// the same region must pass the same Path. If empty, a default
	// under os.TempDir() is used, suitable only for processes sharing
	// a single machine's default temp directory.
	Path string

	// Size is the total segment size in bytes. Ignored by attachers
	// binding to an already-created segment; the existing size wins.
	Size int
}

func (c Config) path() string {
	if c.Path != "" {
		return c.Path
	}
	return filepath.Join(os.TempDir(), "go-shmslab.region")
}

// Segment is an opened shared memory mapping, attached by exactly one
// process-local handle. Bytes returns the mapped buffer, valid for use
// with backbone.Init until Close.
type Segment struct {
	buf     []byte
	created bool
	closer  func() error
}

// Bytes returns the mapped region buffer.
func (s *Segment) Bytes() []byte { return s.buf }

// Created reports whether this call created the segment (true) or
// attached to one created previously by another Open call, possibly in
// a different process (false). Callers pass this straight through to
// backbone.Init's initialize parameter.
func (s *Segment) Created() bool { return s.created }

// Close unmaps the segment. It does not delete the backing file, so
// other attachers (or this process, opening it again later) keep
// seeing the same content.
func (s *Segment) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// Open attaches to the shared memory segment described by cfg,
// creating it if this is the first attacher.
func Open(cfg Config) (*Segment, error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("shmregion: size must be positive, got %d", cfg.Size)
	}
	return openPlatform(cfg)
}
