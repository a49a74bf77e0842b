//go:build unix

package shmregion

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// openPlatform implements Open on unix-family targets using a named,
// file-backed MAP_SHARED mapping: the same scheme POSIX shm_open
// provides, built directly on golang.org/x/sys/unix so this module
// stays cgo-free. O_CREAT|O_EXCL is the attach-or-create race decider:
// whichever process wins the exclusive create is the first attacher
// and must size the file with Ftruncate before anyone maps it.
func openPlatform(cfg Config) (*Segment, error) {
	path := cfg.path()

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL, 0o600)
	created := err == nil
	if err != nil {
		if !errors.Is(err, unix.EEXIST) {
			return nil, fmt.Errorf("shmregion: create %s: %w", path, err)
		}
		fd, err = unix.Open(path, unix.O_RDWR, 0o600)
		if err != nil {
			return nil, fmt.Errorf("shmregion: open %s: %w", path, err)
		}
	}
	defer unix.Close(fd)

	if created {
		if err := unix.Ftruncate(fd, int64(cfg.Size)); err != nil {
			return nil, fmt.Errorf("shmregion: ftruncate %s to %d: %w", path, cfg.Size, err)
		}
	}

	size := cfg.Size
	if !created {
		var st unix.Stat_t
		if err := unix.Fstat(fd, &st); err != nil {
			return nil, fmt.Errorf("shmregion: stat %s: %w", path, err)
		}
		size = int(st.Size)
	}

	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("shmregion: mmap %s: %w", path, err)
	}

	return &Segment{
		buf:     data,
		created: created,
		closer:  func() error { return unix.Munmap(data) },
	}, nil
}
