// Package shmregion backs a backbone.Region with a real OS-level shared
// memory segment instead of an in-process []byte, so the "first
// attacher initializes, subsequent attachers bind" contract in
// backbone.Init has an actual cross-process transport to exercise. On
// unix-family platforms this is a POSIX-shm-style named mapping under
// MAP_SHARED; elsewhere it falls back to an ordinary process-local
// buffer (see segment_other.go), since this module otherwise has no
// portable, cgo-free way to share memory across processes.
package shmregion
