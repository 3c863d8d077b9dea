package fs

import (
	"sync"

	"ptfs/internal/host"
)

// FileHandle is an open host file owned by the dispatcher between
// Open/Create and Release. Positioned reads and writes share the read lock
// so concurrent I/O on one handle never serializes; Release takes the write
// lock and leaves the handle permanently unusable.
type FileHandle struct {
	mu       sync.RWMutex
	file     host.File
	path     string // For logging purposes
	released bool
}

func newFileHandle(file host.File, path string) *FileHandle {
	return &FileHandle{file: file, path: path}
}

// Path returns the virtual path the handle was opened with.
func (h *FileHandle) Path() string {
	return h.path
}

// Released reports whether Release has been called.
func (h *FileHandle) Released() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.released
}

// use runs fn against the open file, or fails with EBADF once released.
func (h *FileHandle) use(fn func(f host.File) error) error {
	if h == nil {
		return ErrHandleReleased
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.released {
		return ErrHandleReleased
	}
	return fn(h.file)
}

func (h *FileHandle) release() error {
	if h == nil {
		return ErrHandleReleased
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return ErrHandleReleased
	}
	h.released = true
	return h.file.Close()
}

// DirHandle is an open directory stream plus the iteration cursor: the
// offset the stream is positioned at and the entry the last consumer
// declined, which is offered again on the next read from that offset.
type DirHandle struct {
	mu       sync.Mutex
	stream   host.DirStream
	path     string
	offset   int64
	entry    *host.Dirent
	released bool
}

func newDirHandle(stream host.DirStream, path string) *DirHandle {
	return &DirHandle{stream: stream, path: path}
}

// Path returns the virtual path of the directory.
func (h *DirHandle) Path() string {
	return h.path
}

// Offset returns the stream offset the next read continues from.
func (h *DirHandle) Offset() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.offset
}

// Released reports whether ReleaseDir has been called.
func (h *DirHandle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

func (h *DirHandle) release() error {
	if h == nil {
		return ErrHandleReleased
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return ErrHandleReleased
	}
	h.released = true
	h.entry = nil
	return h.stream.Close()
}
