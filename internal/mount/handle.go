package mount

import (
	"context"
	"syscall"

	ptfs "ptfs/internal/fs"
	"ptfs/internal/logging"

	"bazil.org/fuse"
	"golang.org/x/sys/unix"
)

var (
	handleLogger = logging.GetLogger().WithPrefix("handle")
)

// FileHandle represents an open file handle.
// It relays I/O on a dispatcher file handle and keeps the owning node's
// handle set current so node-level fsync and truncate can find it.
type FileHandle struct {
	node  *Node
	fh    *ptfs.FileHandle
	flags int
}

// Read implements the HandleReader interface with a positioned read.
func (h *FileHandle) Read(_ context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	handleLogger.Trace("Reading %d bytes from %q at offset %d", req.Size, h.fh.Path(), req.Offset)

	buf := make([]byte, req.Size)
	n, err := h.node.fs.d.Read(h.fh, buf, req.Offset)
	if err != nil {
		return toFuseError(err)
	}
	resp.Data = buf[:n]
	return nil
}

// Write implements the HandleWriter interface with a positioned write.
func (h *FileHandle) Write(_ context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	handleLogger.Trace("Writing %d bytes to %q at offset %d", len(req.Data), h.fh.Path(), req.Offset)

	n, err := h.node.fs.d.Write(h.fh, req.Data, req.Offset)
	if err != nil {
		return toFuseError(err)
	}
	resp.Size = n
	return nil
}

// Flush implements the HandleFlusher interface.
func (h *FileHandle) Flush(_ context.Context, _ *fuse.FlushRequest) error {
	return toFuseError(h.node.fs.d.Flush(h.fh))
}

// Release implements the HandleReleaser interface, closing the host file.
// A flock held through the handle is dropped first when the kernel asks.
func (h *FileHandle) Release(_ context.Context, req *fuse.ReleaseRequest) error {
	handleLogger.Debug("Closing file %q", h.fh.Path())
	h.node.removeHandle(h)
	if req != nil && req.ReleaseFlags&fuse.ReleaseFlockUnlock != 0 {
		if err := h.node.fs.d.Flock(h.fh, unix.LOCK_UN); err != nil {
			handleLogger.Warn("Failed to drop lock on %q: %v", h.fh.Path(), err)
		}
	}
	return toFuseError(h.node.fs.d.Release(h.fh))
}

// flockOp maps a FUSE lock type onto a flock(2) operation. Only whole-file
// BSD locks are relayed; byte-range POSIX locks stay with the kernel.
func flockOp(flags fuse.LockFlags, typ fuse.LockType) (int, error) {
	if flags&fuse.LockFlock == 0 {
		return 0, fuse.Errno(syscall.ENOTSUP)
	}
	switch typ {
	case fuse.LockRead:
		return unix.LOCK_SH, nil
	case fuse.LockWrite:
		return unix.LOCK_EX, nil
	case fuse.LockUnlock:
		return unix.LOCK_UN, nil
	}
	return 0, fuse.Errno(syscall.EINVAL)
}

// Lock implements the HandleLocker interface. It never blocks; a held
// conflicting lock fails with EAGAIN.
func (h *FileHandle) Lock(_ context.Context, req *fuse.LockRequest) error {
	how, err := flockOp(req.LockFlags, req.Lock.Type)
	if err != nil {
		return err
	}
	handleLogger.Trace("Locking %q (op %d, non-blocking)", h.fh.Path(), how)
	if how != unix.LOCK_UN {
		how |= unix.LOCK_NB
	}
	return toFuseError(h.node.fs.d.Flock(h.fh, how))
}

// LockWait implements the HandleLocker interface, blocking until the lock
// is granted.
func (h *FileHandle) LockWait(_ context.Context, req *fuse.LockWaitRequest) error {
	how, err := flockOp(req.LockFlags, req.Lock.Type)
	if err != nil {
		return err
	}
	handleLogger.Trace("Locking %q (op %d)", h.fh.Path(), how)
	return toFuseError(h.node.fs.d.Flock(h.fh, how))
}

// Unlock implements the HandleLocker interface.
func (h *FileHandle) Unlock(_ context.Context, req *fuse.UnlockRequest) error {
	if req.LockFlags&fuse.LockFlock == 0 {
		return fuse.Errno(syscall.ENOTSUP)
	}
	handleLogger.Trace("Unlocking %q", h.fh.Path())
	return toFuseError(h.node.fs.d.Flock(h.fh, unix.LOCK_UN))
}

// QueryLock implements the HandleLocker interface. flock(2) has no way to
// test for a conflicting lock, so no conflict is ever reported.
func (h *FileHandle) QueryLock(_ context.Context, _ *fuse.QueryLockRequest, resp *fuse.QueryLockResponse) error {
	resp.Lock = fuse.FileLock{Type: fuse.LockUnlock}
	return nil
}

// DirHandle is an open directory stream.
type DirHandle struct {
	fs *FS
	dh *ptfs.DirHandle
}

// ReadDirAll implements the HandleReadDirAller interface. The stream is
// rewound and drained in one pass; bazil.org/fuse pages the result.
func (h *DirHandle) ReadDirAll(_ context.Context) ([]fuse.Dirent, error) {
	handleLogger.Trace("Reading directory %q", h.dh.Path())

	var entries []fuse.Dirent
	err := h.fs.d.ReadDir(h.dh, 0, func(name string, attr ptfs.DirentAttr, _ int64) bool {
		entries = append(entries, fuse.Dirent{
			Inode: attr.Ino,
			Type:  direntType(attr.Mode),
			Name:  name,
		})
		return false
	})
	if err != nil {
		return nil, toFuseError(err)
	}

	handleLogger.Trace("Directory %q has %d entries", h.dh.Path(), len(entries))
	return entries, nil
}

// Release implements the HandleReleaser interface, closing the stream.
func (h *DirHandle) Release(_ context.Context, _ *fuse.ReleaseRequest) error {
	handleLogger.Debug("Closing directory %q", h.dh.Path())
	return toFuseError(h.fs.d.ReleaseDir(h.dh))
}
