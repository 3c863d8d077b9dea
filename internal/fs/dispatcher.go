package fs

import (
	"bytes"
	"errors"
	"syscall"

	"ptfs/internal/host"
	"ptfs/internal/logging"

	"golang.org/x/sys/unix"
)

var (
	dispatchLogger = logging.GetLogger().WithPrefix("dispatch")
)

// Attr is the metadata returned by Getattr.
type Attr = host.Stat

// StatFS is the file system statistics returned by Statfs.
type StatFS = host.StatFS

// DirentAttr is the minimal attribute record emitted with each directory
// entry: the inode number and the file type bits of the mode.
type DirentAttr struct {
	Ino  uint64
	Mode uint32
}

// FillFunc consumes one directory entry. next is the offset to pass to
// ReadDir to resume after this entry. Returning true stops the read; the
// declined entry is offered again by the next ReadDir from the same offset.
type FillFunc func(name string, attr DirentAttr, next int64) (stop bool)

// Options configures a Dispatcher.
type Options struct {
	// Root is the absolute directory being mirrored.
	Root string
	// MaxPathLen bounds translated paths; zero selects DefaultMaxPathLen.
	MaxPathLen int
	// RootSymlinkTargets rewrites symlink targets through Root as well as
	// the link path. By default targets are stored verbatim.
	RootSymlinkTargets bool
}

// Dispatcher implements every file system verb by translating virtual
// paths and calling the matching host primitive. Host failures are
// returned as *Error carrying the host errno unchanged.
type Dispatcher struct {
	paths              *Translator
	host               host.FS
	rootSymlinkTargets bool
}

// NewDispatcher creates a Dispatcher relaying to h.
func NewDispatcher(opts Options, h host.FS) (*Dispatcher, error) {
	if h == nil {
		return nil, errors.New("dispatcher requires a host file system")
	}
	paths, err := NewTranslator(opts.Root, opts.MaxPathLen)
	if err != nil {
		return nil, err
	}
	dispatchLogger.Info("Relaying operations to %s", paths.Root())
	return &Dispatcher{
		paths:              paths,
		host:               h,
		rootSymlinkTargets: opts.RootSymlinkTargets,
	}, nil
}

// Root returns the mirrored root directory.
func (d *Dispatcher) Root() string {
	return d.paths.Root()
}

// translate resolves vpath, reporting an oversized result as an op failure.
func (d *Dispatcher) translate(op, vpath string) (string, error) {
	dispatchLogger.Trace("%s %q", op, vpath)
	p, err := d.paths.Translate(vpath)
	if err != nil {
		return "", newError(op, vpath, err)
	}
	return p, nil
}

// Getattr returns the metadata of path without following a final symlink.
func (d *Dispatcher) Getattr(path string) (*Attr, error) {
	p, err := d.translate(OpGetattr, path)
	if err != nil {
		return nil, err
	}
	st, err := d.host.Lstat(p)
	if err != nil {
		return nil, newError(OpGetattr, path, err)
	}
	return st, nil
}

// Access checks path against the access mask (R_OK, W_OK, X_OK, F_OK).
func (d *Dispatcher) Access(path string, mask uint32) error {
	p, err := d.translate(OpAccess, path)
	if err != nil {
		return err
	}
	return newError(OpAccess, path, d.host.Access(p, mask))
}

// Readlink returns the target of the symlink at path, truncated to size-1
// bytes the way readlink(2) fills a buffer of that size. A size of zero or
// less allows targets up to the path bound.
func (d *Dispatcher) Readlink(path string, size int) (string, error) {
	p, err := d.translate(OpReadlink, path)
	if err != nil {
		return "", err
	}
	if size <= 0 {
		size = d.paths.MaxLen() + 1
	}
	buf := make([]byte, size-1)
	n, err := d.host.Readlink(p, buf)
	if err != nil {
		return "", newError(OpReadlink, path, err)
	}
	return string(buf[:n]), nil
}

// OpenDir opens a directory stream positioned at offset 0.
func (d *Dispatcher) OpenDir(path string) (*DirHandle, error) {
	p, err := d.translate(OpOpendir, path)
	if err != nil {
		return nil, err
	}
	stream, err := d.host.OpenDir(p)
	if err != nil {
		return nil, newError(OpOpendir, path, err)
	}
	return newDirHandle(stream, path), nil
}

// ReadDir emits entries of h starting at offset. When offset differs from
// the handle's recorded position the stream is re-seeked and any pending
// entry dropped. Each entry is handed to fill with the offset that resumes
// after it; the handle remembers the last consumed offset so consecutive
// pages continue where the previous one stopped.
func (d *Dispatcher) ReadDir(h *DirHandle, offset int64, fill FillFunc) error {
	if h == nil {
		return newError(OpReaddir, "", ErrHandleReleased)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return newError(OpReaddir, h.path, ErrHandleReleased)
	}
	dispatchLogger.Trace("%s %q at offset %d", OpReaddir, h.path, offset)

	if offset != h.offset {
		if err := h.stream.Seek(offset); err != nil {
			return newError(OpReaddir, h.path, err)
		}
		h.entry = nil
		h.offset = offset
	}

	for {
		if h.entry == nil {
			e, err := h.stream.Next()
			if err != nil {
				return newError(OpReaddir, h.path, err)
			}
			if e == nil {
				return nil
			}
			h.entry = e
		}
		attr := DirentAttr{
			Ino:  h.entry.Ino,
			Mode: uint32(h.entry.Type) << 12,
		}
		if fill(h.entry.Name, attr, h.entry.Off) {
			return nil
		}
		h.offset = h.entry.Off
		h.entry = nil
	}
}

// ReleaseDir closes the directory stream. The handle is unusable afterwards.
func (d *Dispatcher) ReleaseDir(h *DirHandle) error {
	if h == nil {
		return newError(OpReleasedir, "", ErrHandleReleased)
	}
	dispatchLogger.Trace("%s %q", OpReleasedir, h.path)
	return newError(OpReleasedir, h.path, h.release())
}

// Mknod creates a file system node. Regular files are created with an
// exclusive open, FIFOs with mkfifo and everything else with mknod.
func (d *Dispatcher) Mknod(path string, mode uint32, dev uint64) error {
	p, err := d.translate(OpMknod, path)
	if err != nil {
		return err
	}
	switch mode & unix.S_IFMT {
	case unix.S_IFREG:
		f, err := d.host.Open(p, unix.O_CREAT|unix.O_EXCL|unix.O_WRONLY, mode&^unix.S_IFMT)
		if err != nil {
			return newError(OpMknod, path, err)
		}
		return newError(OpMknod, path, f.Close())
	case unix.S_IFIFO:
		return newError(OpMknod, path, d.host.Mkfifo(p, mode&^unix.S_IFMT))
	default:
		return newError(OpMknod, path, d.host.Mknod(p, mode, dev))
	}
}

// Mkdir creates a directory.
func (d *Dispatcher) Mkdir(path string, mode uint32) error {
	p, err := d.translate(OpMkdir, path)
	if err != nil {
		return err
	}
	return newError(OpMkdir, path, d.host.Mkdir(p, mode))
}

// Unlink removes a non-directory entry.
func (d *Dispatcher) Unlink(path string) error {
	p, err := d.translate(OpUnlink, path)
	if err != nil {
		return err
	}
	return newError(OpUnlink, path, d.host.Unlink(p))
}

// Rmdir removes an empty directory.
func (d *Dispatcher) Rmdir(path string) error {
	p, err := d.translate(OpRmdir, path)
	if err != nil {
		return err
	}
	return newError(OpRmdir, path, d.host.Rmdir(p))
}

// Symlink creates link pointing at target. The target is stored as given
// unless the dispatcher was configured with RootSymlinkTargets.
func (d *Dispatcher) Symlink(target, link string) error {
	l, err := d.translate(OpSymlink, link)
	if err != nil {
		return err
	}
	t := target
	if d.rootSymlinkTargets {
		if t, err = d.translate(OpSymlink, target); err != nil {
			return err
		}
	}
	return newError(OpSymlink, link, d.host.Symlink(t, l))
}

// Rename moves from to to. Any rename flag (RENAME_NOREPLACE,
// RENAME_EXCHANGE, ...) is refused with ENOTSUP before the host is called.
func (d *Dispatcher) Rename(from, to string, flags uint32) error {
	if flags != 0 {
		dispatchLogger.Debug("Refusing rename %q -> %q with flags %#x", from, to, flags)
		return newError(OpRename, from, ErrNotSupported)
	}
	f, err := d.translate(OpRename, from)
	if err != nil {
		return err
	}
	t, err := d.translate(OpRename, to)
	if err != nil {
		return err
	}
	return newError(OpRename, from, d.host.Rename(f, t))
}

// Link creates the hard link to pointing at from.
func (d *Dispatcher) Link(from, to string) error {
	f, err := d.translate(OpLink, from)
	if err != nil {
		return err
	}
	t, err := d.translate(OpLink, to)
	if err != nil {
		return err
	}
	return newError(OpLink, to, d.host.Link(f, t))
}

// Chmod changes the permission bits of path.
func (d *Dispatcher) Chmod(path string, mode uint32) error {
	p, err := d.translate(OpChmod, path)
	if err != nil {
		return err
	}
	return newError(OpChmod, path, d.host.Chmod(p, mode))
}

// Chown changes the owner of path without following a final symlink.
// An id of -1 leaves that id unchanged.
func (d *Dispatcher) Chown(path string, uid, gid int) error {
	p, err := d.translate(OpChown, path)
	if err != nil {
		return err
	}
	return newError(OpChown, path, d.host.Lchown(p, uid, gid))
}

// Truncate sets the size of the file at path.
func (d *Dispatcher) Truncate(path string, size int64) error {
	p, err := d.translate(OpTruncate, path)
	if err != nil {
		return err
	}
	return newError(OpTruncate, path, d.host.Truncate(p, size))
}

// Ftruncate sets the size of the open file h.
func (d *Dispatcher) Ftruncate(h *FileHandle, size int64) error {
	return d.withFile(OpFtruncate, h, func(f host.File) error {
		return f.Ftruncate(size)
	})
}

// Utimens sets access and modification times without following a final
// symlink.
func (d *Dispatcher) Utimens(path string, atime, mtime host.Timestamp) error {
	p, err := d.translate(OpUtimens, path)
	if err != nil {
		return err
	}
	return newError(OpUtimens, path, d.host.Utimens(p, atime, mtime))
}

// Create creates and opens path with the caller's flags and mode.
func (d *Dispatcher) Create(path string, mode uint32, flags int) (*FileHandle, error) {
	p, err := d.translate(OpCreate, path)
	if err != nil {
		return nil, err
	}
	f, err := d.host.Open(p, flags|unix.O_CREAT, mode)
	if err != nil {
		return nil, newError(OpCreate, path, err)
	}
	return newFileHandle(f, path), nil
}

// Open opens path with the caller's flags.
func (d *Dispatcher) Open(path string, flags int) (*FileHandle, error) {
	p, err := d.translate(OpOpen, path)
	if err != nil {
		return nil, err
	}
	f, err := d.host.Open(p, flags, 0)
	if err != nil {
		return nil, newError(OpOpen, path, err)
	}
	return newFileHandle(f, path), nil
}

// Read reads into dest at off without moving any shared file position.
func (d *Dispatcher) Read(h *FileHandle, dest []byte, off int64) (int, error) {
	var n int
	err := d.withFile(OpRead, h, func(f host.File) error {
		var err error
		n, err = f.Pread(dest, off)
		return err
	})
	return n, err
}

// Write writes data at off without moving any shared file position.
func (d *Dispatcher) Write(h *FileHandle, data []byte, off int64) (int, error) {
	var n int
	err := d.withFile(OpWrite, h, func(f host.File) error {
		var err error
		n, err = f.Pwrite(data, off)
		return err
	})
	return n, err
}

// Statfs returns statistics of the file system holding path.
func (d *Dispatcher) Statfs(path string) (*StatFS, error) {
	p, err := d.translate(OpStatfs, path)
	if err != nil {
		return nil, err
	}
	st, err := d.host.Statfs(p)
	if err != nil {
		return nil, newError(OpStatfs, path, err)
	}
	return st, nil
}

// Flush closes a duplicate of the handle's descriptor, which reports
// deferred write errors without closing the handle.
func (d *Dispatcher) Flush(h *FileHandle) error {
	return d.withFile(OpFlush, h, func(f host.File) error {
		return f.Flush()
	})
}

// Release closes the handle. Every later use of h fails with EBADF.
func (d *Dispatcher) Release(h *FileHandle) error {
	if h == nil {
		return newError(OpRelease, "", ErrHandleReleased)
	}
	dispatchLogger.Trace("%s %q", OpRelease, h.path)
	return newError(OpRelease, h.path, h.release())
}

// Fsync flushes h to stable storage; dataOnly limits it to file data.
func (d *Dispatcher) Fsync(h *FileHandle, dataOnly bool) error {
	return d.withFile(OpFsync, h, func(f host.File) error {
		return f.Fsync(dataOnly)
	})
}

// Fallocate reserves length bytes at off. Only mode 0 is supported; any
// other mode is refused with ENOTSUP before reaching the host.
func (d *Dispatcher) Fallocate(h *FileHandle, mode uint32, off, length int64) error {
	if mode != 0 {
		var path string
		if h != nil {
			path = h.path
		}
		return newError(OpFallocate, path, ErrNotSupported)
	}
	return d.withFile(OpFallocate, h, func(f host.File) error {
		return f.Fallocate(0, off, length)
	})
}

// Flock applies or removes an advisory lock (LOCK_SH, LOCK_EX, LOCK_UN,
// optionally with LOCK_NB) on h.
func (d *Dispatcher) Flock(h *FileHandle, how int) error {
	return d.withFile(OpFlock, h, func(f host.File) error {
		return f.Flock(how)
	})
}

// Getxattr reads attribute name of path into dest. With an empty dest it
// returns the size of the value.
func (d *Dispatcher) Getxattr(path, name string, dest []byte) (int, error) {
	p, err := d.translate(OpGetxattr, path)
	if err != nil {
		return 0, err
	}
	n, err := d.host.Lgetxattr(p, name, dest)
	if err != nil {
		return 0, newError(OpGetxattr, path, err)
	}
	return n, nil
}

// Setxattr sets attribute name of path. flags takes XATTR_CREATE or
// XATTR_REPLACE.
func (d *Dispatcher) Setxattr(path, name string, value []byte, flags int) error {
	p, err := d.translate(OpSetxattr, path)
	if err != nil {
		return err
	}
	return newError(OpSetxattr, path, d.host.Lsetxattr(p, name, value, flags))
}

// Listxattr writes the NUL separated attribute names of path into dest.
// With an empty dest it returns the size of the list.
func (d *Dispatcher) Listxattr(path string, dest []byte) (int, error) {
	p, err := d.translate(OpListxattr, path)
	if err != nil {
		return 0, err
	}
	n, err := d.host.Llistxattr(p, dest)
	if err != nil {
		return 0, newError(OpListxattr, path, err)
	}
	return n, nil
}

// Removexattr removes attribute name of path.
func (d *Dispatcher) Removexattr(path, name string) error {
	p, err := d.translate(OpRemovexattr, path)
	if err != nil {
		return err
	}
	return newError(OpRemovexattr, path, d.host.Lremovexattr(p, name))
}

// XattrValue returns the whole value of attribute name, sizing the buffer
// with a probe first.
func (d *Dispatcher) XattrValue(path, name string) ([]byte, error) {
	for {
		size, err := d.Getxattr(path, name, nil)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return []byte{}, nil
		}
		buf := make([]byte, size)
		n, err := d.Getxattr(path, name, buf)
		if errors.Is(err, syscall.ERANGE) {
			// grew between the probe and the read
			continue
		}
		if err != nil {
			return nil, err
		}
		return buf[:n], nil
	}
}

// XattrNames returns the attribute names of path.
func (d *Dispatcher) XattrNames(path string) ([]string, error) {
	for {
		size, err := d.Listxattr(path, nil)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return nil, nil
		}
		buf := make([]byte, size)
		n, err := d.Listxattr(path, buf)
		if errors.Is(err, syscall.ERANGE) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var names []string
		for _, name := range bytes.Split(buf[:n], []byte{0}) {
			if len(name) > 0 {
				names = append(names, string(name))
			}
		}
		return names, nil
	}
}

func (d *Dispatcher) withFile(op string, h *FileHandle, fn func(f host.File) error) error {
	if h == nil {
		return newError(op, "", ErrHandleReleased)
	}
	dispatchLogger.Trace("%s %q", op, h.path)
	return newError(op, h.path, h.use(fn))
}
