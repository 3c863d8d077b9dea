//go:build linux

package host

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

type osFS struct{}

// OS returns the host file system implemented with Linux system calls.
func OS() FS {
	return osFS{}
}

func (osFS) Lstat(path string) (*Stat, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return nil, err
	}
	return &Stat{
		Dev:     uint64(st.Dev),
		Ino:     st.Ino,
		Mode:    st.Mode,
		Nlink:   uint64(st.Nlink),
		Uid:     st.Uid,
		Gid:     st.Gid,
		Rdev:    uint64(st.Rdev),
		Size:    st.Size,
		Blksize: int64(st.Blksize),
		Blocks:  st.Blocks,
		Atime:   time.Unix(st.Atim.Unix()),
		Mtime:   time.Unix(st.Mtim.Unix()),
		Ctime:   time.Unix(st.Ctim.Unix()),
	}, nil
}

func (osFS) Access(path string, mask uint32) error {
	return unix.Access(path, mask)
}

func (osFS) Readlink(path string, dest []byte) (int, error) {
	return unix.Readlink(path, dest)
}

func (osFS) OpenDir(path string) (DirStream, error) {
	return openDirStream(path)
}

func (osFS) Mknod(path string, mode uint32, dev uint64) error {
	return unix.Mknod(path, mode, int(dev))
}

func (osFS) Mkfifo(path string, mode uint32) error {
	return unix.Mkfifo(path, mode)
}

func (osFS) Mkdir(path string, mode uint32) error {
	return unix.Mkdir(path, mode)
}

func (osFS) Unlink(path string) error {
	return unix.Unlink(path)
}

func (osFS) Rmdir(path string) error {
	return unix.Rmdir(path)
}

func (osFS) Symlink(target, link string) error {
	return unix.Symlink(target, link)
}

func (osFS) Rename(from, to string) error {
	return unix.Rename(from, to)
}

func (osFS) Link(from, to string) error {
	return unix.Link(from, to)
}

func (osFS) Chmod(path string, mode uint32) error {
	return unix.Chmod(path, mode)
}

func (osFS) Lchown(path string, uid, gid int) error {
	return unix.Lchown(path, uid, gid)
}

func (osFS) Truncate(path string, size int64) error {
	return unix.Truncate(path, size)
}

func timespec(ts Timestamp) unix.Timespec {
	switch {
	case ts.Omit:
		return unix.Timespec{Nsec: unix.UTIME_OMIT}
	case ts.Now:
		return unix.Timespec{Nsec: unix.UTIME_NOW}
	}
	return unix.NsecToTimespec(ts.Time.UnixNano())
}

// Utimens never follows a trailing symlink.
func (osFS) Utimens(path string, atime, mtime Timestamp) error {
	ts := []unix.Timespec{timespec(atime), timespec(mtime)}
	return unix.UtimesNanoAt(unix.AT_FDCWD, path, ts, unix.AT_SYMLINK_NOFOLLOW)
}

func (osFS) Open(path string, flags int, mode uint32) (File, error) {
	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, mode)
	if err != nil {
		return nil, err
	}
	return &osFile{f: os.NewFile(uintptr(fd), path)}, nil
}

func (osFS) Statfs(path string) (*StatFS, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return nil, err
	}
	return &StatFS{
		Blocks:  st.Blocks,
		Bfree:   st.Bfree,
		Bavail:  st.Bavail,
		Files:   st.Files,
		Ffree:   st.Ffree,
		Bsize:   uint32(st.Bsize),
		Frsize:  uint32(st.Frsize),
		Namelen: uint32(st.Namelen),
	}, nil
}

func (osFS) Lgetxattr(path, name string, dest []byte) (int, error) {
	return unix.Lgetxattr(path, name, dest)
}

func (osFS) Lsetxattr(path, name string, value []byte, flags int) error {
	return unix.Lsetxattr(path, name, value, flags)
}

func (osFS) Llistxattr(path string, dest []byte) (int, error) {
	return unix.Llistxattr(path, dest)
}

func (osFS) Lremovexattr(path, name string) error {
	return unix.Lremovexattr(path, name)
}

// osFile keeps the descriptor inside an *os.File so the runtime owns its
// lifetime; raw calls go through SyscallConn.
type osFile struct {
	f *os.File
}

func (o *osFile) control(fn func(fd int) error) error {
	rc, err := o.f.SyscallConn()
	if err != nil {
		return unix.EBADF
	}
	var opErr error
	if err := rc.Control(func(fd uintptr) {
		opErr = fn(int(fd))
	}); err != nil {
		return unix.EBADF
	}
	return opErr
}

func (o *osFile) Pread(dest []byte, off int64) (int, error) {
	var n int
	err := o.control(func(fd int) error {
		var err error
		n, err = unix.Pread(fd, dest, off)
		return err
	})
	return n, err
}

func (o *osFile) Pwrite(data []byte, off int64) (int, error) {
	var n int
	err := o.control(func(fd int) error {
		var err error
		n, err = unix.Pwrite(fd, data, off)
		return err
	})
	return n, err
}

func (o *osFile) Ftruncate(size int64) error {
	return o.control(func(fd int) error {
		return unix.Ftruncate(fd, size)
	})
}

func (o *osFile) Fsync(dataOnly bool) error {
	return o.control(func(fd int) error {
		if dataOnly {
			return unix.Fdatasync(fd)
		}
		return unix.Fsync(fd)
	})
}

func (o *osFile) Fallocate(mode uint32, off, length int64) error {
	return o.control(func(fd int) error {
		return unix.Fallocate(fd, mode, off, length)
	})
}

func (o *osFile) Flock(how int) error {
	return o.control(func(fd int) error {
		return unix.Flock(fd, how)
	})
}

func (o *osFile) Flush() error {
	return o.control(func(fd int) error {
		dup, err := unix.Dup(fd)
		if err != nil {
			return err
		}
		return unix.Close(dup)
	})
}

func (o *osFile) Close() error {
	if err := o.f.Close(); err != nil {
		if pe, ok := err.(*os.PathError); ok {
			return pe.Err
		}
		return err
	}
	return nil
}
