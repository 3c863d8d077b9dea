// Package host is the boundary between the dispatcher and the operating
// system. Every method is a single host primitive; failures are returned as
// the bare syscall.Errno reported by the kernel.
package host

import "time"

//go:generate mockgen -destination=mockhost/mock_host.go -package=mockhost ptfs/internal/host FS,File,DirStream

// FS is the set of path based host primitives.
type FS interface {
	Lstat(path string) (*Stat, error)
	Access(path string, mask uint32) error
	Readlink(path string, dest []byte) (int, error)
	OpenDir(path string) (DirStream, error)
	Mknod(path string, mode uint32, dev uint64) error
	Mkfifo(path string, mode uint32) error
	Mkdir(path string, mode uint32) error
	Unlink(path string) error
	Rmdir(path string) error
	Symlink(target, link string) error
	Rename(from, to string) error
	Link(from, to string) error
	Chmod(path string, mode uint32) error
	Lchown(path string, uid, gid int) error
	Truncate(path string, size int64) error
	Utimens(path string, atime, mtime Timestamp) error
	Open(path string, flags int, mode uint32) (File, error)
	Statfs(path string) (*StatFS, error)
	Lgetxattr(path, name string, dest []byte) (int, error)
	Lsetxattr(path, name string, value []byte, flags int) error
	Llistxattr(path string, dest []byte) (int, error)
	Lremovexattr(path, name string) error
}

// File is an open host file descriptor.
type File interface {
	Pread(dest []byte, off int64) (int, error)
	Pwrite(data []byte, off int64) (int, error)
	Ftruncate(size int64) error
	Fsync(dataOnly bool) error
	Fallocate(mode uint32, off, length int64) error
	Flock(how int) error
	// Flush closes a duplicate of the descriptor, leaving the file open.
	Flush() error
	Close() error
}

// DirStream iterates the entries of an open directory.
type DirStream interface {
	// Next returns the next entry, or nil once the stream is exhausted.
	Next() (*Dirent, error)
	// Seek repositions the stream at an offset previously taken from Dirent.Off.
	Seek(off int64) error
	Close() error
}

// Dirent is one raw directory entry.
type Dirent struct {
	Name string
	Ino  uint64
	Type uint8
	// Off is the stream offset of the entry that follows this one.
	Off int64
}

// Stat is the subset of struct stat the file system relays.
type Stat struct {
	Dev     uint64
	Ino     uint64
	Mode    uint32
	Nlink   uint64
	Uid     uint32
	Gid     uint32
	Rdev    uint64
	Size    int64
	Blksize int64
	Blocks  int64
	Atime   time.Time
	Mtime   time.Time
	Ctime   time.Time
}

// StatFS mirrors struct statfs.
type StatFS struct {
	Blocks  uint64
	Bfree   uint64
	Bavail  uint64
	Files   uint64
	Ffree   uint64
	Bsize   uint32
	Frsize  uint32
	Namelen uint32
}

// Timestamp is one side of a utimensat call.
type Timestamp struct {
	Time time.Time
	// Now asks the host to use its current time.
	Now bool
	// Omit leaves the timestamp unchanged.
	Omit bool
}

// At returns a Timestamp for a fixed point in time.
func At(t time.Time) Timestamp { return Timestamp{Time: t} }

// Now returns a Timestamp resolved by the host clock.
func Now() Timestamp { return Timestamp{Now: true} }

// Omit returns a Timestamp that keeps the current value.
func Omit() Timestamp { return Timestamp{Omit: true} }
