// Package fs is the pass-through core: it translates virtual paths into
// paths under the mirrored root and relays every file system verb to the
// host.
//
// This file contains error types and error handling utilities.
package fs

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrNotSupported rejects requests whose flags the relay cannot honour
	// (non-zero rename flags, non-zero fallocate modes).
	ErrNotSupported = syscall.ENOTSUP

	// ErrPathTooLong is returned when Root ++ virtual path exceeds the bound.
	ErrPathTooLong = syscall.ENAMETOOLONG

	// ErrHandleReleased is returned for any use of a released handle.
	ErrHandleReleased = syscall.EBADF

	// ErrInvalidRoot is returned when the mirrored root is empty or relative.
	ErrInvalidRoot = syscall.EINVAL
)

// Error records a failed dispatcher operation together with the virtual
// path it was applied to. Err is always the host errno, unchanged.
type Error struct {
	Op   string // Operation that failed (e.g., "getattr", "rename")
	Path string // Virtual path, or the handle's path for handle operations
	Err  error  // Underlying errno
}

// Error implements the error interface, providing a formatted error message
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("operation %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("operation %s on %s failed: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements error unwrapping for the errors.Is/As functions
func (e *Error) Unwrap() error {
	return e.Err
}

// newError wraps a host failure. Errors that are already *Error keep their
// original operation.
func newError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fsErr *Error
	if errors.As(err, &fsErr) {
		return fsErr
	}
	dispatchLogger.Debug("%s %q failed: %v", op, path, err)
	return &Error{Op: op, Path: path, Err: err}
}

// Errno extracts the host error code carried by err. Errors that carry no
// errno map to EIO.
func Errno(err error) syscall.Errno {
	if err == nil {
		return 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return syscall.EIO
}

// Operation names used for logging and error reporting
const (
	OpGetattr     = "getattr"
	OpAccess      = "access"
	OpReadlink    = "readlink"
	OpOpendir     = "opendir"
	OpReaddir     = "readdir"
	OpReleasedir  = "releasedir"
	OpMknod       = "mknod"
	OpMkdir       = "mkdir"
	OpUnlink      = "unlink"
	OpRmdir       = "rmdir"
	OpSymlink     = "symlink"
	OpRename      = "rename"
	OpLink        = "link"
	OpChmod       = "chmod"
	OpChown       = "chown"
	OpTruncate    = "truncate"
	OpFtruncate   = "ftruncate"
	OpUtimens     = "utimens"
	OpCreate      = "create"
	OpOpen        = "open"
	OpRead        = "read"
	OpWrite       = "write"
	OpStatfs      = "statfs"
	OpFlush       = "flush"
	OpRelease     = "release"
	OpFsync       = "fsync"
	OpFallocate   = "fallocate"
	OpGetxattr    = "getxattr"
	OpSetxattr    = "setxattr"
	OpListxattr   = "listxattr"
	OpRemovexattr = "removexattr"
	OpFlock       = "flock"
)
