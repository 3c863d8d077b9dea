package mount

import (
	"errors"

	ptfs "ptfs/internal/fs"
	"ptfs/internal/logging"

	"bazil.org/fuse"
)

var (
	errLogger = logging.GetLogger().WithPrefix("error")
)

// toFuseError converts a dispatcher failure into the errno FUSE replies
// with. Host errnos pass through unchanged; anything without an errno
// becomes EIO.
func toFuseError(err error) error {
	if err == nil {
		return nil
	}

	errno := ptfs.Errno(err)
	var fsErr *ptfs.Error
	if errors.As(err, &fsErr) {
		errLogger.Trace("Converting %v to FUSE errno %d", fsErr, errno)
	} else {
		errLogger.Debug("Error without operation context, replying errno %d: %v", errno, err)
	}
	return fuse.Errno(errno)
}
