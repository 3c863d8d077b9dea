package mount

import (
	"context"
	"errors"
	"sync"
	"syscall"

	ptfs "ptfs/internal/fs"
	"ptfs/internal/host"
	"ptfs/internal/logging"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
	"golang.org/x/sys/unix"
)

var (
	nodeLogger = logging.GetLogger().WithPrefix("node")
)

// fsyncDataOnly is FUSE_FSYNC_FDATASYNC.
const fsyncDataOnly = 1

// Node is a file, directory or other object in the mirrored tree,
// identified by its virtual path.
type Node struct {
	fs   *FS
	path string // guarded by fs.mu

	mu      sync.Mutex
	handles map[*FileHandle]struct{}
	// looked is the lstat taken by the Lookup that returned this node,
	// consumed by the Attr call bazil.org/fuse makes right after it.
	looked *ptfs.Attr
}

// Path returns the node's current virtual path ("" for the mount root).
func (n *Node) Path() string {
	n.fs.mu.RLock()
	defer n.fs.mu.RUnlock()
	return n.path
}

func (n *Node) child(name string) string {
	return n.Path() + "/" + name
}

func (n *Node) addHandle(h *FileHandle) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handles[h] = struct{}{}
}

func (n *Node) removeHandle(h *FileHandle) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.handles, h)
}

func (n *Node) openHandles() []*FileHandle {
	n.mu.Lock()
	defer n.mu.Unlock()
	handles := make([]*FileHandle, 0, len(n.handles))
	for h := range n.handles {
		handles = append(handles, h)
	}
	return handles
}

// writableHandle returns an open handle that can be truncated, if any.
func (n *Node) writableHandle() *FileHandle {
	for _, h := range n.openHandles() {
		if h.flags&(unix.O_WRONLY|unix.O_RDWR) != 0 {
			return h
		}
	}
	return nil
}

// openFlags adjusts the caller's open flags for the cache mode. With
// writeback caching write-only opens become read-write and O_APPEND is
// dropped, since the kernel supplies every write offset.
func (n *Node) openFlags(flags int) int {
	if !n.fs.opts.WritebackCache {
		return flags
	}
	if flags&unix.O_ACCMODE == unix.O_WRONLY {
		flags = flags&^unix.O_ACCMODE | unix.O_RDWR
	}
	return flags &^ unix.O_APPEND
}

// Attr implements the Node interface with the lstat of the real path.
func (n *Node) Attr(_ context.Context, a *fuse.Attr) error {
	n.mu.Lock()
	st := n.looked
	n.looked = nil
	n.mu.Unlock()
	if st != nil {
		fillAttr(st, a, n.fs.opts.AttrValid)
		return nil
	}

	path := n.Path()
	nodeLogger.Trace("Getting attributes for %q", path)

	st, err := n.fs.d.Getattr(path)
	if err != nil {
		return toFuseError(err)
	}
	fillAttr(st, a, n.fs.opts.AttrValid)
	return nil
}

// Lookup implements the NodeStringLookuper interface, finding a child node.
func (n *Node) Lookup(_ context.Context, name string) (fusefs.Node, error) {
	childPath := n.child(name)
	nodeLogger.Trace("Looking up %q", childPath)

	st, err := n.fs.d.Getattr(childPath)
	if err != nil {
		return nil, toFuseError(err)
	}
	child := n.fs.node(childPath)
	child.mu.Lock()
	child.looked = st
	child.mu.Unlock()
	return child, nil
}

// Access implements the NodeAccesser interface.
func (n *Node) Access(_ context.Context, req *fuse.AccessRequest) error {
	return toFuseError(n.fs.d.Access(n.Path(), req.Mask))
}

// Readlink implements the NodeReadlinker interface.
func (n *Node) Readlink(_ context.Context, _ *fuse.ReadlinkRequest) (string, error) {
	target, err := n.fs.d.Readlink(n.Path(), 0)
	if err != nil {
		return "", toFuseError(err)
	}
	return target, nil
}

// Open implements the NodeOpener interface for both files and directories.
func (n *Node) Open(_ context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fusefs.Handle, error) {
	path := n.Path()

	if req.Dir {
		nodeLogger.Debug("Opening directory %q", path)
		dh, err := n.fs.d.OpenDir(path)
		if err != nil {
			return nil, toFuseError(err)
		}
		return &DirHandle{fs: n.fs, dh: dh}, nil
	}

	flags := n.openFlags(int(req.Flags))
	nodeLogger.Debug("Opening file %q with flags %#x", path, flags)
	fh, err := n.fs.d.Open(path, flags)
	if err != nil {
		return nil, toFuseError(err)
	}
	if n.fs.opts.DirectIO {
		resp.Flags |= fuse.OpenDirectIO
	}
	h := &FileHandle{node: n, fh: fh, flags: flags}
	n.addHandle(h)
	return h, nil
}

// Create implements the NodeCreater interface.
func (n *Node) Create(_ context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) (fusefs.Node, fusefs.Handle, error) {
	childPath := n.child(req.Name)
	flags := n.openFlags(int(req.Flags))
	nodeLogger.Debug("Creating %q with flags %#x mode %v", childPath, flags, req.Mode)

	fh, err := n.fs.d.Create(childPath, permBits(req.Mode), flags)
	if err != nil {
		return nil, nil, toFuseError(err)
	}
	if n.fs.opts.DirectIO {
		resp.Flags |= fuse.OpenDirectIO
	}
	child := n.fs.node(childPath)
	h := &FileHandle{node: child, fh: fh, flags: flags}
	child.addHandle(h)
	return child, h, nil
}

// Mkdir implements the NodeMkdirer interface.
func (n *Node) Mkdir(_ context.Context, req *fuse.MkdirRequest) (fusefs.Node, error) {
	childPath := n.child(req.Name)
	nodeLogger.Debug("Creating directory %q", childPath)

	if err := n.fs.d.Mkdir(childPath, permBits(req.Mode)); err != nil {
		return nil, toFuseError(err)
	}
	return n.fs.node(childPath), nil
}

// Mknod implements the NodeMknoder interface.
func (n *Node) Mknod(_ context.Context, req *fuse.MknodRequest) (fusefs.Node, error) {
	childPath := n.child(req.Name)
	nodeLogger.Debug("Creating node %q mode %v", childPath, req.Mode)

	if err := n.fs.d.Mknod(childPath, unixMode(req.Mode), uint64(req.Rdev)); err != nil {
		return nil, toFuseError(err)
	}
	return n.fs.node(childPath), nil
}

// Remove implements the NodeRemover interface, removing a file or directory.
func (n *Node) Remove(_ context.Context, req *fuse.RemoveRequest) error {
	childPath := n.child(req.Name)
	nodeLogger.Debug("Removing %q (isDir=%v)", childPath, req.Dir)

	var err error
	if req.Dir {
		err = n.fs.d.Rmdir(childPath)
	} else {
		err = n.fs.d.Unlink(childPath)
	}
	if err != nil {
		return toFuseError(err)
	}
	n.fs.drop(childPath)
	return nil
}

// Symlink implements the NodeSymlinker interface.
func (n *Node) Symlink(_ context.Context, req *fuse.SymlinkRequest) (fusefs.Node, error) {
	childPath := n.child(req.NewName)
	nodeLogger.Debug("Creating symlink %q -> %q", childPath, req.Target)

	if err := n.fs.d.Symlink(req.Target, childPath); err != nil {
		return nil, toFuseError(err)
	}
	return n.fs.node(childPath), nil
}

// Rename implements the NodeRenamer interface.
func (n *Node) Rename(_ context.Context, req *fuse.RenameRequest, newDir fusefs.Node) error {
	target, ok := newDir.(*Node)
	if !ok {
		nodeLogger.Error("Target is not a ptfs node: %T", newDir)
		return fuse.Errno(syscall.EXDEV)
	}
	from := n.child(req.OldName)
	to := target.child(req.NewName)
	nodeLogger.Debug("Renaming %q -> %q", from, to)

	if err := n.fs.d.Rename(from, to, 0); err != nil {
		return toFuseError(err)
	}
	n.fs.move(from, to)
	return nil
}

// Link implements the NodeLinker interface.
func (n *Node) Link(_ context.Context, req *fuse.LinkRequest, old fusefs.Node) (fusefs.Node, error) {
	src, ok := old.(*Node)
	if !ok {
		return nil, fuse.Errno(syscall.EXDEV)
	}
	childPath := n.child(req.NewName)
	nodeLogger.Debug("Linking %q -> %q", childPath, src.Path())

	if err := n.fs.d.Link(src.Path(), childPath); err != nil {
		return nil, toFuseError(err)
	}
	return n.fs.node(childPath), nil
}

// Setattr implements the NodeSetattrer interface. Each requested change is
// relayed as its own host call, in the order size, mode, owner, times.
func (n *Node) Setattr(ctx context.Context, req *fuse.SetattrRequest, resp *fuse.SetattrResponse) error {
	path := n.Path()
	d := n.fs.d
	nodeLogger.Debug("Setting attributes of %q: %v", path, req.Valid)

	n.mu.Lock()
	n.looked = nil
	n.mu.Unlock()

	if req.Valid.Size() {
		var err error
		if h := n.writableHandle(); req.Valid.Handle() && h != nil {
			err = d.Ftruncate(h.fh, int64(req.Size))
		} else {
			err = d.Truncate(path, int64(req.Size))
		}
		if err != nil {
			return toFuseError(err)
		}
	}

	if req.Valid.Mode() {
		if err := d.Chmod(path, permBits(req.Mode)); err != nil {
			return toFuseError(err)
		}
	}

	if req.Valid.Uid() || req.Valid.Gid() {
		uid, gid := -1, -1
		if req.Valid.Uid() {
			uid = int(req.Uid)
		}
		if req.Valid.Gid() {
			gid = int(req.Gid)
		}
		if err := d.Chown(path, uid, gid); err != nil {
			return toFuseError(err)
		}
	}

	if req.Valid.Atime() || req.Valid.Mtime() || req.Valid.AtimeNow() || req.Valid.MtimeNow() {
		atime, mtime := host.Omit(), host.Omit()
		switch {
		case req.Valid.AtimeNow():
			atime = host.Now()
		case req.Valid.Atime():
			atime = host.At(req.Atime)
		}
		switch {
		case req.Valid.MtimeNow():
			mtime = host.Now()
		case req.Valid.Mtime():
			mtime = host.At(req.Mtime)
		}
		if err := d.Utimens(path, atime, mtime); err != nil {
			return toFuseError(err)
		}
	}

	return n.Attr(ctx, &resp.Attr)
}

// Fsync implements the NodeFsyncer interface by syncing every handle the
// node has open. Without an open handle the file is opened just for the sync.
func (n *Node) Fsync(_ context.Context, req *fuse.FsyncRequest) error {
	if req.Dir {
		return nil
	}
	d := n.fs.d
	dataOnly := req.Flags&fsyncDataOnly != 0

	handles := n.openHandles()
	if len(handles) == 0 {
		path := n.Path()
		fh, err := d.Open(path, unix.O_RDONLY)
		if errors.Is(err, syscall.EACCES) {
			// fsync needs no particular access mode; try write-only files too
			fh, err = d.Open(path, unix.O_WRONLY)
		}
		if err != nil {
			return toFuseError(err)
		}
		defer d.Release(fh)
		return toFuseError(d.Fsync(fh, dataOnly))
	}
	for _, h := range handles {
		if err := d.Fsync(h.fh, dataOnly); err != nil {
			return toFuseError(err)
		}
	}
	return nil
}

// Getxattr implements the NodeGetxattrer interface.
func (n *Node) Getxattr(_ context.Context, req *fuse.GetxattrRequest, resp *fuse.GetxattrResponse) error {
	value, err := n.fs.d.XattrValue(n.Path(), req.Name)
	if err != nil {
		return toFuseError(err)
	}
	resp.Xattr = value
	return nil
}

// Listxattr implements the NodeListxattrer interface.
func (n *Node) Listxattr(_ context.Context, _ *fuse.ListxattrRequest, resp *fuse.ListxattrResponse) error {
	names, err := n.fs.d.XattrNames(n.Path())
	if err != nil {
		return toFuseError(err)
	}
	resp.Append(names...)
	return nil
}

// Setxattr implements the NodeSetxattrer interface.
func (n *Node) Setxattr(_ context.Context, req *fuse.SetxattrRequest) error {
	return toFuseError(n.fs.d.Setxattr(n.Path(), req.Name, req.Xattr, int(req.Flags)))
}

// Removexattr implements the NodeRemovexattrer interface.
func (n *Node) Removexattr(_ context.Context, req *fuse.RemovexattrRequest) error {
	return toFuseError(n.fs.d.Removexattr(n.Path(), req.Name))
}

// Forget implements the NodeForgetter interface.
func (n *Node) Forget() {
	nodeLogger.Trace("Forgetting %q", n.Path())
	n.fs.forget(n)
}
