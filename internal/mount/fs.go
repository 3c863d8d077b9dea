// Package mount binds the pass-through dispatcher to bazil.org/fuse and
// owns the mount lifecycle.
package mount

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	ptfs "ptfs/internal/fs"
	"ptfs/internal/logging"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	fsLogger = logging.GetLogger().WithPrefix("mount")
)

// Options tunes how the dispatcher is presented to the kernel.
type Options struct {
	// AttrValid is how long the kernel may cache attributes.
	AttrValid time.Duration
	// DirectIO bypasses the kernel page cache for opened files.
	DirectIO bool
	// Debug forwards bazil.org/fuse protocol messages to the trace log.
	Debug bool
	// WritebackCache must match the writeback_cache mount option. The
	// kernel then reads through any open handle and tracks the append
	// position itself, so opens are widened accordingly.
	WritebackCache bool
}

// FS is the bazil.org/fuse file system backed by a Dispatcher. It keeps one
// Node per live virtual path so node identities stay stable across lookups
// and follow renames.
type FS struct {
	d     *ptfs.Dispatcher
	opts  Options
	mu    sync.RWMutex
	nodes map[string]*Node

	conn   *fuse.Conn
	served chan error
}

// New creates a FUSE file system relaying to d.
func New(d *ptfs.Dispatcher, opts Options) *FS {
	fsLogger.Debug("Creating FUSE file system for %s", d.Root())
	return &FS{
		d:     d,
		opts:  opts,
		nodes: make(map[string]*Node),
	}
}

// Root implements the fusefs.FS interface, returning the root directory node.
func (f *FS) Root() (fusefs.Node, error) {
	return f.node(""), nil
}

// Statfs implements fusefs.FSStatfser with the statistics of the root.
func (f *FS) Statfs(_ context.Context, _ *fuse.StatfsRequest, resp *fuse.StatfsResponse) error {
	st, err := f.d.Statfs("")
	if err != nil {
		return toFuseError(err)
	}
	resp.Blocks = st.Blocks
	resp.Bfree = st.Bfree
	resp.Bavail = st.Bavail
	resp.Files = st.Files
	resp.Ffree = st.Ffree
	resp.Bsize = st.Bsize
	resp.Frsize = st.Frsize
	resp.Namelen = st.Namelen
	return nil
}

// node returns the cached node for path, creating it on first use.
func (f *FS) node(path string) *Node {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, ok := f.nodes[path]; ok {
		return n
	}
	n := &Node{fs: f, path: path, handles: make(map[*FileHandle]struct{})}
	f.nodes[path] = n
	return n
}

// forget drops n from the cache if it is still the node for its path.
func (f *FS) forget(n *Node) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cur, ok := f.nodes[n.path]; ok && cur == n {
		delete(f.nodes, n.path)
	}
}

// drop removes the cached node of a path that no longer exists.
func (f *FS) drop(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.nodes, path)
}

// move re-keys the node at from, and every node below it, to to.
func (f *FS) move(from, to string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.nodes, to)
	prefix := from + "/"
	for path, n := range f.nodes {
		var newPath string
		switch {
		case path == from:
			newPath = to
		case strings.HasPrefix(path, prefix):
			newPath = to + "/" + strings.TrimPrefix(path, prefix)
		default:
			continue
		}
		fsLogger.Trace("Moving node %q -> %q", path, newPath)
		delete(f.nodes, path)
		n.path = newPath
		f.nodes[newPath] = n
	}
}

func waitForMount(mountpoint string) error {
	for i := 0; i < 30; i++ {
		info, err := os.Stat(mountpoint)
		if err == nil && info.IsDir() {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("mount point not available after 3 seconds")
}

// Mount mounts the file system at mountPoint and starts serving requests
// in the background. Wait blocks until serving stops.
func (f *FS) Mount(mountPoint string, mountOpts ...fuse.MountOption) error {
	fsLogger.Info("Mounting %s at %s", f.d.Root(), mountPoint)

	c, err := fuse.Mount(mountPoint, mountOpts...)
	if err != nil {
		return fmt.Errorf("mount failed: %w", err)
	}
	f.conn = c
	f.served = make(chan error, 1)

	cfg := &fusefs.Config{}
	if f.opts.Debug {
		cfg.Debug = func(msg interface{}) {
			fsLogger.Trace("%v", msg)
		}
	}
	srv := fusefs.New(c, cfg)
	go func() {
		err := srv.Serve(f)
		if err != nil {
			fsLogger.Error("FUSE server error: %v", err)
		}
		f.served <- err
	}()

	if err := waitForMount(mountPoint); err != nil {
		c.Close()
		fsLogger.Error("Mount point not ready: %v", err)
		return fmt.Errorf("mount point failed to initialize: %w", err)
	}

	fsLogger.Info("Filesystem mounted successfully")
	return nil
}

// Wait blocks until the server stops and closes the FUSE connection.
func (f *FS) Wait() error {
	if f.conn == nil {
		return nil
	}
	err := <-f.served
	if cerr := f.conn.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Unmount cleanly unmounts the filesystem.
func (f *FS) Unmount(mountPoint string) error {
	fsLogger.Info("Unmounting filesystem from: %s", mountPoint)
	if f.conn == nil {
		return nil
	}
	if err := fuse.Unmount(mountPoint); err != nil {
		fsLogger.Error("Unmount failed: %v", err)
		return err
	}
	fsLogger.Info("Unmount completed successfully")
	return nil
}
