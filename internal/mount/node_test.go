//go:build linux

package mount

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"testing"
	"time"

	ptfs "ptfs/internal/fs"
	"ptfs/internal/host"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
	"golang.org/x/sys/unix"
)

func setupTestFS(t *testing.T) (*FS, *Node, string) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	d, err := ptfs.NewDispatcher(ptfs.Options{Root: root}, host.OS())
	if err != nil {
		t.Fatalf("Failed to create dispatcher: %v", err)
	}
	f := New(d, Options{AttrValid: time.Second})
	rootNode, err := f.Root()
	if err != nil {
		t.Fatalf("Failed to get root: %v", err)
	}
	return f, rootNode.(*Node), root
}

func expectErrno(t *testing.T, err error, want syscall.Errno) {
	t.Helper()
	var errno fuse.Errno
	if !errors.As(err, &errno) || syscall.Errno(errno) != want {
		t.Errorf("Expected errno %v, got %v", want, err)
	}
}

func TestNodeLookupAndAttr(t *testing.T) {
	_, root, dir := setupTestFS(t)
	ctx := context.Background()

	if err := os.Mkdir(filepath.Join(dir, "docs"), 0750); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "docs", "a.txt"), []byte("hello"), 0640); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	t.Run("Root", func(t *testing.T) {
		var a fuse.Attr
		if err := root.Attr(ctx, &a); err != nil {
			t.Fatalf("Attr failed: %v", err)
		}
		if !a.Mode.IsDir() {
			t.Errorf("Expected root to be a directory, got %v", a.Mode)
		}
		if a.Valid != time.Second {
			t.Errorf("Expected attribute validity of 1s, got %v", a.Valid)
		}
	})

	t.Run("NestedFile", func(t *testing.T) {
		docs, err := root.Lookup(ctx, "docs")
		if err != nil {
			t.Fatalf("Lookup docs failed: %v", err)
		}
		file, err := docs.(*Node).Lookup(ctx, "a.txt")
		if err != nil {
			t.Fatalf("Lookup a.txt failed: %v", err)
		}
		if got := file.(*Node).Path(); got != "/docs/a.txt" {
			t.Errorf("Expected path /docs/a.txt, got %q", got)
		}

		var a fuse.Attr
		if err := file.Attr(ctx, &a); err != nil {
			t.Fatalf("Attr failed: %v", err)
		}
		if a.Size != 5 || a.Mode.Perm() != 0640 || !a.Mode.IsRegular() {
			t.Errorf("Unexpected attributes: size=%d mode=%v", a.Size, a.Mode)
		}
	})

	t.Run("StableIdentity", func(t *testing.T) {
		first, _ := root.Lookup(ctx, "docs")
		second, _ := root.Lookup(ctx, "docs")
		if first != second {
			t.Error("Expected repeated lookups to return the same node")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := root.Lookup(ctx, "nope")
		expectErrno(t, err, syscall.ENOENT)
	})
}

func TestNodeFileIO(t *testing.T) {
	_, root, dir := setupTestFS(t)
	ctx := context.Background()

	createResp := &fuse.CreateResponse{}
	node, handle, err := root.Create(ctx, &fuse.CreateRequest{
		Name:  "data.bin",
		Flags: fuse.OpenReadWrite,
		Mode:  0644,
	}, createResp)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	fh := handle.(*FileHandle)

	writeResp := &fuse.WriteResponse{}
	if err := fh.Write(ctx, &fuse.WriteRequest{Data: []byte("pass-through"), Offset: 0}, writeResp); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if writeResp.Size != 12 {
		t.Errorf("Expected 12 bytes written, got %d", writeResp.Size)
	}

	readResp := &fuse.ReadResponse{}
	if err := fh.Read(ctx, &fuse.ReadRequest{Size: 7, Offset: 5}, readResp); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(readResp.Data) != "through" {
		t.Errorf("Expected %q, got %q", "through", readResp.Data)
	}

	if err := fh.Flush(ctx, &fuse.FlushRequest{}); err != nil {
		t.Errorf("Flush failed: %v", err)
	}
	if err := node.(*Node).Fsync(ctx, &fuse.FsyncRequest{}); err != nil {
		t.Errorf("Fsync failed: %v", err)
	}
	if err := fh.Release(ctx, &fuse.ReleaseRequest{}); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if len(node.(*Node).openHandles()) != 0 {
		t.Error("Expected released handle to leave the node's handle set")
	}

	// Without an open handle fsync opens the file itself.
	if err := node.(*Node).Fsync(ctx, &fuse.FsyncRequest{Flags: fsyncDataOnly}); err != nil {
		t.Errorf("Fsync without handle failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "data.bin"))
	if err != nil {
		t.Fatalf("Failed to read source file: %v", err)
	}
	if string(data) != "pass-through" {
		t.Errorf("Expected source content %q, got %q", "pass-through", data)
	}

	// Reopen read-only and read past the end.
	openResp := &fuse.OpenResponse{}
	h2, err := node.(*Node).Open(ctx, &fuse.OpenRequest{Flags: fuse.OpenReadOnly}, openResp)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	readResp = &fuse.ReadResponse{}
	if err := h2.(*FileHandle).Read(ctx, &fuse.ReadRequest{Size: 10, Offset: 100}, readResp); err != nil {
		t.Fatalf("Read past end failed: %v", err)
	}
	if len(readResp.Data) != 0 {
		t.Errorf("Expected empty read past end, got %d bytes", len(readResp.Data))
	}
	if err := h2.(*FileHandle).Release(ctx, &fuse.ReleaseRequest{}); err != nil {
		t.Errorf("Release failed: %v", err)
	}
}

func TestNodeDirectIO(t *testing.T) {
	f, root, dir := setupTestFS(t)
	f.opts.DirectIO = true
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "f"), nil, 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	node, err := root.Lookup(ctx, "f")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	resp := &fuse.OpenResponse{}
	h, err := node.(*Node).Open(ctx, &fuse.OpenRequest{Flags: fuse.OpenReadOnly}, resp)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer h.(*FileHandle).Release(ctx, &fuse.ReleaseRequest{})
	if resp.Flags&fuse.OpenDirectIO == 0 {
		t.Error("Expected direct I/O flag on open response")
	}
}

func TestNodeReadDirAll(t *testing.T) {
	_, root, dir := setupTestFS(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	h, err := root.Open(ctx, &fuse.OpenRequest{Dir: true}, &fuse.OpenResponse{})
	if err != nil {
		t.Fatalf("Open directory failed: %v", err)
	}
	dh := h.(*DirHandle)

	entries, err := dh.ReadDirAll(ctx)
	if err != nil {
		t.Fatalf("ReadDirAll failed: %v", err)
	}

	var names []string
	types := make(map[string]fuse.DirentType)
	for _, e := range entries {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		names = append(names, e.Name)
		types[e.Name] = e.Type
	}
	sort.Strings(names)
	expected := []string{"one", "sub", "three", "two"}
	if len(names) != len(expected) {
		t.Fatalf("Expected entries %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Expected entries %v, got %v", expected, names)
			break
		}
	}
	if types["sub"] != fuse.DT_Dir || types["one"] != fuse.DT_File {
		t.Errorf("Unexpected entry types: %v", types)
	}

	// A second pass over the same handle rewinds the stream.
	again, err := dh.ReadDirAll(ctx)
	if err != nil {
		t.Fatalf("Second ReadDirAll failed: %v", err)
	}
	if len(again) != len(entries) {
		t.Errorf("Expected %d entries on second pass, got %d", len(entries), len(again))
	}

	if err := dh.Release(ctx, &fuse.ReleaseRequest{}); err != nil {
		t.Errorf("Release failed: %v", err)
	}
}

func TestNodeSetattr(t *testing.T) {
	_, root, dir := setupTestFS(t)
	ctx := context.Background()
	src := filepath.Join(dir, "f")

	if err := os.WriteFile(src, []byte("0123456789"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	n, err := root.Lookup(ctx, "f")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	node := n.(*Node)

	t.Run("SizeByPath", func(t *testing.T) {
		resp := &fuse.SetattrResponse{}
		req := &fuse.SetattrRequest{Valid: fuse.SetattrSize, Size: 4}
		if err := node.Setattr(ctx, req, resp); err != nil {
			t.Fatalf("Setattr failed: %v", err)
		}
		if resp.Attr.Size != 4 {
			t.Errorf("Expected size 4 in response, got %d", resp.Attr.Size)
		}
	})

	t.Run("SizeByHandle", func(t *testing.T) {
		h, err := node.Open(ctx, &fuse.OpenRequest{Flags: fuse.OpenWriteOnly}, &fuse.OpenResponse{})
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer h.(*FileHandle).Release(ctx, &fuse.ReleaseRequest{})

		resp := &fuse.SetattrResponse{}
		req := &fuse.SetattrRequest{Valid: fuse.SetattrSize | fuse.SetattrHandle, Size: 2}
		if err := node.Setattr(ctx, req, resp); err != nil {
			t.Fatalf("Setattr failed: %v", err)
		}
		info, err := os.Stat(src)
		if err != nil {
			t.Fatalf("Stat failed: %v", err)
		}
		if info.Size() != 2 {
			t.Errorf("Expected size 2, got %d", info.Size())
		}
	})

	t.Run("Mode", func(t *testing.T) {
		resp := &fuse.SetattrResponse{}
		req := &fuse.SetattrRequest{Valid: fuse.SetattrMode, Mode: 0600}
		if err := node.Setattr(ctx, req, resp); err != nil {
			t.Fatalf("Setattr failed: %v", err)
		}
		if resp.Attr.Mode.Perm() != 0600 {
			t.Errorf("Expected mode 0600, got %v", resp.Attr.Mode.Perm())
		}
	})

	t.Run("Owner", func(t *testing.T) {
		// Setting the current owner is always permitted.
		resp := &fuse.SetattrResponse{}
		req := &fuse.SetattrRequest{Valid: fuse.SetattrUid | fuse.SetattrGid, Uid: uint32(os.Getuid()), Gid: uint32(os.Getgid())}
		if err := node.Setattr(ctx, req, resp); err != nil {
			t.Fatalf("Setattr failed: %v", err)
		}
	})

	t.Run("Times", func(t *testing.T) {
		mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
		resp := &fuse.SetattrResponse{}
		req := &fuse.SetattrRequest{Valid: fuse.SetattrMtime, Mtime: mtime}
		if err := node.Setattr(ctx, req, resp); err != nil {
			t.Fatalf("Setattr failed: %v", err)
		}
		if !resp.Attr.Mtime.Equal(mtime) {
			t.Errorf("Expected mtime %v, got %v", mtime, resp.Attr.Mtime)
		}

		req = &fuse.SetattrRequest{Valid: fuse.SetattrAtimeNow}
		if err := node.Setattr(ctx, req, resp); err != nil {
			t.Fatalf("Setattr failed: %v", err)
		}
		if !resp.Attr.Mtime.Equal(mtime) {
			t.Errorf("Expected mtime to stay %v, got %v", mtime, resp.Attr.Mtime)
		}
	})
}

func TestNodeNamespace(t *testing.T) {
	f, root, dir := setupTestFS(t)
	ctx := context.Background()

	t.Run("MkdirAndRemove", func(t *testing.T) {
		sub, err := root.Mkdir(ctx, &fuse.MkdirRequest{Name: "sub", Mode: os.ModeDir | 0750})
		if err != nil {
			t.Fatalf("Mkdir failed: %v", err)
		}
		info, err := os.Stat(filepath.Join(dir, "sub"))
		if err != nil || !info.IsDir() || info.Mode().Perm() != 0750 {
			t.Fatalf("Expected directory with mode 0750, got %v (err=%v)", info, err)
		}
		if sub.(*Node).Path() != "/sub" {
			t.Errorf("Expected path /sub, got %q", sub.(*Node).Path())
		}

		if err := root.Remove(ctx, &fuse.RemoveRequest{Name: "sub", Dir: true}); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "sub")); !os.IsNotExist(err) {
			t.Errorf("Expected directory to be removed, got %v", err)
		}
	})

	t.Run("RemoveNonEmpty", func(t *testing.T) {
		if err := os.MkdirAll(filepath.Join(dir, "full", "x"), 0755); err != nil {
			t.Fatalf("Failed to create directories: %v", err)
		}
		err := root.Remove(ctx, &fuse.RemoveRequest{Name: "full", Dir: true})
		expectErrno(t, err, syscall.ENOTEMPTY)
	})

	t.Run("RenameMovesNodes", func(t *testing.T) {
		if err := os.MkdirAll(filepath.Join(dir, "from", "inner"), 0755); err != nil {
			t.Fatalf("Failed to create directories: %v", err)
		}
		from, err := root.Lookup(ctx, "from")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		inner, err := from.(*Node).Lookup(ctx, "inner")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}

		if err := root.Rename(ctx, &fuse.RenameRequest{OldName: "from", NewName: "to"}, root); err != nil {
			t.Fatalf("Rename failed: %v", err)
		}
		if got := inner.(*Node).Path(); got != "/to/inner" {
			t.Errorf("Expected moved path /to/inner, got %q", got)
		}
		var a fuse.Attr
		if err := inner.Attr(ctx, &a); err != nil {
			t.Errorf("Attr after rename failed: %v", err)
		}
		f.mu.RLock()
		_, stale := f.nodes["/from/inner"]
		f.mu.RUnlock()
		if stale {
			t.Error("Expected old path to leave the node cache")
		}
	})

	t.Run("SymlinkAndReadlink", func(t *testing.T) {
		n, err := root.Symlink(ctx, &fuse.SymlinkRequest{NewName: "lnk", Target: "../elsewhere"})
		if err != nil {
			t.Fatalf("Symlink failed: %v", err)
		}
		target, err := n.(*Node).Readlink(ctx, &fuse.ReadlinkRequest{})
		if err != nil {
			t.Fatalf("Readlink failed: %v", err)
		}
		if target != "../elsewhere" {
			t.Errorf("Expected target ../elsewhere, got %q", target)
		}
		var a fuse.Attr
		if err := n.Attr(ctx, &a); err != nil {
			t.Fatalf("Attr failed: %v", err)
		}
		if a.Mode&os.ModeSymlink == 0 {
			t.Errorf("Expected symlink mode, got %v", a.Mode)
		}
	})

	t.Run("Link", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, "orig"), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
		orig, err := root.Lookup(ctx, "orig")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		linked, err := root.Link(ctx, &fuse.LinkRequest{NewName: "copy"}, orig)
		if err != nil {
			t.Fatalf("Link failed: %v", err)
		}
		var a fuse.Attr
		if err := linked.Attr(ctx, &a); err != nil {
			t.Fatalf("Attr failed: %v", err)
		}
		if a.Nlink != 2 {
			t.Errorf("Expected link count 2, got %d", a.Nlink)
		}
	})

	t.Run("MknodFifo", func(t *testing.T) {
		if _, err := root.Mknod(ctx, &fuse.MknodRequest{Name: "pipe", Mode: os.ModeNamedPipe | 0600}); err != nil {
			t.Fatalf("Mknod failed: %v", err)
		}
		info, err := os.Lstat(filepath.Join(dir, "pipe"))
		if err != nil {
			t.Fatalf("Lstat failed: %v", err)
		}
		if info.Mode()&os.ModeNamedPipe == 0 {
			t.Errorf("Expected FIFO, got %v", info.Mode())
		}
	})
}

func TestNodeAccess(t *testing.T) {
	_, root, _ := setupTestFS(t)
	ctx := context.Background()

	// F_OK on the root always succeeds.
	if err := root.Access(ctx, &fuse.AccessRequest{Mask: 0}); err != nil {
		t.Errorf("Access failed: %v", err)
	}
	missing := &Node{fs: root.fs, path: "/missing", handles: make(map[*FileHandle]struct{})}
	expectErrno(t, missing.Access(ctx, &fuse.AccessRequest{Mask: 0}), syscall.ENOENT)
}

func TestNodeXattrs(t *testing.T) {
	_, root, dir := setupTestFS(t)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "f"), nil, 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	n, err := root.Lookup(ctx, "f")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	node := n.(*Node)

	err = node.Setxattr(ctx, &fuse.SetxattrRequest{Name: "user.color", Xattr: []byte("blue")})
	if err != nil {
		var errno fuse.Errno
		if errors.As(err, &errno) && syscall.Errno(errno) == syscall.ENOTSUP {
			t.Skip("user xattrs not supported on temp dir file system")
		}
		t.Fatalf("Setxattr failed: %v", err)
	}

	getResp := &fuse.GetxattrResponse{}
	if err := node.Getxattr(ctx, &fuse.GetxattrRequest{Name: "user.color"}, getResp); err != nil {
		t.Fatalf("Getxattr failed: %v", err)
	}
	if string(getResp.Xattr) != "blue" {
		t.Errorf("Expected value blue, got %q", getResp.Xattr)
	}

	listResp := &fuse.ListxattrResponse{}
	if err := node.Listxattr(ctx, &fuse.ListxattrRequest{}, listResp); err != nil {
		t.Fatalf("Listxattr failed: %v", err)
	}
	if string(listResp.Xattr) != "user.color\x00" {
		t.Errorf("Expected name list %q, got %q", "user.color\x00", listResp.Xattr)
	}

	if err := node.Removexattr(ctx, &fuse.RemovexattrRequest{Name: "user.color"}); err != nil {
		t.Fatalf("Removexattr failed: %v", err)
	}
	err = node.Getxattr(ctx, &fuse.GetxattrRequest{Name: "user.color"}, &fuse.GetxattrResponse{})
	expectErrno(t, err, syscall.ENODATA)
}

func TestStatfs(t *testing.T) {
	f, _, _ := setupTestFS(t)

	resp := &fuse.StatfsResponse{}
	if err := f.Statfs(context.Background(), &fuse.StatfsRequest{}, resp); err != nil {
		t.Fatalf("Statfs failed: %v", err)
	}
	if resp.Bsize == 0 || resp.Namelen == 0 {
		t.Errorf("Expected populated statistics, got %+v", resp)
	}
}

func TestForget(t *testing.T) {
	f, root, dir := setupTestFS(t)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "f"), nil, 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	first, err := root.Lookup(ctx, "f")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	first.(fusefs.NodeForgetter).Forget()

	f.mu.RLock()
	_, cached := f.nodes["/f"]
	f.mu.RUnlock()
	if cached {
		t.Error("Expected forgotten node to leave the cache")
	}

	second, err := root.Lookup(ctx, "f")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if first == second {
		t.Error("Expected a fresh node after forget")
	}
}

func TestNodeFlock(t *testing.T) {
	_, root, dir := setupTestFS(t)
	ctx := context.Background()
	src := filepath.Join(dir, "locked")

	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	n, err := root.Lookup(ctx, "locked")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	node := n.(*Node)

	open := func() *FileHandle {
		h, err := node.Open(ctx, &fuse.OpenRequest{Flags: fuse.OpenReadOnly}, &fuse.OpenResponse{})
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		return h.(*FileHandle)
	}
	first, second := open(), open()

	// A separate descriptor on the real file sees what the mount holds.
	realFile, err := os.Open(src)
	if err != nil {
		t.Fatalf("Failed to open source file: %v", err)
	}
	defer realFile.Close()
	hostLock := func(how int) error {
		return unix.Flock(int(realFile.Fd()), how|unix.LOCK_NB)
	}

	exclusive := &fuse.LockRequest{LockFlags: fuse.LockFlock, Lock: fuse.FileLock{Type: fuse.LockWrite}}
	if err := first.Lock(ctx, exclusive); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	expectErrno(t, second.Lock(ctx, exclusive), syscall.EAGAIN)
	if err := hostLock(unix.LOCK_SH); err != unix.EWOULDBLOCK {
		t.Errorf("Expected the real file to be locked, got %v", err)
	}

	if err := first.Unlock(ctx, &fuse.UnlockRequest{LockFlags: fuse.LockFlock}); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	shared := &fuse.LockWaitRequest{LockFlags: fuse.LockFlock, Lock: fuse.FileLock{Type: fuse.LockRead}}
	if err := second.LockWait(ctx, shared); err != nil {
		t.Fatalf("LockWait failed: %v", err)
	}
	if err := hostLock(unix.LOCK_EX); err != unix.EWOULDBLOCK {
		t.Errorf("Expected a shared lock on the real file, got %v", err)
	}

	queryResp := &fuse.QueryLockResponse{}
	if err := second.QueryLock(ctx, &fuse.QueryLockRequest{}, queryResp); err != nil {
		t.Errorf("QueryLock failed: %v", err)
	}
	if queryResp.Lock.Type != fuse.LockUnlock {
		t.Errorf("Expected no conflicting lock, got %v", queryResp.Lock.Type)
	}

	// Byte-range locks are not relayed.
	posix := &fuse.LockRequest{Lock: fuse.FileLock{Type: fuse.LockWrite, Start: 0, End: 10}}
	expectErrno(t, first.Lock(ctx, posix), syscall.ENOTSUP)

	if err := second.Release(ctx, &fuse.ReleaseRequest{ReleaseFlags: fuse.ReleaseFlockUnlock}); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if err := hostLock(unix.LOCK_EX); err != nil {
		t.Errorf("Expected the lock to be gone after release, got %v", err)
	}
	if err := first.Release(ctx, &fuse.ReleaseRequest{}); err != nil {
		t.Errorf("Release failed: %v", err)
	}
}

func TestNodeWritebackOpenFlags(t *testing.T) {
	f, root, dir := setupTestFS(t)
	f.opts.WritebackCache = true
	ctx := context.Background()

	_, handle, err := root.Create(ctx, &fuse.CreateRequest{
		Name:  "log",
		Flags: fuse.OpenWriteOnly | fuse.OpenAppend,
		Mode:  0644,
	}, &fuse.CreateResponse{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	fh := handle.(*FileHandle)
	defer fh.Release(ctx, &fuse.ReleaseRequest{})

	if fh.flags&unix.O_ACCMODE != unix.O_RDWR || fh.flags&unix.O_APPEND != 0 {
		t.Errorf("Expected O_RDWR without O_APPEND, got %#x", fh.flags)
	}

	if err := fh.Write(ctx, &fuse.WriteRequest{Data: []byte("abcdef")}, &fuse.WriteResponse{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// The kernel fills partial pages through the same handle.
	readResp := &fuse.ReadResponse{}
	if err := fh.Read(ctx, &fuse.ReadRequest{Size: 4096}, readResp); err != nil {
		t.Fatalf("Read on write-only open failed: %v", err)
	}
	if string(readResp.Data) != "abcdef" {
		t.Errorf("Expected %q, got %q", "abcdef", readResp.Data)
	}

	// Writes land at the offset the kernel chose, not at the end.
	if err := fh.Write(ctx, &fuse.WriteRequest{Data: []byte("XY"), Offset: 2}, &fuse.WriteResponse{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "log"))
	if err != nil {
		t.Fatalf("Failed to read source file: %v", err)
	}
	if string(data) != "abXYef" {
		t.Errorf("Expected %q, got %q", "abXYef", data)
	}
}

func TestNodeOpenFlagsWithoutWriteback(t *testing.T) {
	_, root, _ := setupTestFS(t)

	flags := unix.O_WRONLY | unix.O_APPEND
	if got := root.openFlags(flags); got != flags {
		t.Errorf("Expected flags %#x unchanged, got %#x", flags, got)
	}
}

func TestNodeFsyncWriteOnlyFile(t *testing.T) {
	_, root, dir := setupTestFS(t)
	ctx := context.Background()
	src := filepath.Join(dir, "wo")

	if err := os.WriteFile(src, []byte("data"), 0600); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := os.Chmod(src, 0200); err != nil {
		t.Fatalf("Failed to chmod file: %v", err)
	}
	n, err := root.Lookup(ctx, "wo")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if err := n.(*Node).Fsync(ctx, &fuse.FsyncRequest{}); err != nil {
		t.Errorf("Fsync of write-only file failed: %v", err)
	}
}
