package mount

import (
	"bazil.org/fuse/fs"
)

// Requests without a matching method are answered with ENOSYS by
// bazil.org/fuse, so every supported operation is pinned here.
var (
	_ fs.FS         = (*FS)(nil)
	_ fs.FSStatfser = (*FS)(nil)

	_ fs.Node               = (*Node)(nil)
	_ fs.NodeStringLookuper = (*Node)(nil)
	_ fs.NodeAccesser       = (*Node)(nil)
	_ fs.NodeReadlinker     = (*Node)(nil)
	_ fs.NodeOpener         = (*Node)(nil)
	_ fs.NodeCreater        = (*Node)(nil)
	_ fs.NodeMkdirer        = (*Node)(nil)
	_ fs.NodeMknoder        = (*Node)(nil)
	_ fs.NodeRemover        = (*Node)(nil)
	_ fs.NodeSymlinker      = (*Node)(nil)
	_ fs.NodeRenamer        = (*Node)(nil)
	_ fs.NodeLinker         = (*Node)(nil)
	_ fs.NodeSetattrer      = (*Node)(nil)
	_ fs.NodeFsyncer        = (*Node)(nil)
	_ fs.NodeGetxattrer     = (*Node)(nil)
	_ fs.NodeListxattrer    = (*Node)(nil)
	_ fs.NodeSetxattrer     = (*Node)(nil)
	_ fs.NodeRemovexattrer  = (*Node)(nil)
	_ fs.NodeForgetter      = (*Node)(nil)

	_ fs.Handle             = (*FileHandle)(nil)
	_ fs.HandleReader       = (*FileHandle)(nil)
	_ fs.HandleWriter       = (*FileHandle)(nil)
	_ fs.HandleFlusher      = (*FileHandle)(nil)
	_ fs.HandleReleaser     = (*FileHandle)(nil)
	_ fs.HandleFlockLocker  = (*FileHandle)(nil)
	_ fs.HandleReadDirAller = (*DirHandle)(nil)
	_ fs.HandleReleaser     = (*DirHandle)(nil)
)
