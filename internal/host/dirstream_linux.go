//go:build linux

package host

import (
	"bytes"
	"encoding/binary"
	"io"

	"golang.org/x/sys/unix"
)

// Layout of struct linux_dirent64.
const (
	direntInoOff    = 0
	direntOffOff    = 8
	direntReclenOff = 16
	direntTypeOff   = 18
	direntNameOff   = 19
)

const direntBufSize = 8192

// dirStream reads linux_dirent64 records with getdents64. The d_off
// cookie of each record is what the kernel accepts back through lseek,
// which makes the stream resumable at any previously returned offset.
type dirStream struct {
	fd  int
	buf []byte
	pos int
	end int
}

func openDirStream(path string) (*dirStream, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	return &dirStream{fd: fd, buf: make([]byte, direntBufSize)}, nil
}

func (d *dirStream) Next() (*Dirent, error) {
	if d.pos >= d.end {
		n, err := unix.Getdents(d.fd, d.buf)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, nil
		}
		d.pos, d.end = 0, n
	}

	rec := d.buf[d.pos:d.end]
	if len(rec) < direntNameOff {
		return nil, unix.EIO
	}
	reclen := int(binary.NativeEndian.Uint16(rec[direntReclenOff:]))
	if reclen < direntNameOff || reclen > len(rec) {
		return nil, unix.EIO
	}
	name := rec[direntNameOff:reclen]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	d.pos += reclen

	return &Dirent{
		Name: string(name),
		Ino:  binary.NativeEndian.Uint64(rec[direntInoOff:]),
		Type: rec[direntTypeOff],
		Off:  int64(binary.NativeEndian.Uint64(rec[direntOffOff:])),
	}, nil
}

func (d *dirStream) Seek(off int64) error {
	if _, err := unix.Seek(d.fd, off, io.SeekStart); err != nil {
		return err
	}
	d.pos, d.end = 0, 0
	return nil
}

func (d *dirStream) Close() error {
	fd := d.fd
	d.fd = -1
	return unix.Close(fd)
}
