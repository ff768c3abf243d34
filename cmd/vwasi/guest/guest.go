// Package guest drives a WASI host the way an engine-hosted guest would:
// call arguments are encoded into linear memory and every operation goes
// through the exported wasi_snapshot_preview1 functions.
package guest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pgavlin/vwasi/fs"
	"github.com/pgavlin/vwasi/mem"
	"github.com/pgavlin/vwasi/wasi"
)

// PreopenFd is the descriptor of the first pre-opened directory in the
// startup table, right after stdin, stdout, and stderr.
const PreopenFd = 3

const readBufSize = 32 * 1024
const dirBufSize = 4096

// Guest binds a host to a fresh linear memory and exposes typed wrappers
// over the wire-level import functions.
type Guest struct {
	mem     mem.Memory
	exports map[string]interface{}
	brk     uint32
}

// New builds a guest over fsys, pre-opened under the name "/". Guest stdout
// and stderr forward to out.
func New(fsys *fs.FS, out io.Writer) *Guest {
	g := &Guest{mem: mem.New(16, 64), brk: 1024}
	host := wasi.NewHost(&g.mem, &wasi.Options{
		FDs: []wasi.Handle{
			wasi.NewPollableStdin(nil),
			wasi.NewWriterDevice(out),
			wasi.NewWriterDevice(out),
			wasi.NewPreopen(fsys, "/"),
		},
	})
	g.exports = host.Exports()
	return g
}

// LoadDir builds a virtual filesystem image from the contents of a host
// directory.
func LoadDir(dir string) (*fs.FS, error) {
	files := map[string][]byte{}
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			files[rel+"/"] = nil
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fs.FromMap(files)
}

// alloc carves n bytes out of the guest's bump heap.
func (g *Guest) alloc(n uint32) uint32 {
	addr := (g.brk + 7) &^ 7
	g.brk = addr + n
	return addr
}

func (g *Guest) writeString(s string) (ptr, length uint32) {
	ptr = g.alloc(uint32(len(s)))
	copy(g.mem.Slice(ptr, uint32(len(s))), s)
	return ptr, uint32(len(s))
}

// PathOpen opens path relative to the descriptor dir.
func (g *Guest) PathOpen(dir int32, path string, oflags wasi.Oflags, fdflags wasi.Fdflags) (int32, error) {
	pptr, plen := g.writeString(path)
	resp := g.alloc(4)

	open := g.exports["path_open"].(func(int32, int32, int32, int32, int32, int64, int64, int32, int32) int32)
	errno := wasi.Errno(open(dir, 0, int32(pptr), int32(plen), int32(oflags), int64(wasi.AllRights), int64(wasi.AllRights), int32(fdflags), int32(resp)))
	if errno != wasi.ErrnoSuccess {
		return -1, fmt.Errorf("open %s: errno %d", path, errno)
	}
	return int32(g.mem.Uint32(resp, 0)), nil
}

// Close releases a descriptor.
func (g *Guest) Close(fd int32) {
	g.exports["fd_close"].(func(int32) int32)(fd)
}

// ReadAll drains a descriptor through fd_read.
func (g *Guest) ReadAll(fd int32) ([]byte, error) {
	buf := g.alloc(readBufSize)
	iov := g.alloc(8)
	resp := g.alloc(4)
	g.mem.PutUint32(buf, iov, 0)
	g.mem.PutUint32(readBufSize, iov, 4)

	read := g.exports["fd_read"].(func(int32, int32, int32, int32) int32)

	var out []byte
	for {
		errno := wasi.Errno(read(fd, int32(iov), 1, int32(resp)))
		if errno != wasi.ErrnoSuccess {
			return out, fmt.Errorf("read: errno %d", errno)
		}
		n := g.mem.Uint32(resp, 0)
		if n == 0 {
			return out, nil
		}
		out = append(out, g.mem.Slice(buf, n)...)
	}
}

// DirEntry is one decoded fd_readdir entry.
type DirEntry struct {
	Name string
	Type wasi.Filetype
	Ino  uint64
}

// ReadDir enumerates a directory descriptor, dot entries included.
func (g *Guest) ReadDir(fd int32) ([]DirEntry, error) {
	buf := g.alloc(dirBufSize)
	resp := g.alloc(4)

	readdir := g.exports["fd_readdir"].(func(int32, int32, int32, int64, int32) int32)

	var entries []DirEntry
	cookie := uint64(0)
	for {
		errno := wasi.Errno(readdir(fd, int32(buf), dirBufSize, int64(cookie), int32(resp)))
		if errno != wasi.ErrnoSuccess {
			return entries, fmt.Errorf("readdir: errno %d", errno)
		}
		used := g.mem.Uint32(resp, 0)
		if used == 0 {
			return entries, nil
		}

		off := uint32(0)
		for off+24 <= used {
			next := g.mem.Uint64(buf+off, 0)
			ino := g.mem.Uint64(buf+off, 8)
			namlen := g.mem.Uint32(buf+off, 16)
			typ := wasi.Filetype(g.mem.Byte(buf+off, 20))
			if off+24+namlen > used {
				break
			}
			entries = append(entries, DirEntry{
				Name: string(g.mem.Slice(buf+off+24, namlen)),
				Type: typ,
				Ino:  ino,
			})
			cookie = next
			off += 24 + namlen
		}

		// A short buffer means the host had more to report; anything
		// else means the enumeration completed.
		if used < dirBufSize {
			return entries, nil
		}
	}
}

// Stat returns the attributes of the node at path relative to dir.
func (g *Guest) Stat(dir int32, path string) (wasi.Filestat, error) {
	pptr, plen := g.writeString(path)
	resp := g.alloc(64)

	stat := g.exports["path_filestat_get"].(func(int32, int32, int32, int32, int32) int32)
	errno := wasi.Errno(stat(dir, 0, int32(pptr), int32(plen), int32(resp)))
	if errno != wasi.ErrnoSuccess {
		return wasi.Filestat{}, fmt.Errorf("stat %s: errno %d", path, errno)
	}

	return wasi.Filestat{
		Dev:      g.mem.Uint64(resp, 0),
		Ino:      g.mem.Uint64(resp, 8),
		Filetype: wasi.Filetype(g.mem.Byte(resp, 16)),
		Nlink:    g.mem.Uint64(resp, 24),
		Size:     g.mem.Uint64(resp, 32),
		Atim:     g.mem.Uint64(resp, 40),
		Mtim:     g.mem.Uint64(resp, 48),
		Ctim:     g.mem.Uint64(resp, 56),
	}, nil
}
