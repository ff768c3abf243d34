package wasi

import (
	"errors"
	"time"

	"github.com/pgavlin/vwasi/fs"
)

func timestampOf(t time.Time) timestamp {
	return timestamp(t.UnixNano())
}

// nodeFilestat builds the wire attributes for a virtual filesystem node. Dev
// is always 0: the host exposes a single virtual device. Nlink is always 1;
// the tree does not track hard link counts.
func nodeFilestat(n fs.Node) Filestat {
	atim, mtim, ctim := n.Times()
	stat := Filestat{
		Ino:   n.Ino(),
		Nlink: 1,
		Atim:  timestampOf(atim),
		Mtim:  timestampOf(mtim),
		Ctim:  timestampOf(ctim),
	}
	switch f := n.(type) {
	case *fs.File:
		stat.Filetype = FiletypeRegularFile
		stat.Size = f.Size()
	case *fs.Directory:
		stat.Filetype = FiletypeDirectory
	}
	return stat
}

func nodeFiletype(n fs.Node) Filetype {
	switch n.(type) {
	case *fs.File:
		return FiletypeRegularFile
	case *fs.Directory:
		return FiletypeDirectory
	default:
		return FiletypeUnknown
	}
}

// openFile is an open regular file: a reference to the file's buffer plus a
// cursor. The buffer is shared between handles; the cursor is not.
type openFile struct {
	unsupportedHandle

	f       *fs.File
	pos     uint64
	fdflags Fdflags
}

// NewFileHandle opens f with the given descriptor flags and the cursor at
// offset 0.
func NewFileHandle(f *fs.File, fdflags Fdflags) Handle {
	return &openFile{f: f, fdflags: fdflags}
}

func (h *openFile) Fdstat() (Fdstat, Errno) {
	return Fdstat{
		Filetype:   FiletypeRegularFile,
		Flags:      h.fdflags,
		RightsBase: FileRights,
	}, ErrnoSuccess
}

func (h *openFile) Filestat() (Filestat, Errno) {
	return nodeFilestat(h.f), ErrnoSuccess
}

func (h *openFile) SetFlags(flags Fdflags) Errno {
	h.fdflags = flags
	return ErrnoSuccess
}

func (h *openFile) SetSize(size uint64) Errno {
	return fsErrno(h.f.Truncate(size))
}

func (h *openFile) SetTimes(atim, mtim *time.Time) Errno {
	h.f.SetTimes(atim, mtim)
	return ErrnoSuccess
}

// Advise accepts any hint. The file is already resident in memory, so every
// access pattern is equally cheap.
func (h *openFile) Advise(offset, length uint64, advice uint8) Errno {
	return ErrnoSuccess
}

func (h *openFile) Allocate(offset, length uint64) Errno {
	return fsErrno(h.f.Allocate(offset, length))
}

func (h *openFile) Read(p []byte) (uint32, Errno) {
	n := h.f.ReadAt(p, h.pos)
	h.pos += uint64(n)
	return n, ErrnoSuccess
}

func (h *openFile) Write(p []byte) (uint32, Errno) {
	if h.fdflags&FdflagAppend != 0 {
		n, err := h.f.Append(p)
		if err != nil {
			return 0, fsErrno(err)
		}
		h.pos = h.f.Size()
		return n, ErrnoSuccess
	}
	n, err := h.f.WriteAt(p, h.pos)
	if err != nil {
		return 0, fsErrno(err)
	}
	h.pos += uint64(n)
	return n, ErrnoSuccess
}

func (h *openFile) Pread(p []byte, offset uint64) (uint32, Errno) {
	return h.f.ReadAt(p, offset), ErrnoSuccess
}

func (h *openFile) Pwrite(p []byte, offset uint64) (uint32, Errno) {
	n, err := h.f.WriteAt(p, offset)
	if err != nil {
		return 0, fsErrno(err)
	}
	return n, ErrnoSuccess
}

func (h *openFile) Seek(offset int64, whence uint8) (uint64, Errno) {
	var base int64
	switch whence {
	case WhenceSet:
		base = 0
	case WhenceCur:
		base = int64(h.pos)
	case WhenceEnd:
		base = int64(h.f.Size())
	default:
		return 0, ErrnoInval
	}
	pos := base + offset
	if pos < 0 {
		return 0, ErrnoInval
	}
	h.pos = uint64(pos)
	return h.pos, ErrnoSuccess
}

func (h *openFile) Tell() (uint64, Errno) {
	return h.pos, ErrnoSuccess
}

// PollRead reports a regular file as always ready, with the byte count of
// the remaining contents past the cursor.
func (h *openFile) PollRead() (uint64, Eventrwflags, bool) {
	if size := h.f.Size(); size > h.pos {
		return size - h.pos, 0, true
	}
	return 0, 0, true
}

// openDirectory is an open directory handle. It retains the owning FS so the
// path_* family can create and remove entries beneath it.
type openDirectory struct {
	unsupportedHandle

	fsys *fs.FS
	d    *fs.Directory
}

// NewDirectoryHandle opens d against its owning filesystem.
func NewDirectoryHandle(fsys *fs.FS, d *fs.Directory) Handle {
	return &openDirectory{fsys: fsys, d: d}
}

// vfs exposes the backing filesystem and directory for cross-descriptor
// operations in the dispatcher.
func (h *openDirectory) vfs() (*fs.FS, *fs.Directory) {
	return h.fsys, h.d
}

func (h *openDirectory) Fdstat() (Fdstat, Errno) {
	return Fdstat{
		Filetype:         FiletypeDirectory,
		RightsBase:       DirectoryRights,
		RightsInheriting: AllRights,
	}, ErrnoSuccess
}

func (h *openDirectory) Filestat() (Filestat, Errno) {
	return nodeFilestat(h.d), ErrnoSuccess
}

func (h *openDirectory) SetTimes(atim, mtim *time.Time) Errno {
	h.d.SetTimes(atim, mtim)
	return ErrnoSuccess
}

// Readdir enumerates ".", "..", then the directory's entries in insertion
// order. The cookie is positional: 0 and 1 select the dot entries and cookie
// c selects entry c-2, so enumeration resumed mid-stream after a mutation
// reflects the directory's current order.
func (h *openDirectory) Readdir(cookie uint64) (*Dirent, Errno) {
	switch cookie {
	case 0:
		return &Dirent{Next: 1, Ino: h.d.Ino(), Type: FiletypeDirectory, Name: "."}, ErrnoSuccess
	case 1:
		return &Dirent{Next: 2, Ino: h.d.ParentIno(), Type: FiletypeDirectory, Name: ".."}, ErrnoSuccess
	}
	idx := cookie - 2
	if idx >= uint64(h.d.Len()) {
		return nil, ErrnoSuccess
	}
	name, node := h.d.At(int(idx))
	return &Dirent{
		Next: cookie + 1,
		Ino:  node.Ino(),
		Type: nodeFiletype(node),
		Name: name,
	}, ErrnoSuccess
}

func (h *openDirectory) PathOpen(path fs.Path, oflags Oflags, fdflags Fdflags) (Handle, Errno) {
	node, err := h.fsys.Resolve(h.d, path)
	switch {
	case errors.Is(err, fs.ErrNotFound) && oflags&OflagCreat != 0:
		node, err = h.fsys.Create(h.d, path, oflags&OflagDirectory != 0)
		if err != nil {
			return nil, fsErrno(err)
		}
	case err != nil:
		return nil, fsErrno(err)
	case oflags&(OflagCreat|OflagExcl) == OflagCreat|OflagExcl:
		return nil, ErrnoExist
	}

	switch n := node.(type) {
	case *fs.Directory:
		if oflags&OflagTrunc != 0 {
			return nil, ErrnoIsdir
		}
		return &openDirectory{fsys: h.fsys, d: n}, ErrnoSuccess
	case *fs.File:
		if oflags&OflagDirectory != 0 {
			return nil, ErrnoNotdir
		}
		if oflags&OflagTrunc != 0 {
			if err := n.Truncate(0); err != nil {
				return nil, fsErrno(err)
			}
		}
		open := &openFile{f: n, fdflags: fdflags}
		if fdflags&FdflagAppend != 0 {
			open.pos = n.Size()
		}
		return open, ErrnoSuccess
	default:
		return nil, ErrnoIo
	}
}

func (h *openDirectory) PathCreateDirectory(path fs.Path) Errno {
	_, err := h.fsys.Create(h.d, path, true)
	return fsErrno(err)
}

func (h *openDirectory) PathFilestat(path fs.Path) (Filestat, Errno) {
	node, err := h.fsys.Resolve(h.d, path)
	if err != nil {
		return Filestat{}, fsErrno(err)
	}
	return nodeFilestat(node), ErrnoSuccess
}

func (h *openDirectory) PathSetTimes(path fs.Path, atim, mtim *time.Time) Errno {
	node, err := h.fsys.Resolve(h.d, path)
	if err != nil {
		return fsErrno(err)
	}
	node.SetTimes(atim, mtim)
	return ErrnoSuccess
}

func (h *openDirectory) PathRemoveDirectory(path fs.Path) Errno {
	return fsErrno(h.fsys.RemoveDirectory(h.d, path))
}

func (h *openDirectory) PathUnlinkFile(path fs.Path) Errno {
	return fsErrno(h.fsys.UnlinkFile(h.d, path))
}

func (h *openDirectory) Dir() (*fs.Directory, Errno) {
	return h.d, ErrnoSuccess
}

// preopenDirectory is a directory handle installed in the startup descriptor
// table. Its name is the capability the guest maps paths under.
type preopenDirectory struct {
	openDirectory

	name string
}

// NewPreopen opens the root of fsys as a pre-opened capability named name.
func NewPreopen(fsys *fs.FS, name string) Handle {
	return &preopenDirectory{
		openDirectory: openDirectory{fsys: fsys, d: fsys.Root()},
		name:          name,
	}
}

// NewPreopenDirectory opens d as a pre-opened capability named name.
func NewPreopenDirectory(fsys *fs.FS, d *fs.Directory, name string) Handle {
	return &preopenDirectory{
		openDirectory: openDirectory{fsys: fsys, d: d},
		name:          name,
	}
}

func (h *preopenDirectory) Preopen() (string, bool) {
	return h.name, true
}
