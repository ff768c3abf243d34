package fs

import "time"

// Node is a virtual filesystem inode: a regular file or a directory. Every
// node carries a process-unique ino issued by the FS that constructed it;
// ino 0 is reserved for the synthetic parent of the filesystem root.
type Node interface {
	Ino() uint64
	Times() (atim, mtim, ctim time.Time)
	SetTimes(atim, mtim *time.Time)

	node()
}

type attrs struct {
	ino  uint64
	atim time.Time
	mtim time.Time
	ctim time.Time
}

func newAttrs(ino uint64) attrs {
	now := time.Now()
	return attrs{ino: ino, atim: now, mtim: now, ctim: now}
}

func (a *attrs) Ino() uint64 {
	return a.ino
}

func (a *attrs) Times() (atim, mtim, ctim time.Time) {
	return a.atim, a.mtim, a.ctim
}

// SetTimes adjusts the access and modification timestamps; a nil pointer
// leaves the corresponding timestamp untouched.
func (a *attrs) SetTimes(atim, mtim *time.Time) {
	if atim != nil {
		a.atim = *atim
	}
	if mtim != nil {
		a.mtim = *mtim
	}
	a.ctim = time.Now()
}

func (a *attrs) touch() {
	now := time.Now()
	a.mtim, a.ctim = now, now
}

// File is a regular file: a mutable byte buffer plus a read-only flag. A File
// outlives its directory entry; open handles keep operating on the same
// buffer after the name is unlinked.
type File struct {
	attrs

	data     []byte
	readOnly bool
}

func (*File) node() {}

// Size returns the current length of the file's contents in bytes.
func (f *File) Size() uint64 {
	return uint64(len(f.data))
}

// ReadOnly reports whether writes to the file are rejected.
func (f *File) ReadOnly() bool {
	return f.readOnly
}

// ReadAt copies file contents starting at off into p and returns the number
// of bytes copied. Reads at or past end-of-file return 0.
func (f *File) ReadAt(p []byte, off uint64) uint32 {
	if off >= uint64(len(f.data)) {
		return 0
	}
	return uint32(copy(p, f.data[off:]))
}

// WriteAt copies p into the file starting at off, zero-filling any gap
// between the current end-of-file and off.
func (f *File) WriteAt(p []byte, off uint64) (uint32, error) {
	if f.readOnly {
		return 0, ErrReadOnly
	}
	if end := off + uint64(len(p)); end > uint64(len(f.data)) {
		grown := make([]byte, end)
		copy(grown, f.data)
		f.data = grown
	}
	n := copy(f.data[off:], p)
	f.touch()
	return uint32(n), nil
}

// Append writes p at end-of-file.
func (f *File) Append(p []byte) (uint32, error) {
	return f.WriteAt(p, uint64(len(f.data)))
}

// Truncate resizes the file to size bytes, zero-filling when growing.
func (f *File) Truncate(size uint64) error {
	if f.readOnly {
		return ErrReadOnly
	}
	switch {
	case size < uint64(len(f.data)):
		f.data = f.data[:size]
	case size > uint64(len(f.data)):
		grown := make([]byte, size)
		copy(grown, f.data)
		f.data = grown
	}
	f.touch()
	return nil
}

// Allocate ensures the file is at least off+length bytes long. It never
// shrinks the file.
func (f *File) Allocate(off, length uint64) error {
	if end := off + length; end > uint64(len(f.data)) {
		return f.Truncate(end)
	}
	return nil
}

// Directory is a directory inode: an insertion-ordered mapping from names to
// child nodes. The parent reference is non-owning and only answers "what is
// my parent's ino"; ownership flows strictly parent to child.
type Directory struct {
	attrs

	parent   *Directory
	names    []string
	children map[string]Node
}

func (*Directory) node() {}

// Len returns the number of entries in the directory.
func (d *Directory) Len() int {
	return len(d.names)
}

// Get returns the named child, if present.
func (d *Directory) Get(name string) (Node, bool) {
	n, ok := d.children[name]
	return n, ok
}

// At returns the i'th entry in insertion order.
func (d *Directory) At(i int) (string, Node) {
	name := d.names[i]
	return name, d.children[name]
}

// ParentIno returns the ino reported for "..". The filesystem root has no
// parent and reports the reserved ino 0.
func (d *Directory) ParentIno() uint64 {
	if d.parent == nil {
		return 0
	}
	return d.parent.ino
}

// put inserts or replaces the named entry. A replacement keeps the entry's
// position in enumeration order; a new name appends.
func (d *Directory) put(name string, n Node) {
	if d.children == nil {
		d.children = make(map[string]Node)
	}
	if _, ok := d.children[name]; !ok {
		d.names = append(d.names, name)
	}
	d.children[name] = n
	if child, ok := n.(*Directory); ok {
		child.parent = d
	}
	d.touch()
}

// remove deletes and returns the named entry.
func (d *Directory) remove(name string) (Node, bool) {
	n, ok := d.children[name]
	if !ok {
		return nil, false
	}
	delete(d.children, name)
	for i, en := range d.names {
		if en == name {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
	if child, ok := n.(*Directory); ok && child.parent == d {
		child.parent = nil
	}
	d.touch()
	return n, true
}
