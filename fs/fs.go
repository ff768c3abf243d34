// Package fs implements the in-memory virtual filesystem backing the WASI
// syscall surface: an inode tree with POSIX-like resolution and directory
// mutation semantics, scoped to a capability root. There is no access to the
// host filesystem and no symbolic links.
package fs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPath  = errors.New("invalid path")
	ErrAbsolutePath = errors.New("absolute paths are not capabilities")
	ErrPathEscape   = errors.New("path escapes the capability root")
	ErrNameTooLong  = errors.New("name too long")
	ErrNotFound     = errors.New("no such file or directory")
	ErrExists       = errors.New("file exists")
	ErrNotDir       = errors.New("not a directory")
	ErrIsDir        = errors.New("is a directory")
	ErrNotEmpty     = errors.New("directory not empty")
	ErrReadOnly     = errors.New("file is read-only")
	ErrPerm         = errors.New("operation not permitted")
)

// FS owns a virtual filesystem tree and the ino counter for every node in
// it. Independent FS instances issue independent ino sequences.
type FS struct {
	root *Directory
	ino  uint64
}

// New returns an empty filesystem containing only a root directory.
func New() *FS {
	fs := &FS{}
	fs.root = fs.NewDirectory()
	return fs
}

// Root returns the filesystem's root directory.
func (fs *FS) Root() *Directory {
	return fs.root
}

func (fs *FS) nextIno() uint64 {
	fs.ino++
	return fs.ino
}

// NewFile constructs a regular file owned by this filesystem. The file takes
// ownership of data.
func (fs *FS) NewFile(data []byte, readOnly bool) *File {
	return &File{attrs: newAttrs(fs.nextIno()), data: data, readOnly: readOnly}
}

// NewDirectory constructs an empty directory owned by this filesystem. The
// directory has no parent until it is linked into the tree.
func (fs *FS) NewDirectory() *Directory {
	return &Directory{attrs: newAttrs(fs.nextIno())}
}

// Resolve walks path from base and returns the resolved node. A
// non-directory met before the final component fails with ErrNotDir, a
// missing component with ErrNotFound. If the path requires a directory the
// resolved node must be one.
func (fs *FS) Resolve(base *Directory, path Path) (Node, error) {
	var cur Node = base
	for _, name := range path.Components {
		dir, ok := cur.(*Directory)
		if !ok {
			return nil, ErrNotDir
		}
		next, ok := dir.Get(name)
		if !ok {
			return nil, ErrNotFound
		}
		cur = next
	}
	if path.Dir {
		if _, ok := cur.(*Directory); !ok {
			return nil, ErrNotDir
		}
	}
	return cur, nil
}

// lookupParent resolves the parent directory of path's final component.
func (fs *FS) lookupParent(base *Directory, path Path) (*Directory, string, error) {
	if len(path.Components) == 0 {
		return nil, "", ErrInvalidPath
	}
	parentPath := Path{Components: path.Components[:len(path.Components)-1], Dir: true}
	node, err := fs.Resolve(base, parentPath)
	if err != nil {
		return nil, "", err
	}
	return node.(*Directory), path.Components[len(path.Components)-1], nil
}

// Create inserts a freshly constructed empty file or directory at path. It
// fails with ErrExists if the entry is already present and with ErrNotFound
// if the parent directory does not exist: intermediate directories are never
// created implicitly.
func (fs *FS) Create(base *Directory, path Path, dir bool) (Node, error) {
	parent, name, err := fs.lookupParent(base, path)
	if err != nil {
		return nil, err
	}
	if _, ok := parent.Get(name); ok {
		return nil, ErrExists
	}

	var node Node
	if dir || path.Dir {
		node = fs.NewDirectory()
	} else {
		node = fs.NewFile(nil, false)
	}
	parent.put(name, node)
	return node, nil
}

// Link binds node at path. In the default hard-link mode an existing
// destination fails with ErrExists and directories cannot be linked at all.
// Rename mode admits directories and replaces compatible destinations:
// directory-onto-empty-directory or file-onto-file; mismatched kinds fail
// with the type error of the destination.
func (fs *FS) Link(base *Directory, path Path, node Node, rename bool) error {
	parent, name, err := fs.lookupParent(base, path)
	if err != nil {
		return err
	}

	_, srcIsDir := node.(*Directory)
	if path.Dir && !srcIsDir {
		return ErrNotFound
	}

	if existing, ok := parent.Get(name); ok {
		if !rename {
			return ErrExists
		}
		switch dst := existing.(type) {
		case *Directory:
			if !srcIsDir {
				return ErrIsDir
			}
			if dst.Len() != 0 {
				return ErrNotEmpty
			}
		case *File:
			if srcIsDir {
				return ErrNotDir
			}
		}
	} else if srcIsDir && !rename {
		return ErrPerm
	}

	parent.put(name, node)
	return nil
}

// Unlink removes and returns the entry at path regardless of its kind.
func (fs *FS) Unlink(base *Directory, path Path) (Node, error) {
	parent, name, err := fs.lookupParent(base, path)
	if err != nil {
		return nil, err
	}
	node, ok := parent.Get(name)
	if !ok {
		return nil, ErrNotFound
	}
	if _, isDir := node.(*Directory); path.Dir && !isDir {
		return nil, ErrNotDir
	}
	parent.remove(name)
	return node, nil
}

// UnlinkFile removes the non-directory entry at path.
func (fs *FS) UnlinkFile(base *Directory, path Path) error {
	parent, name, err := fs.lookupParent(base, path)
	if err != nil {
		return err
	}
	node, ok := parent.Get(name)
	if !ok {
		return ErrNotFound
	}
	if _, isDir := node.(*Directory); isDir {
		return ErrIsDir
	}
	parent.remove(name)
	return nil
}

// RemoveDirectory removes the directory entry at path. The directory must be
// empty.
func (fs *FS) RemoveDirectory(base *Directory, path Path) error {
	parent, name, err := fs.lookupParent(base, path)
	if err != nil {
		return err
	}
	node, ok := parent.Get(name)
	if !ok {
		return ErrNotFound
	}
	dir, isDir := node.(*Directory)
	if !isDir {
		return ErrNotDir
	}
	if dir.Len() != 0 {
		return ErrNotEmpty
	}
	parent.remove(name)
	return nil
}

// Rename moves the entry at src under srcBase to dst under dstBase. It is
// unlink-then-link: if the link at dst fails, the entry is re-linked at its
// original location and dst's failure is returned. A failing re-link means
// the tree's invariants were already broken and is fatal.
func (fs *FS) Rename(srcBase *Directory, src Path, dstBase *Directory, dst Path) error {
	node, err := fs.Unlink(srcBase, src)
	if err != nil {
		return err
	}
	if err := fs.Link(dstBase, dst, node, true); err != nil {
		if rollback := fs.Link(srcBase, src, node, true); rollback != nil {
			panic(fmt.Sprintf("fs: rename rollback of %q failed: %v", src.String(), rollback))
		}
		return err
	}
	return nil
}
