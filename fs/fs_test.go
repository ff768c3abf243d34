package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Path {
	t.Helper()
	p, err := Parse(s)
	require.NoError(t, err)
	return p
}

func TestCreateAndResolve(t *testing.T) {
	fsys := New()

	_, err := fsys.Create(fsys.Root(), mustParse(t, "a/b.txt"), false)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fsys.Create(fsys.Root(), mustParse(t, "a"), true)
	require.NoError(t, err)

	node, err := fsys.Create(fsys.Root(), mustParse(t, "a/b.txt"), false)
	require.NoError(t, err)
	file, ok := node.(*File)
	require.True(t, ok)
	assert.Equal(t, uint64(0), file.Size())

	resolved, err := fsys.Resolve(fsys.Root(), mustParse(t, "a/b.txt"))
	require.NoError(t, err)
	assert.Same(t, node, resolved)

	_, err = fsys.Create(fsys.Root(), mustParse(t, "a/b.txt"), false)
	assert.ErrorIs(t, err, ErrExists)

	// A trailing slash demands a directory.
	_, err = fsys.Resolve(fsys.Root(), mustParse(t, "a/b.txt/"))
	assert.ErrorIs(t, err, ErrNotDir)

	_, err = fsys.Resolve(fsys.Root(), mustParse(t, "a/b.txt/c"))
	assert.ErrorIs(t, err, ErrNotDir)

	_, err = fsys.Resolve(fsys.Root(), mustParse(t, "a/missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileReadWrite(t *testing.T) {
	fsys := New()
	f := fsys.NewFile([]byte("hello"), false)

	buf := make([]byte, 16)
	n := f.ReadAt(buf, 0)
	assert.Equal(t, "hello", string(buf[:n]))
	assert.Equal(t, uint32(0), f.ReadAt(buf, 5))
	assert.Equal(t, uint32(0), f.ReadAt(buf, 100))

	// Writing past end-of-file zero-fills the gap.
	_, err := f.WriteAt([]byte("x"), 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), f.Size())
	n = f.ReadAt(buf, 0)
	assert.Equal(t, []byte("hello\x00\x00\x00x"), buf[:n])

	require.NoError(t, f.Truncate(5))
	assert.Equal(t, uint64(5), f.Size())
	require.NoError(t, f.Truncate(7))
	n = f.ReadAt(buf, 4)
	assert.Equal(t, []byte("o\x00\x00"), buf[:n])

	require.NoError(t, f.Allocate(10, 10))
	assert.Equal(t, uint64(20), f.Size())
	require.NoError(t, f.Allocate(0, 1))
	assert.Equal(t, uint64(20), f.Size())
}

func TestReadOnlyFile(t *testing.T) {
	fsys := New()
	f := fsys.NewFile([]byte("locked"), true)

	_, err := f.WriteAt([]byte("x"), 0)
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.ErrorIs(t, f.Truncate(0), ErrReadOnly)

	buf := make([]byte, 6)
	n := f.ReadAt(buf, 0)
	assert.Equal(t, "locked", string(buf[:n]))
}

func TestUnlink(t *testing.T) {
	fsys := New()
	_, err := fsys.Create(fsys.Root(), mustParse(t, "d"), true)
	require.NoError(t, err)
	_, err = fsys.Create(fsys.Root(), mustParse(t, "f"), false)
	require.NoError(t, err)

	assert.ErrorIs(t, fsys.UnlinkFile(fsys.Root(), mustParse(t, "d")), ErrIsDir)
	assert.ErrorIs(t, fsys.RemoveDirectory(fsys.Root(), mustParse(t, "f")), ErrNotDir)

	require.NoError(t, fsys.UnlinkFile(fsys.Root(), mustParse(t, "f")))
	assert.ErrorIs(t, fsys.UnlinkFile(fsys.Root(), mustParse(t, "f")), ErrNotFound)

	_, err = fsys.Create(fsys.Root(), mustParse(t, "d/child"), false)
	require.NoError(t, err)
	assert.ErrorIs(t, fsys.RemoveDirectory(fsys.Root(), mustParse(t, "d")), ErrNotEmpty)

	require.NoError(t, fsys.UnlinkFile(fsys.Root(), mustParse(t, "d/child")))
	require.NoError(t, fsys.RemoveDirectory(fsys.Root(), mustParse(t, "d")))
}

func TestUnlinkedFileRemainsWritable(t *testing.T) {
	fsys := New()
	node, err := fsys.Create(fsys.Root(), mustParse(t, "f"), false)
	require.NoError(t, err)
	f := node.(*File)

	require.NoError(t, fsys.UnlinkFile(fsys.Root(), mustParse(t, "f")))

	_, err = f.Append([]byte("still here"))
	require.NoError(t, err)
	assert.Equal(t, uint64(10), f.Size())
}

func TestRename(t *testing.T) {
	fsys, err := FromMap(map[string][]byte{
		"src/a.txt": []byte("a"),
		"dst/":      nil,
	})
	require.NoError(t, err)

	err = fsys.Rename(fsys.Root(), mustParse(t, "src/a.txt"), fsys.Root(), mustParse(t, "dst/a.txt"))
	require.NoError(t, err)

	_, err = fsys.Resolve(fsys.Root(), mustParse(t, "src/a.txt"))
	assert.ErrorIs(t, err, ErrNotFound)
	node, err := fsys.Resolve(fsys.Root(), mustParse(t, "dst/a.txt"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), node.(*File).Size())
}

func TestRenameReplacesFile(t *testing.T) {
	fsys, err := FromMap(map[string][]byte{
		"old": []byte("old contents"),
		"new": []byte("x"),
	})
	require.NoError(t, err)

	require.NoError(t, fsys.Rename(fsys.Root(), mustParse(t, "old"), fsys.Root(), mustParse(t, "new")))

	node, err := fsys.Resolve(fsys.Root(), mustParse(t, "new"))
	require.NoError(t, err)
	assert.Equal(t, uint64(12), node.(*File).Size())
}

func TestRenameRollback(t *testing.T) {
	fsys, err := FromMap(map[string][]byte{
		"f":          []byte("contents"),
		"full/inner": []byte("x"),
	})
	require.NoError(t, err)

	// A file cannot replace a directory; the source must reappear.
	err = fsys.Rename(fsys.Root(), mustParse(t, "f"), fsys.Root(), mustParse(t, "full"))
	assert.ErrorIs(t, err, ErrIsDir)

	node, err := fsys.Resolve(fsys.Root(), mustParse(t, "f"))
	require.NoError(t, err)
	assert.Equal(t, uint64(8), node.(*File).Size())

	// A directory cannot replace a non-empty directory.
	_, err = fsys.Create(fsys.Root(), mustParse(t, "d"), true)
	require.NoError(t, err)
	err = fsys.Rename(fsys.Root(), mustParse(t, "d"), fsys.Root(), mustParse(t, "full"))
	assert.ErrorIs(t, err, ErrNotEmpty)
	_, err = fsys.Resolve(fsys.Root(), mustParse(t, "d/"))
	require.NoError(t, err)
}

func TestRenameDirectoryUpdatesParent(t *testing.T) {
	fsys, err := FromMap(map[string][]byte{
		"a/sub/": nil,
		"b/":     nil,
	})
	require.NoError(t, err)

	require.NoError(t, fsys.Rename(fsys.Root(), mustParse(t, "a/sub"), fsys.Root(), mustParse(t, "b/sub")))

	node, err := fsys.Resolve(fsys.Root(), mustParse(t, "b/"))
	require.NoError(t, err)
	b := node.(*Directory)

	node, err = fsys.Resolve(fsys.Root(), mustParse(t, "b/sub/"))
	require.NoError(t, err)
	assert.Equal(t, b.Ino(), node.(*Directory).ParentIno())
}

func TestLink(t *testing.T) {
	fsys, err := FromMap(map[string][]byte{
		"f":    []byte("shared"),
		"d/":   nil,
		"sub/": nil,
	})
	require.NoError(t, err)

	node, err := fsys.Resolve(fsys.Root(), mustParse(t, "f"))
	require.NoError(t, err)

	require.NoError(t, fsys.Link(fsys.Root(), mustParse(t, "d/f2"), node, false))
	linked, err := fsys.Resolve(fsys.Root(), mustParse(t, "d/f2"))
	require.NoError(t, err)
	assert.Same(t, node, linked)

	// Hard links to directories are rejected.
	dir, err := fsys.Resolve(fsys.Root(), mustParse(t, "sub/"))
	require.NoError(t, err)
	assert.ErrorIs(t, fsys.Link(fsys.Root(), mustParse(t, "sub2"), dir, false), ErrPerm)

	assert.ErrorIs(t, fsys.Link(fsys.Root(), mustParse(t, "f"), node, false), ErrExists)
}

func TestDirectoryOrder(t *testing.T) {
	fsys := New()
	d := fsys.Root()

	for _, name := range []string{"c", "a", "b"} {
		_, err := fsys.Create(d, mustParse(t, name), false)
		require.NoError(t, err)
	}

	var names []string
	for i := 0; i < d.Len(); i++ {
		name, _ := d.At(i)
		names = append(names, name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)

	// Replacing an entry keeps its position.
	d.put("a", fsys.NewFile(nil, false))
	name, _ := d.At(1)
	assert.Equal(t, "a", name)
	assert.Equal(t, 3, d.Len())
}

func TestFromMap(t *testing.T) {
	fsys, err := FromMap(map[string][]byte{
		"bin/tool":    []byte("#!"),
		"etc/":        nil,
		"readme.txt":  []byte("hi"),
		"bin/sub/x.y": []byte("z"),
	})
	require.NoError(t, err)

	node, err := fsys.Resolve(fsys.Root(), mustParse(t, "bin/sub/x.y"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), node.(*File).Size())

	node, err = fsys.Resolve(fsys.Root(), mustParse(t, "etc/"))
	require.NoError(t, err)
	assert.Equal(t, 0, node.(*Directory).Len())

	_, err = FromMap(map[string][]byte{
		"a":   []byte("file"),
		"a/b": []byte("file under file"),
	})
	assert.ErrorIs(t, err, ErrNotDir)
}

func TestFromMapDeterministicInos(t *testing.T) {
	build := func() []uint64 {
		fsys, err := FromMap(map[string][]byte{
			"z": nil, "a": nil, "m/n": nil,
		})
		require.NoError(t, err)
		var inos []uint64
		for _, p := range []string{"a", "m/n", "z"} {
			node, err := fsys.Resolve(fsys.Root(), mustParse(t, p))
			require.NoError(t, err)
			inos = append(inos, node.Ino())
		}
		return inos
	}
	assert.Equal(t, build(), build())
}
