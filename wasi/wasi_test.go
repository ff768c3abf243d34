package wasi

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgavlin/vwasi/fs"
	"github.com/pgavlin/vwasi/mem"
)

// The startup table is stdin, stdout, stderr, then the preopen.
const preopenFd = 3

// Scratch layout used by the tests: iovec array at 0, a path or event area at
// 64, data buffers at 256.
const (
	iovAddr  = 0
	pathAddr = 64
	bufAddr  = 256
)

func newTestHost(t *testing.T, files map[string][]byte) (*Host, *mem.Memory) {
	t.Helper()

	fsys, err := fs.FromMap(files)
	require.NoError(t, err)

	m := mem.New(1, 4)
	host := NewHost(&m, &Options{
		Args: []string{"test", "arg1"},
		Env:  map[string]string{"B": "2", "A": "1"},
		FDs: []Handle{
			NewPollableStdin(nil),
			NewWriterDevice(io.Discard),
			NewWriterDevice(io.Discard),
			NewPreopen(fsys, "/"),
		},
	})
	return host, &m
}

func putString(m *mem.Memory, addr uint32, s string) (uint32, uint32) {
	copy(m.Slice(addr, uint32(len(s))), s)
	return addr, uint32(len(s))
}

// open opens a path beneath the preopen with full rights.
func open(t *testing.T, host *Host, path string, oflags Oflags, fdflags Fdflags) fd {
	t.Helper()
	ptr, n := putString(host.mem, pathAddr, path)
	newFd, errno := host.pathOpen(preopenFd, 0, ptr, n, oflags, AllRights, AllRights, fdflags)
	require.Equal(t, ErrnoSuccess, errno, "open %s", path)
	return newFd
}

// write writes p through a single iovec.
func write(host *Host, f fd, p []byte) (size, Errno) {
	copy(host.mem.Slice(bufAddr, uint32(len(p))), p)
	host.mem.PutUint32(bufAddr, iovAddr, 0)
	host.mem.PutUint32(uint32(len(p)), iovAddr, 4)
	return host.fdWrite(f, iovAddr, 1)
}

// read reads up to n bytes through a single iovec.
func read(host *Host, f fd, n uint32) ([]byte, Errno) {
	host.mem.PutUint32(bufAddr, iovAddr, 0)
	host.mem.PutUint32(n, iovAddr, 4)
	rv, errno := host.fdRead(f, iovAddr, 1)
	return append([]byte(nil), host.mem.Slice(bufAddr, rv)...), errno
}

func TestArgsAndEnviron(t *testing.T) {
	host, m := newTestHost(t, nil)

	nargs, argBytes, errno := host.argsSizesGet()
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, size(2), nargs)
	assert.Equal(t, size(10), argBytes) // "test\0arg1\0"

	require.Equal(t, ErrnoSuccess, host.argsGet(bufAddr, bufAddr+16))
	assert.Equal(t, uint32(bufAddr+16), m.Uint32(bufAddr, 0))
	assert.Equal(t, []byte("test\x00arg1\x00"), m.Slice(bufAddr+16, argBytes))

	// Environment entries come out sorted by key.
	nenv, envBytes, errno := host.environSizesGet()
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, size(2), nenv)

	require.Equal(t, ErrnoSuccess, host.environGet(bufAddr, bufAddr+16))
	assert.Equal(t, []byte("A=1\x00B=2\x00"), m.Slice(bufAddr+16, envBytes))
}

func TestFileRoundTrip(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"dir/": nil})

	f := open(t, host, "dir/new.txt", OflagCreat, 0)
	n, errno := write(host, f, []byte("hello world"))
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, size(11), n)
	require.Equal(t, ErrnoSuccess, host.fdClose(f))

	f = open(t, host, "dir/new.txt", 0, 0)
	data, errno := read(host, f, 64)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, "hello world", string(data))

	// The cursor is at end-of-file now; the next read reports EOF.
	data, errno = read(host, f, 64)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Empty(t, data)
}

func TestPathOpenExcl(t *testing.T) {
	host, _ := newTestHost(t, nil)

	f := open(t, host, "once.txt", OflagCreat|OflagExcl, 0)
	require.Equal(t, ErrnoSuccess, host.fdClose(f))

	ptr, n := putString(host.mem, pathAddr, "once.txt")
	_, errno := host.pathOpen(preopenFd, 0, ptr, n, OflagCreat|OflagExcl, AllRights, AllRights, 0)
	assert.Equal(t, ErrnoExist, errno)
}

func TestPathOpenTrunc(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"f.txt": []byte("old contents")})

	f := open(t, host, "f.txt", OflagTrunc, 0)
	stat, errno := host.fdFilestatGet(f)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, filesize(0), stat.Size)
}

func TestPathOpenDirectoryFlag(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"f.txt": nil, "d/": nil})

	ptr, n := putString(host.mem, pathAddr, "f.txt")
	_, errno := host.pathOpen(preopenFd, 0, ptr, n, OflagDirectory, AllRights, AllRights, 0)
	assert.Equal(t, ErrnoNotdir, errno)

	f := open(t, host, "d", OflagDirectory, 0)
	stat, errno := host.fdFdstatGet(f)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, FiletypeDirectory, stat.Filetype)
}

func TestAppendMode(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"log": []byte("first\n")})

	f := open(t, host, "log", 0, FdflagAppend)
	_, errno := write(host, f, []byte("second\n"))
	require.Equal(t, ErrnoSuccess, errno)
	require.Equal(t, ErrnoSuccess, host.fdClose(f))

	f = open(t, host, "log", 0, 0)
	data, errno := read(host, f, 64)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestSeekTell(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"f": []byte("0123456789")})

	f := open(t, host, "f", 0, 0)

	pos, errno := host.fdSeek(f, 4, WhenceSet)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, filesize(4), pos)

	pos, errno = host.fdSeek(f, -2, WhenceEnd)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, filesize(8), pos)

	pos, errno = host.fdTell(f)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, filesize(8), pos)

	_, errno = host.fdSeek(f, -20, WhenceCur)
	assert.Equal(t, ErrnoInval, errno)

	// Seeking is not supported on character devices.
	_, errno = host.fdSeek(0, 0, WhenceCur)
	assert.Equal(t, ErrnoSpipe, errno)
}

func TestPreadPwrite(t *testing.T) {
	host, m := newTestHost(t, map[string][]byte{"f": []byte("0123456789")})

	f := open(t, host, "f", 0, 0)

	m.PutUint32(bufAddr, iovAddr, 0)
	m.PutUint32(4, iovAddr, 4)
	n, errno := host.fdPread(f, iovAddr, 1, 3)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, "3456", string(m.Slice(bufAddr, n)))

	// The cursor is untouched.
	pos, errno := host.fdTell(f)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, filesize(0), pos)
}

func TestFdReuse(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"a": nil, "b": nil})

	first := open(t, host, "a", 0, 0)
	assert.Equal(t, fd(4), first)

	require.Equal(t, ErrnoSuccess, host.fdClose(first))
	assert.Equal(t, ErrnoBadf, host.fdClose(first))

	// The slot is reused by the next open.
	second := open(t, host, "b", 0, 0)
	assert.Equal(t, first, second)
}

func TestFdRenumber(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"a": []byte("aaa"), "b": []byte("b")})

	fa := open(t, host, "a", 0, 0)
	fb := open(t, host, "b", 0, 0)

	require.Equal(t, ErrnoSuccess, host.fdRenumber(fa, fb))

	// fb now refers to a's contents; fa is gone.
	data, errno := read(host, fb, 16)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, "aaa", string(data))
	_, errno = host.fdTell(fa)
	assert.Equal(t, ErrnoBadf, errno)
}

func TestRightsAttenuation(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"f": []byte("data")})

	ptr, n := putString(host.mem, pathAddr, "f")
	f, errno := host.pathOpen(preopenFd, 0, ptr, n, 0, RightFdRead, 0, 0)
	require.Equal(t, ErrnoSuccess, errno)

	_, errno = write(host, f, []byte("nope"))
	assert.Equal(t, ErrnoNotcapable, errno)

	// Dropping rights is allowed, adding them back is not.
	require.Equal(t, ErrnoSuccess, host.fdFdstatSetRights(f, 0, 0))
	assert.Equal(t, ErrnoNotcapable, host.fdFdstatSetRights(f, RightFdRead, 0))
}

func TestPrestat(t *testing.T) {
	host, m := newTestHost(t, nil)

	ps, errno := host.fdPrestatGet(preopenFd)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, preopentypeDir, ps.tag)
	assert.Equal(t, size(1), ps.nameLen)

	require.Equal(t, ErrnoSuccess, host.fdPrestatDirName(preopenFd, bufAddr, 1))
	assert.Equal(t, "/", string(m.Slice(bufAddr, 1)))

	// Ordinary descriptors are not preopens.
	_, errno = host.fdPrestatGet(0)
	assert.Equal(t, ErrnoBadf, errno)
}

func TestPathFilestat(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"d/f.txt": []byte("abcde")})

	ptr, n := putString(host.mem, pathAddr, "d/f.txt")
	stat, errno := host.pathFilestatGet(preopenFd, 0, ptr, n)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, FiletypeRegularFile, stat.Filetype)
	assert.Equal(t, filesize(5), stat.Size)
	assert.NotZero(t, stat.Ino)

	ptr, n = putString(host.mem, pathAddr, "missing")
	_, errno = host.pathFilestatGet(preopenFd, 0, ptr, n)
	assert.Equal(t, ErrnoNoent, errno)

	// Escaping the capability root is not a lookup failure.
	ptr, n = putString(host.mem, pathAddr, "../d")
	_, errno = host.pathFilestatGet(preopenFd, 0, ptr, n)
	assert.Equal(t, ErrnoNotcapable, errno)
}

func TestPathCreateRemoveDirectory(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"d/f": nil})

	ptr, n := putString(host.mem, pathAddr, "d/sub")
	require.Equal(t, ErrnoSuccess, host.pathCreateDirectory(preopenFd, ptr, n))
	assert.Equal(t, ErrnoExist, host.pathCreateDirectory(preopenFd, ptr, n))

	ptr2, n2 := putString(host.mem, pathAddr+32, "d")
	assert.Equal(t, ErrnoNotempty, host.pathRemoveDirectory(preopenFd, ptr2, n2))

	require.Equal(t, ErrnoSuccess, host.pathRemoveDirectory(preopenFd, ptr, n))

	ptr3, n3 := putString(host.mem, pathAddr+64, "d/f")
	assert.Equal(t, ErrnoNotdir, host.pathRemoveDirectory(preopenFd, ptr3, n3))
	require.Equal(t, ErrnoSuccess, host.pathUnlinkFile(preopenFd, ptr3, n3))
	require.Equal(t, ErrnoSuccess, host.pathRemoveDirectory(preopenFd, ptr2, n2))
}

func TestPathRename(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"src/a": []byte("a"), "dst/": nil})

	oldPtr, oldLen := putString(host.mem, pathAddr, "src/a")
	newPtr, newLen := putString(host.mem, pathAddr+32, "dst/b")
	require.Equal(t, ErrnoSuccess, host.pathRename(preopenFd, oldPtr, oldLen, preopenFd, newPtr, newLen))

	statPtr, statLen := putString(host.mem, pathAddr, "dst/b")
	stat, errno := host.pathFilestatGet(preopenFd, 0, statPtr, statLen)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, filesize(1), stat.Size)
}

func TestPathLink(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"f": []byte("shared")})

	oldPtr, oldLen := putString(host.mem, pathAddr, "f")
	newPtr, newLen := putString(host.mem, pathAddr+32, "f2")
	require.Equal(t, ErrnoSuccess, host.pathLink(preopenFd, 0, oldPtr, oldLen, preopenFd, newPtr, newLen))

	// Both names resolve to the same inode.
	statA, errno := host.pathFilestatGet(preopenFd, 0, oldPtr, oldLen)
	require.Equal(t, ErrnoSuccess, errno)
	statB, errno := host.pathFilestatGet(preopenFd, 0, newPtr, newLen)
	require.Equal(t, ErrnoSuccess, errno)
	assert.Equal(t, statA.Ino, statB.Ino)

	// Linking over an existing name fails.
	assert.Equal(t, ErrnoExist, host.pathLink(preopenFd, 0, oldPtr, oldLen, preopenFd, newPtr, newLen))
}

func TestSymlinksUnsupported(t *testing.T) {
	host, _ := newTestHost(t, nil)

	ptr, n := putString(host.mem, pathAddr, "target")
	ptr2, n2 := putString(host.mem, pathAddr+32, "link")
	assert.Equal(t, ErrnoNosys, host.pathSymlink(ptr, n, preopenFd, ptr2, n2))
	_, errno := host.pathReadlink(preopenFd, ptr, n, bufAddr, 64)
	assert.Equal(t, ErrnoNosys, errno)
}

func TestClocks(t *testing.T) {
	host, _ := newTestHost(t, nil)

	rt, errno := host.clockTimeGet(ClockidRealtime, 0)
	require.Equal(t, ErrnoSuccess, errno)
	assert.NotZero(t, rt)

	mono1, errno := host.clockTimeGet(ClockidMonotonic, 0)
	require.Equal(t, ErrnoSuccess, errno)
	mono2, errno := host.clockTimeGet(ClockidMonotonic, 0)
	require.Equal(t, ErrnoSuccess, errno)
	assert.GreaterOrEqual(t, mono2, mono1)

	_, errno = host.clockTimeGet(ClockidProcessCputimeID, 0)
	assert.Equal(t, ErrnoInval, errno)
	_, errno = host.clockResGet(ClockidThreadCputimeID)
	assert.Equal(t, ErrnoInval, errno)
}

func TestRandomGet(t *testing.T) {
	host, m := newTestHost(t, nil)

	require.Equal(t, ErrnoSuccess, host.randomGet(bufAddr, 32))
	require.Equal(t, ErrnoSuccess, host.randomGet(bufAddr+32, 32))
	assert.NotEqual(t, m.Slice(bufAddr, 32), m.Slice(bufAddr+32, 32))
}

func TestProcExit(t *testing.T) {
	host, _ := newTestHost(t, nil)

	err := Catch(func() { host.procExit(3) })
	var exit *ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 3, exit.Code())

	assert.NoError(t, Catch(func() {}))
}

func TestSocketsAreFatal(t *testing.T) {
	host, _ := newTestHost(t, nil)

	err := Catch(func() { host.sockShutdown(4, 0) })
	var sock *SockError
	require.ErrorAs(t, err, &sock)
	assert.Equal(t, "sock_shutdown", sock.Op)
}

func TestCatchRepanicsUnknown(t *testing.T) {
	assert.Panics(t, func() {
		Catch(func() { panic("unrelated") })
	})
}
