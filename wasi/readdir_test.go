package wasi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgavlin/vwasi/mem"
)

// decodeDirents parses the dirent stream written by fd_readdir, returning the
// entry names and the cookie to resume from.
func decodeDirents(m *mem.Memory, addr, used uint32) ([]string, uint64) {
	var names []string
	var cookie uint64
	off := uint32(0)
	for off+direntSize <= used {
		next := m.Uint64(addr+off, 0)
		namlen := m.Uint32(addr+off, 16)
		if off+direntSize+namlen > used {
			break
		}
		names = append(names, string(m.Slice(addr+off+direntSize, namlen)))
		cookie = next
		off += direntSize + namlen
	}
	return names, cookie
}

func TestReaddir(t *testing.T) {
	host, m := newTestHost(t, map[string][]byte{
		"a": nil, "bb": nil, "ccc": nil,
	})

	used, errno := host.fdReaddir(preopenFd, bufAddr, 512, 0)
	require.Equal(t, ErrnoSuccess, errno)
	require.Less(t, used, size(512))

	names, _ := decodeDirents(m, bufAddr, used)
	assert.Equal(t, []string{".", "..", "a", "bb", "ccc"}, names)

	// The ".." entry starts right after the 25-byte "." entry and reports
	// the reserved parent ino 0 at the root.
	assert.Equal(t, uint64(0), m.Uint64(bufAddr+direntSize+1, 8))
}

func TestReaddirSmallBuffer(t *testing.T) {
	host, m := newTestHost(t, map[string][]byte{
		"a": nil, "bb": nil, "ccc": nil,
	})

	// A buffer too small for the next whole entry comes back reported
	// full; the caller resumes from the last cookie it decoded.
	const bufLen = 64

	var names []string
	cookie := uint64(0)
	for {
		used, errno := host.fdReaddir(preopenFd, bufAddr, bufLen, dircookie(cookie))
		require.Equal(t, ErrnoSuccess, errno)
		if used == 0 {
			break
		}
		batch, next := decodeDirents(m, bufAddr, used)
		require.NotEmpty(t, batch)
		names, cookie = append(names, batch...), next
		if used < bufLen {
			break
		}
	}
	assert.Equal(t, []string{".", "..", "a", "bb", "ccc"}, names)
}

func TestReaddirSubdirectoryParent(t *testing.T) {
	host, m := newTestHost(t, map[string][]byte{"d/e/": nil})

	f := open(t, host, "d", OflagDirectory, 0)

	used, errno := host.fdReaddir(f, bufAddr, 256, 0)
	require.Equal(t, ErrnoSuccess, errno)

	names, _ := decodeDirents(m, bufAddr, used)
	assert.Equal(t, []string{".", "..", "e"}, names)

	// "." carries d's own ino, ".." its parent's.
	dotIno := m.Uint64(bufAddr, 8)
	dotdotIno := m.Uint64(bufAddr+direntSize+1, 8)
	assert.NotZero(t, dotIno)
	assert.NotEqual(t, dotIno, dotdotIno)
}

func TestReaddirOnFile(t *testing.T) {
	host, _ := newTestHost(t, map[string][]byte{"f": nil})

	f := open(t, host, "f", 0, 0)
	_, errno := host.fdReaddir(f, bufAddr, 256, 0)
	assert.Equal(t, ErrnoNotdir, errno)
}
