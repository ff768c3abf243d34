package wasi

import (
	"github.com/willf/bitset"
)

type fdEntry struct {
	handle Handle

	// rights is the set of operations permitted on this descriptor;
	// inherit bounds the rights of descriptors opened through it.
	rights  Rights
	inherit Rights
}

// fdTable maps guest file descriptors to open handles. Slots are allocated
// lowest-free-first, so a descriptor number is reused as soon as it is
// closed.
type fdTable struct {
	entries []fdEntry
	live    *bitset.BitSet
}

func newFdTable() fdTable {
	return fdTable{live: bitset.New(8)}
}

// alloc installs h in the lowest free slot and returns its descriptor.
func (t *fdTable) alloc(h Handle, rights, inherit Rights) fd {
	slot, ok := t.live.NextClear(0)
	if !ok || slot >= uint(len(t.entries)) {
		slot = uint(len(t.entries))
		t.entries = append(t.entries, fdEntry{})
	}
	t.entries[slot] = fdEntry{handle: h, rights: rights, inherit: inherit}
	t.live.Set(slot)
	return fd(slot)
}

// get returns the entry for f if it is live and its rights cover required.
func (t *fdTable) get(f fd, required Rights) (*fdEntry, Errno) {
	if uint(f) >= uint(len(t.entries)) || !t.live.Test(uint(f)) {
		return nil, ErrnoBadf
	}
	entry := &t.entries[f]
	if entry.rights&required != required {
		return nil, ErrnoNotcapable
	}
	return entry, ErrnoSuccess
}

// free releases slot f without closing its handle.
func (t *fdTable) free(f fd) {
	t.live.Clear(uint(f))
	t.entries[f] = fdEntry{}
}

// renumber moves the entry at from into slot to, which must both be live.
// The handle previously at to is closed first.
func (t *fdTable) renumber(to, from fd) Errno {
	src, errno := t.get(from, 0)
	if errno != ErrnoSuccess {
		return errno
	}
	dst, errno := t.get(to, 0)
	if errno != ErrnoSuccess {
		return errno
	}
	if to == from {
		return ErrnoSuccess
	}
	dst.handle.Close()
	*dst = *src
	t.free(from)
	return ErrnoSuccess
}
