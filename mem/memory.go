package mem

import (
	"encoding/binary"
	"fmt"
)

// PageSize is the size of a WASM linear memory page in bytes.
const PageSize = 65536

var ErrLimitExceeded = fmt.Errorf("memory limit exceeded")

// Memory is a guest linear memory. The syscall layer reads arguments from and
// writes results into a Memory using the little-endian accessors below; an
// out-of-range access panics, which is the host-side analogue of a guest trap.
type Memory struct {
	min, max uint32
	bytes    []byte
}

// New creates a new linear memory with the given limits in pages.
func New(min, max uint32) Memory {
	return Memory{
		min:   min,
		max:   max,
		bytes: make([]byte, min*PageSize),
	}
}

// Limits returns the minimum and maximum size of the memory in pages.
func (m *Memory) Limits() (min, max uint32) {
	return m.min, m.max
}

// Size returns the current size of the memory in pages.
func (m *Memory) Size() uint32 {
	return uint32(len(m.bytes) / PageSize)
}

// Grow grows the memory by the given number of pages. It returns the old size
// of the memory in pages and an error if growing the memory by the requested
// amount would exceed the memory's maximum size.
func (m *Memory) Grow(pages uint32) (uint32, error) {
	currentSize := m.Size()
	newSize := currentSize + pages
	if newSize > m.max || newSize > 65536 {
		return currentSize, ErrLimitExceeded
	}
	newBytes := make([]byte, int(newSize)*PageSize)
	copy(newBytes, m.bytes)
	m.bytes = newBytes
	return currentSize, nil
}

// Bytes returns the memory's bytes.
func (m *Memory) Bytes() []byte {
	return m.bytes
}

// Slice returns the length bytes starting at the given address. A slice whose
// end would run past the end of the memory is clamped to the memory's tail.
func (m *Memory) Slice(addr, length uint32) []byte {
	if uint64(addr)+uint64(length) > uint64(len(m.bytes)) {
		return m.bytes[addr:]
	}
	return m.bytes[addr : addr+length]
}

func effectiveAddress(base, offset uint32) uint64 {
	return uint64(base) + uint64(offset)
}

// Byte returns the byte stored at the given effective address.
func (m *Memory) Byte(base, offset uint32) byte {
	return m.bytes[effectiveAddress(base, offset)]
}

// PutByte writes the given byte to the given effective address.
func (m *Memory) PutByte(v byte, base, offset uint32) {
	m.bytes[effectiveAddress(base, offset)] = v
}

// Uint16 returns the 16-bit value stored at the given effective address.
func (m *Memory) Uint16(base, offset uint32) uint16 {
	ea := effectiveAddress(base, offset)
	return binary.LittleEndian.Uint16(m.bytes[ea:])
}

// PutUint16 writes the given 16-bit value to the given effective address.
func (m *Memory) PutUint16(v uint16, base, offset uint32) {
	ea := effectiveAddress(base, offset)
	binary.LittleEndian.PutUint16(m.bytes[ea:], v)
}

// Uint32 returns the 32-bit value stored at the given effective address.
func (m *Memory) Uint32(base, offset uint32) uint32 {
	ea := effectiveAddress(base, offset)
	return binary.LittleEndian.Uint32(m.bytes[ea:])
}

// PutUint32 writes the given 32-bit value to the given effective address.
func (m *Memory) PutUint32(v uint32, base, offset uint32) {
	ea := effectiveAddress(base, offset)
	binary.LittleEndian.PutUint32(m.bytes[ea:], v)
}

// Uint64 returns the 64-bit value stored at the given effective address.
func (m *Memory) Uint64(base, offset uint32) uint64 {
	ea := effectiveAddress(base, offset)
	return binary.LittleEndian.Uint64(m.bytes[ea:])
}

// PutUint64 writes the given 64-bit value to the given effective address.
func (m *Memory) PutUint64(v uint64, base, offset uint32) {
	ea := effectiveAddress(base, offset)
	binary.LittleEndian.PutUint64(m.bytes[ea:], v)
}
