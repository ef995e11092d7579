package memory

import (
	"fmt"
	"math"

	"github.com/wippyai/wasm-memory/errors"
)

// PageSize is the size of a WebAssembly memory page: 64KiB.
const PageSize = 65536

// maxHostBytes is the largest buffer length the host can index.
const maxHostBytes = uint64(math.MaxInt)

// Memory is a contiguous, byte-addressable, growable linear memory.
// It is the sole owner of its backing buffer; all access goes through
// bounds-checked operations at 64-bit addresses. Memory is not safe for
// concurrent use; callers needing shared access must serialize
// externally.
type Memory struct {
	data []byte
}

// hostSize converts an external 64-bit size to a host buffer length.
func hostSize(n uint64) (int, error) {
	if n > maxHostBytes {
		return 0, errors.OutOfMemory(errors.PhaseAlloc, n)
	}
	return int(n), nil
}

// index validates the range [addr, addr+n) against the current size and
// returns the host base index. It is the single overflow checkpoint:
// addr+n is computed in 64-bit arithmetic and checked for wraparound
// before any comparison against the buffer length.
func (m *Memory) index(phase errors.Phase, addr, n uint64) (int, error) {
	end := addr + n
	if end < addr {
		return 0, errors.Overflow(phase, addr, n)
	}
	if end > uint64(len(m.data)) {
		return 0, errors.OutOfBounds(phase, addr, n, uint64(len(m.data)))
	}
	return int(addr), nil
}

// New allocates a zero-filled memory of n bytes.
func New(n uint64) (*Memory, error) {
	size, err := hostSize(n)
	if err != nil {
		return nil, err
	}
	return &Memory{data: make([]byte, size)}, nil
}

// NewPages allocates a zero-filled memory of the given number of
// 64KiB pages.
func NewPages(pages uint64) (*Memory, error) {
	if pages > maxHostBytes/PageSize {
		return nil, errors.OutOfMemory(errors.PhaseAlloc, pages)
	}
	return New(pages * PageSize)
}

// Size returns the current byte length.
func (m *Memory) Size() uint64 {
	return uint64(len(m.data))
}

// Pages returns the number of whole 64KiB pages the memory spans.
func (m *Memory) Pages() uint64 {
	return m.Size() / PageSize
}

// Initialize applies data segments in order, writing each segment's
// bytes starting at its address. The first segment whose range falls
// outside current bounds fails the whole initialization with an
// out_of_bounds fault; writes from earlier segments are not rolled
// back.
func (m *Memory) Initialize(segments []Segment) error {
	for _, seg := range segments {
		base, err := m.index(errors.PhaseInit, seg.Addr, uint64(len(seg.Data)))
		if err != nil {
			return err
		}
		copy(m.data[base:], seg.Data)
	}
	return nil
}

// Grow replaces the backing buffer with a zero-filled buffer of n
// bytes, preserving the first min(Size(), n) bytes. Shrinking is
// permitted. Any raw view obtained via Bytes before the call is
// invalidated.
func (m *Memory) Grow(n uint64) error {
	size, err := hostSize(n)
	if err != nil {
		return err
	}
	next := make([]byte, size)
	copy(next, m.data)
	m.data = next
	return nil
}

// GrowPages grows the memory by delta 64KiB pages and returns the page
// count before the call, in the style of the wasm memory.grow
// instruction.
func (m *Memory) GrowPages(delta uint64) (uint64, error) {
	prev := m.Pages()
	if delta == 0 {
		return prev, nil
	}
	total := prev + delta
	if total < prev || total > maxHostBytes/PageSize {
		return 0, errors.OutOfMemory(errors.PhaseAlloc, delta)
	}
	if err := m.Grow(total * PageSize); err != nil {
		return 0, err
	}
	return prev, nil
}

// LoadBytes reads n bytes at addr as a little-endian unsigned integer
// widened to 64 bits. n must be in 1..8; violating that is a caller
// bug and panics.
func (m *Memory) LoadBytes(addr uint64, n int) (uint64, error) {
	if n < 1 || n > 8 {
		panic(fmt.Sprintf("memory: load width %d outside 1..8", n))
	}
	base, err := m.index(errors.PhaseAccess, addr, uint64(n))
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < n; i++ {
		v |= uint64(m.data[base+i]) << (8 * i)
	}
	return v, nil
}

// StoreBytes writes the low n bytes of value at addr in little-endian
// order. n must be in 1..8; violating that is a caller bug and panics.
func (m *Memory) StoreBytes(addr uint64, n int, value uint64) error {
	if n < 1 || n > 8 {
		panic(fmt.Sprintf("memory: store width %d outside 1..8", n))
	}
	base, err := m.index(errors.PhaseAccess, addr, uint64(n))
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		m.data[base+i] = byte(value >> (8 * i))
	}
	return nil
}

// Read copies length bytes starting at addr out of the memory.
func (m *Memory) Read(addr uint64, length uint64) ([]byte, error) {
	base, err := m.index(errors.PhaseAccess, addr, length)
	if err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, m.data[base:])
	return out, nil
}

// Write copies data into the memory starting at addr.
func (m *Memory) Write(addr uint64, data []byte) error {
	base, err := m.index(errors.PhaseAccess, addr, uint64(len(data)))
	if err != nil {
		return err
	}
	copy(m.data[base:], data)
	return nil
}

// ReadU8 reads the byte at addr.
func (m *Memory) ReadU8(addr uint64) (uint8, error) {
	v, err := m.LoadBytes(addr, 1)
	return uint8(v), err
}

// ReadU16 reads a little-endian 16-bit value at addr.
func (m *Memory) ReadU16(addr uint64) (uint16, error) {
	v, err := m.LoadBytes(addr, 2)
	return uint16(v), err
}

// ReadU32 reads a little-endian 32-bit value at addr.
func (m *Memory) ReadU32(addr uint64) (uint32, error) {
	v, err := m.LoadBytes(addr, 4)
	return uint32(v), err
}

// ReadU64 reads a little-endian 64-bit value at addr.
func (m *Memory) ReadU64(addr uint64) (uint64, error) {
	return m.LoadBytes(addr, 8)
}

// WriteU8 writes a byte at addr.
func (m *Memory) WriteU8(addr uint64, value uint8) error {
	return m.StoreBytes(addr, 1, uint64(value))
}

// WriteU16 writes a little-endian 16-bit value at addr.
func (m *Memory) WriteU16(addr uint64, value uint16) error {
	return m.StoreBytes(addr, 2, uint64(value))
}

// WriteU32 writes a little-endian 32-bit value at addr.
func (m *Memory) WriteU32(addr uint64, value uint32) error {
	return m.StoreBytes(addr, 4, uint64(value))
}

// WriteU64 writes a little-endian 64-bit value at addr.
func (m *Memory) WriteU64(addr uint64, value uint64) error {
	return m.StoreBytes(addr, 8, value)
}

// Bytes returns the live backing buffer. The slice aliases the
// memory's storage and is invalidated by the next Grow or GrowPages
// call; it must not be retained across growth.
func (m *Memory) Bytes() []byte {
	return m.data
}
