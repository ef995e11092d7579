package engine

import (
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	wasmmemory "github.com/wippyai/wasm-memory"
	"github.com/wippyai/wasm-memory/errors"
)

// wazeroMemory is the subset of wazero's api.Memory the bridge consumes.
type wazeroMemory interface {
	Size() uint32
	Grow(deltaPages uint32) (previousPages uint32, ok bool)
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
	ReadUint32Le(offset uint32) (uint32, bool)
	ReadUint64Le(offset uint32) (uint64, bool)
	WriteUint32Le(offset uint32, v uint32) bool
	WriteUint64Le(offset uint32, v uint64) bool
}

// GuestMemory adapts a live wazero instance memory to the
// wasmmemory.Memory interface, so host code written against this
// library's 64-bit access surface can operate on a running module's
// linear memory. Faults are returned as structured errors; wazero
// memories span at most 4GiB, so any access beyond the 32-bit offset
// space is out of bounds by construction.
type GuestMemory struct {
	mem wazeroMemory
}

// WrapWazero wraps a wazero instance memory. The memory must belong to
// an instantiated module and remains owned by wazero.
func WrapWazero(mem api.Memory) *GuestMemory {
	return &GuestMemory{mem: mem}
}

// offset checks [addr, addr+length) against the wazero offset space
// and narrows the address. In-range accesses can still fault inside
// wazero when they pass the current memory size.
func (g *GuestMemory) offset(addr, length uint64) (uint32, error) {
	end := addr + length
	if end < addr {
		return 0, errors.Overflow(errors.PhaseAccess, addr, length)
	}
	if end > math.MaxUint32 {
		return 0, errors.OutOfBounds(errors.PhaseAccess, addr, length, g.Size())
	}
	return uint32(addr), nil
}

func (g *GuestMemory) fault(addr, length uint64) error {
	err := errors.OutOfBounds(errors.PhaseAccess, addr, length, g.Size())
	Logger().Debug("guest memory fault",
		zap.Uint64("addr", addr),
		zap.Uint64("length", length),
		zap.Uint64("size", g.Size()))
	return err
}

// Size returns the current guest memory size in bytes.
func (g *GuestMemory) Size() uint64 {
	return uint64(g.mem.Size())
}

// GrowPages grows the guest memory by delta 64KiB pages, returning the
// previous page count.
func (g *GuestMemory) GrowPages(delta uint64) (uint64, error) {
	if delta > math.MaxUint32 {
		return 0, errors.OutOfMemory(errors.PhaseAlloc, delta)
	}
	prev, ok := g.mem.Grow(uint32(delta))
	if !ok {
		return 0, errors.OutOfMemory(errors.PhaseAlloc, delta)
	}
	return uint64(prev), nil
}

// Read copies length bytes starting at addr out of the guest memory.
func (g *GuestMemory) Read(addr uint64, length uint64) ([]byte, error) {
	off, err := g.offset(addr, length)
	if err != nil {
		return nil, err
	}
	data, ok := g.mem.Read(off, uint32(length))
	if !ok {
		return nil, g.fault(addr, length)
	}
	// wazero returns a view into its buffer; copy to preserve the
	// no-aliasing contract of wasmmemory.Memory.
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write copies data into the guest memory starting at addr.
func (g *GuestMemory) Write(addr uint64, data []byte) error {
	off, err := g.offset(addr, uint64(len(data)))
	if err != nil {
		return err
	}
	if !g.mem.Write(off, data) {
		return g.fault(addr, uint64(len(data)))
	}
	return nil
}

func (g *GuestMemory) ReadU8(addr uint64) (uint8, error) {
	data, err := g.Read(addr, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

func (g *GuestMemory) ReadU16(addr uint64) (uint16, error) {
	data, err := g.Read(addr, 2)
	if err != nil {
		return 0, err
	}
	return uint16(data[0]) | uint16(data[1])<<8, nil
}

func (g *GuestMemory) ReadU32(addr uint64) (uint32, error) {
	off, err := g.offset(addr, 4)
	if err != nil {
		return 0, err
	}
	val, ok := g.mem.ReadUint32Le(off)
	if !ok {
		return 0, g.fault(addr, 4)
	}
	return val, nil
}

func (g *GuestMemory) ReadU64(addr uint64) (uint64, error) {
	off, err := g.offset(addr, 8)
	if err != nil {
		return 0, err
	}
	val, ok := g.mem.ReadUint64Le(off)
	if !ok {
		return 0, g.fault(addr, 8)
	}
	return val, nil
}

func (g *GuestMemory) WriteU8(addr uint64, value uint8) error {
	return g.Write(addr, []byte{value})
}

func (g *GuestMemory) WriteU16(addr uint64, value uint16) error {
	return g.Write(addr, []byte{byte(value), byte(value >> 8)})
}

func (g *GuestMemory) WriteU32(addr uint64, value uint32) error {
	off, err := g.offset(addr, 4)
	if err != nil {
		return err
	}
	if !g.mem.WriteUint32Le(off, value) {
		return g.fault(addr, 4)
	}
	return nil
}

func (g *GuestMemory) WriteU64(addr uint64, value uint64) error {
	off, err := g.offset(addr, 8)
	if err != nil {
		return err
	}
	if !g.mem.WriteUint64Le(off, value) {
		return g.fault(addr, 8)
	}
	return nil
}

var _ wasmmemory.Memory = (*GuestMemory)(nil)
var _ wasmmemory.MemorySizer = (*GuestMemory)(nil)
