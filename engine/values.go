package engine

import (
	wasmmemory "github.com/wippyai/wasm-memory"
	"github.com/wippyai/wasm-memory/memory"
)

// LoadValue reads a typed value through any wasmmemory.Memory, so the
// same host code can target an owned linear memory or a wrapped guest
// memory. Float kinds are reinterpreted from their IEEE-754 bit
// pattern.
func LoadValue(m wasmmemory.Memory, addr uint64, k memory.Kind) (memory.Value, error) {
	if k.Width() == 4 {
		bits, err := m.ReadU32(addr)
		if err != nil {
			return memory.Value{}, err
		}
		return memory.ValueFromBits(k, uint64(bits)), nil
	}
	bits, err := m.ReadU64(addr)
	if err != nil {
		return memory.Value{}, err
	}
	return memory.ValueFromBits(k, bits), nil
}

// StoreValue writes a typed value through any wasmmemory.Memory with
// the value kind's natural width.
func StoreValue(m wasmmemory.Memory, addr uint64, v memory.Value) error {
	if v.Kind().Width() == 4 {
		return m.WriteU32(addr, uint32(v.Bits()))
	}
	return m.WriteU64(addr, v.Bits())
}
