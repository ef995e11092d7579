package memory

import (
	"fmt"

	"github.com/wippyai/wasm-memory/errors"
)

// Extension selects how a narrow load widens into its target kind.
type Extension uint8

const (
	ZeroExtend Extension = iota
	SignExtend
)

func (e Extension) String() string {
	switch e {
	case ZeroExtend:
		return "zero-extend"
	case SignExtend:
		return "sign-extend"
	}
	return fmt.Sprintf("extension(%d)", e)
}

// Load reads a value of the given kind at addr: 4 bytes for the 32-bit
// kinds, 8 for the 64-bit kinds, little-endian, with float kinds
// reinterpreted from their IEEE-754 bit pattern.
func (m *Memory) Load(addr uint64, k Kind) (Value, error) {
	bits, err := m.LoadBytes(addr, int(k.Width()))
	if err != nil {
		return Value{}, err
	}
	return ValueFromBits(k, bits), nil
}

// Store writes a value's raw bit pattern at addr with the value kind's
// natural width.
func (m *Memory) Store(addr uint64, v Value) error {
	return m.StoreBytes(addr, int(v.Kind().Width()), v.Bits())
}

// checkNarrow validates a (narrowBits, kind) pairing for extend/wrap
// operations. Valid pairs are 8- and 16-bit narrows against i32, and
// 8-, 16- and 32-bit narrows against i64. Float kinds and full-width
// pairings are rejected.
func checkNarrow(narrowBits int, k Kind, op string) error {
	switch k {
	case KindI32:
		if narrowBits == 8 || narrowBits == 16 {
			return nil
		}
	case KindI64:
		if narrowBits == 8 || narrowBits == 16 || narrowBits == 32 {
			return nil
		}
	}
	return errors.TypeMismatch("%d-bit narrow %s is not valid for %s", narrowBits, op, k)
}

// LoadExtend reads a narrowBits-wide value at addr and widens it into
// an integer of kind k, either replicating the narrow value's sign bit
// (SignExtend) or filling with zeros (ZeroExtend).
func (m *Memory) LoadExtend(addr uint64, narrowBits int, ext Extension, k Kind) (Value, error) {
	if err := checkNarrow(narrowBits, k, "load"); err != nil {
		return Value{}, err
	}
	raw, err := m.LoadBytes(addr, narrowBits/8)
	if err != nil {
		return Value{}, err
	}
	if ext == SignExtend {
		// Shift the narrow value to the top of a 64-bit register and
		// arithmetic-shift back down; the sign bit replicates across
		// the vacated high bits. ValueFromBits truncates for i32.
		shift := 64 - narrowBits
		raw = uint64(int64(raw<<shift) >> shift)
	}
	return ValueFromBits(k, raw), nil
}

// StoreWrap truncates an integer value to narrowBits and writes the
// low bytes at addr. The pairing rules mirror LoadExtend.
func (m *Memory) StoreWrap(addr uint64, narrowBits int, v Value) error {
	if err := checkNarrow(narrowBits, v.Kind(), "store"); err != nil {
		return err
	}
	return m.StoreBytes(addr, narrowBits/8, v.Bits())
}
