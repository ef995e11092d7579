package memory

import (
	"fmt"
	"math"
)

// Kind identifies one of the four primitive value representations.
type Kind uint8

const (
	KindI32 Kind = iota // 32-bit integer
	KindI64             // 64-bit integer
	KindF32             // 32-bit IEEE-754 float
	KindF64             // 64-bit IEEE-754 float
)

// Width returns the natural byte width of the kind.
func (k Kind) Width() uint64 {
	switch k {
	case KindI32, KindF32:
		return 4
	case KindI64, KindF64:
		return 8
	}
	panic(fmt.Sprintf("memory: invalid value kind %d", k))
}

func (k Kind) String() string {
	switch k {
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Value is a tagged union over the four primitive kinds. The payload is
// held as raw bits: two's-complement for the integer kinds, the
// IEEE-754 bit pattern for the float kinds. 32-bit kinds occupy the low
// 32 bits with the high bits zero.
type Value struct {
	bits uint64
	kind Kind
}

// I32 wraps a 32-bit integer value.
func I32(v int32) Value { return Value{kind: KindI32, bits: uint64(uint32(v))} }

// I64 wraps a 64-bit integer value.
func I64(v int64) Value { return Value{kind: KindI64, bits: uint64(v)} }

// F32 wraps a 32-bit float value.
func F32(v float32) Value { return Value{kind: KindF32, bits: uint64(math.Float32bits(v))} }

// F64 wraps a 64-bit float value.
func F64(v float64) Value { return Value{kind: KindF64, bits: math.Float64bits(v)} }

// ValueFromBits reinterprets raw little-endian bits as a value of the
// given kind. Bits beyond a 32-bit kind's width are discarded.
func ValueFromBits(k Kind, bits uint64) Value {
	if k.Width() == 4 {
		bits &= math.MaxUint32
	}
	return Value{kind: k, bits: bits}
}

// Kind returns the value's kind tag.
func (v Value) Kind() Kind { return v.kind }

// Bits returns the value's raw bit pattern, zero-extended to 64 bits.
func (v Value) Bits() uint64 { return v.bits }

// I32 returns the value as a 32-bit integer. Valid only for KindI32.
func (v Value) I32() int32 { return int32(uint32(v.bits)) }

// I64 returns the value as a 64-bit integer. Valid only for KindI64.
func (v Value) I64() int64 { return int64(v.bits) }

// F32 returns the value as a 32-bit float. Valid only for KindF32.
func (v Value) F32() float32 { return math.Float32frombits(uint32(v.bits)) }

// F64 returns the value as a 64-bit float. Valid only for KindF64.
func (v Value) F64() float64 { return math.Float64frombits(v.bits) }

func (v Value) String() string {
	switch v.kind {
	case KindI32:
		return fmt.Sprintf("i32:%d", v.I32())
	case KindI64:
		return fmt.Sprintf("i64:%d", v.I64())
	case KindF32:
		return fmt.Sprintf("f32:%g", v.F32())
	case KindF64:
		return fmt.Sprintf("f64:%g", v.F64())
	}
	return fmt.Sprintf("value(kind=%d, bits=%#x)", v.kind, v.bits)
}
