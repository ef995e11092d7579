package wasmmemory

// Memory is the linear-memory access surface consumed by host code.
// Addresses are 64-bit offsets into the memory; all multi-byte access
// is little-endian. Implementations return structured errors from the
// errors package on out-of-range access.
type Memory interface {
	Read(addr uint64, length uint64) ([]byte, error)
	Write(addr uint64, data []byte) error
	ReadU8(addr uint64) (uint8, error)
	ReadU16(addr uint64) (uint16, error)
	ReadU32(addr uint64) (uint32, error)
	ReadU64(addr uint64) (uint64, error)
	WriteU8(addr uint64, value uint8) error
	WriteU16(addr uint64, value uint16) error
	WriteU32(addr uint64, value uint32) error
	WriteU64(addr uint64, value uint64) error
}

// MemorySizer provides the current size of a linear memory in bytes.
type MemorySizer interface {
	Size() uint64
}

// Grower resizes a linear memory. Growing replaces the backing storage,
// so raw views obtained before a grow must not be used afterwards.
type Grower interface {
	Grow(newSize uint64) error
}
