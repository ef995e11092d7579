// Package errors provides structured fault types for linear memory.
//
// Faults are categorized by Phase (where in the memory lifecycle the
// fault occurred) and Kind (the fault category). The Error type carries
// the offending address range and the memory size at fault time.
//
// Use the Builder for structured construction:
//
//	err := errors.New(errors.PhaseAccess, errors.KindOutOfBounds).
//		Range(addr, 8).
//		MemorySize(mem.Size()).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseAccess, addr, 8, size)
//	err := errors.OutOfMemory(errors.PhaseAlloc, requested)
//
// All faults implement the standard error interface and support
// errors.Is/As. The package sentinels match on Kind alone:
//
//	if errors.Is(err, errors.ErrOutOfBounds) { ... }
package errors
