// Package wasmmemory provides a linear memory implementation for
// WebAssembly-style virtual machines.
//
// A linear memory is a contiguous, byte-addressable, growable array of
// bytes accessed through width- and type-qualified load/store
// operations. This library owns all guest-visible memory semantics:
// address validity, growth, little-endian byte layout, and narrow-load
// sign/zero extension. It does not parse module formats, decode
// instructions, or manage multiple memory instances; those callers
// resolve a memory handle and drive it through the operations here.
//
// # Architecture Overview
//
//	wasmmemory/          Root package with the Memory access interfaces
//	├── memory/          Core linear memory: segments, growth, typed access
//	├── engine/          Bridge between wazero instance memories and this API
//	├── errors/          Structured fault types for memory access
//	└── cmd/meminspect/  CLI and interactive TUI for inspecting memory images
//
// # Quick Start
//
// Create a memory, seed it with data segments, and issue typed access:
//
//	mem, err := memory.New(memory.PageSize)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = mem.Initialize([]memory.Segment{{Addr: 8, Data: []byte("hi")}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := mem.Store(16, memory.F64(3.14)); err != nil {
//	    log.Fatal(err)
//	}
//	v, err := mem.Load(16, memory.KindF64)
//
// Every fault is an *errors.Error carrying the phase, kind, and the
// offending address range; callers typically convert these into guest
// traps rather than host failures.
package wasmmemory
