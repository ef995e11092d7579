// Package memory implements the core linear memory: a growable,
// zero-initialized byte buffer with bounds-checked little-endian
// access at 64-bit addresses.
//
// All operations funnel through a single overflow-safe range check, so
// an address plus length that wraps 64-bit arithmetic is reported as
// out of bounds rather than aliasing a low address. Typed access
// (Load, Store, LoadExtend, StoreWrap) is layered on the raw byte
// primitives (LoadBytes, StoreBytes) and covers the four wasm value
// kinds plus the narrow sign/zero-extending and wrapping forms.
//
// A Memory performs no locking and no logging; every fault is returned
// as a structured *errors.Error for the caller to turn into a trap.
package memory
