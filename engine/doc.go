// Package engine bridges wazero instance memories into this library's
// access surface.
//
// GuestMemory wraps a wazero api.Memory behind the wasmmemory.Memory
// interface, translating wazero's boolean fault reporting into the
// structured errors used everywhere else. LoadValue and StoreValue
// provide typed value access over any wasmmemory.Memory, so host
// functions can use one code path for owned memories and live guest
// memories.
//
// The bridge logs faults at debug level through a zap logger that is a
// no-op unless SetLogger is called.
package engine
