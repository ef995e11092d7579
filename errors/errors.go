package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the memory lifecycle the fault occurred
type Phase string

const (
	PhaseAlloc  Phase = "alloc"  // creation and growth
	PhaseInit   Phase = "init"   // data segment application
	PhaseAccess Phase = "access" // loads and stores
)

// Kind categorizes the fault
type Kind string

const (
	// KindOutOfMemory means the request structurally cannot be satisfied
	// by the host's addressing capacity, independent of current state.
	KindOutOfMemory Kind = "out_of_memory"

	// KindOutOfBounds means an address/length combination falls outside
	// the current memory size or overflows 64-bit arithmetic.
	KindOutOfBounds Kind = "out_of_bounds"

	// KindTypeMismatch means a narrow extend/wrap operation was requested
	// with an invalid width/type combination.
	KindTypeMismatch Kind = "type_mismatch"
)

// Sentinels for errors.Is checks that only care about the fault kind.
var (
	ErrOutOfMemory  = &Error{Kind: KindOutOfMemory}
	ErrOutOfBounds  = &Error{Kind: KindOutOfBounds}
	ErrTypeMismatch = &Error{Kind: KindTypeMismatch}
)

// Error is the structured fault type used throughout the library.
// It carries the offending address range and the memory size at the
// time of the fault so callers can trap with full context.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Addr   uint64
	Length uint64
	Size   uint64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Length > 0 {
		fmt.Fprintf(&b, ": address %d, length %d", e.Addr, e.Length)
		if e.Size > 0 || e.Kind == KindOutOfBounds {
			fmt.Fprintf(&b, " (memory size %d)", e.Size)
		}
	}

	if e.Detail != "" {
		if e.Length > 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target with an empty
// Phase matches on Kind alone, so the package sentinels work with
// errors.Is regardless of the phase that raised the fault.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Range sets the offending address range
func (b *Builder) Range(addr, length uint64) *Builder {
	b.err.Addr = addr
	b.err.Length = length
	return b
}

// MemorySize sets the memory size at the time of the fault
func (b *Builder) MemorySize(size uint64) *Builder {
	b.err.Size = size
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common fault patterns

// OutOfMemory reports that a requested size exceeds what the host can
// address or allocate.
func OutOfMemory(phase Phase, requested uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfMemory,
		Detail: fmt.Sprintf("requested size %d exceeds host capacity", requested),
	}
}

// OutOfBounds reports an access outside the valid [0, size) range.
func OutOfBounds(phase Phase, addr, length, size uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Addr:   addr,
		Length: length,
		Size:   size,
	}
}

// Overflow reports an address+length that wraps 64-bit arithmetic.
// It is an out-of-bounds fault: no memory size makes the range valid.
func Overflow(phase Phase, addr, length uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Addr:   addr,
		Length: length,
		Detail: "address arithmetic overflows 64 bits",
	}
}

// TypeMismatch reports an invalid narrow width/value kind pairing.
func TypeMismatch(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindTypeMismatch,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Wrap wraps an existing error with memory fault context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
