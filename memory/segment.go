package memory

// Segment is a declarative initializer: a literal byte sequence written
// at a target address when the memory is initialized. Segments are
// transient inputs and are not retained after application.
type Segment struct {
	Addr uint64
	Data []byte
}
