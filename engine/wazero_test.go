package engine

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	memerrors "github.com/wippyai/wasm-memory/errors"
)

// fakeGuest emulates a wazero instance memory over a flat buffer.
type fakeGuest struct {
	data []byte
}

const fakePageSize = 65536

func newFakeGuest(pages int) *fakeGuest {
	return &fakeGuest{data: make([]byte, pages*fakePageSize)}
}

func (m *fakeGuest) Size() uint32 { return uint32(len(m.data)) }

func (m *fakeGuest) Grow(deltaPages uint32) (uint32, bool) {
	prev := uint32(len(m.data) / fakePageSize)
	next := make([]byte, len(m.data)+int(deltaPages)*fakePageSize)
	copy(next, m.data)
	m.data = next
	return prev, true
}

func (m *fakeGuest) inRange(offset, count uint32) bool {
	return uint64(offset)+uint64(count) <= uint64(len(m.data))
}

func (m *fakeGuest) Read(offset, byteCount uint32) ([]byte, bool) {
	if !m.inRange(offset, byteCount) {
		return nil, false
	}
	return m.data[offset : offset+byteCount], true
}

func (m *fakeGuest) Write(offset uint32, v []byte) bool {
	if !m.inRange(offset, uint32(len(v))) {
		return false
	}
	copy(m.data[offset:], v)
	return true
}

func (m *fakeGuest) ReadUint32Le(offset uint32) (uint32, bool) {
	if !m.inRange(offset, 4) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(m.data[offset:]), true
}

func (m *fakeGuest) ReadUint64Le(offset uint32) (uint64, bool) {
	if !m.inRange(offset, 8) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(m.data[offset:]), true
}

func (m *fakeGuest) WriteUint32Le(offset uint32, v uint32) bool {
	if !m.inRange(offset, 4) {
		return false
	}
	binary.LittleEndian.PutUint32(m.data[offset:], v)
	return true
}

func (m *fakeGuest) WriteUint64Le(offset uint32, v uint64) bool {
	if !m.inRange(offset, 8) {
		return false
	}
	binary.LittleEndian.PutUint64(m.data[offset:], v)
	return true
}

func TestGuestMemory_ReadWrite(t *testing.T) {
	g := &GuestMemory{mem: newFakeGuest(1)}

	if err := g.Write(8, []byte{0xDE, 0xAD, 0xBE, 0xEF}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := g.Read(8, 4)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x", i, data[i], want[i])
		}
	}
}

func TestGuestMemory_ReadCopies(t *testing.T) {
	fake := newFakeGuest(1)
	g := &GuestMemory{mem: fake}
	if err := g.WriteU8(0, 1); err != nil {
		t.Fatal(err)
	}
	data, err := g.Read(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	data[0] = 0xFF
	if fake.data[0] != 1 {
		t.Error("Read returned an aliasing view of the guest buffer")
	}
}

func TestGuestMemory_FixedWidths(t *testing.T) {
	g := &GuestMemory{mem: newFakeGuest(1)}

	if err := g.WriteU16(0, 0xBEEF); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteU32(4, 0x01020304); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteU64(8, 0x1122334455667788); err != nil {
		t.Fatal(err)
	}

	if v, err := g.ReadU16(0); err != nil || v != 0xBEEF {
		t.Errorf("ReadU16 = %#x (%v)", v, err)
	}
	if v, err := g.ReadU32(4); err != nil || v != 0x01020304 {
		t.Errorf("ReadU32 = %#x (%v)", v, err)
	}
	if v, err := g.ReadU64(8); err != nil || v != 0x1122334455667788 {
		t.Errorf("ReadU64 = %#x (%v)", v, err)
	}

	// Little-endian layout is observable through raw reads.
	data, err := g.Read(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if data[0] != 0x04 || data[3] != 0x01 {
		t.Errorf("u32 bytes = % x, want little-endian", data)
	}
}

func TestGuestMemory_Bounds(t *testing.T) {
	g := &GuestMemory{mem: newFakeGuest(1)}
	size := g.Size()

	if _, err := g.ReadU32(size - 4); err != nil {
		t.Errorf("read at last valid address = %v", err)
	}
	if _, err := g.ReadU32(size - 3); !errors.Is(err, memerrors.ErrOutOfBounds) {
		t.Errorf("read one past end = %v, want out_of_bounds", err)
	}
	if err := g.WriteU64(size, 0); !errors.Is(err, memerrors.ErrOutOfBounds) {
		t.Errorf("write at size = %v, want out_of_bounds", err)
	}

	// Beyond the 32-bit guest offset space.
	if _, err := g.Read(1<<33, 4); !errors.Is(err, memerrors.ErrOutOfBounds) {
		t.Errorf("read beyond 4GiB = %v, want out_of_bounds", err)
	}
	// 64-bit wraparound.
	if _, err := g.Read(math.MaxUint64, 2); !errors.Is(err, memerrors.ErrOutOfBounds) {
		t.Errorf("read at 2^64-1 = %v, want out_of_bounds", err)
	}
}

func TestGuestMemory_GrowPages(t *testing.T) {
	g := &GuestMemory{mem: newFakeGuest(1)}

	prev, err := g.GrowPages(2)
	if err != nil {
		t.Fatalf("GrowPages: %v", err)
	}
	if prev != 1 {
		t.Errorf("previous pages = %d, want 1", prev)
	}
	if g.Size() != 3*fakePageSize {
		t.Errorf("Size() = %d after grow, want %d", g.Size(), 3*fakePageSize)
	}

	if _, err := g.GrowPages(math.MaxUint64); !errors.Is(err, memerrors.ErrOutOfMemory) {
		t.Errorf("GrowPages(2^64-1) = %v, want out_of_memory", err)
	}
}
