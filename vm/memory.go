package vm

import "math/big"

// Memory is the EVM's byte-addressable linear memory. It carries no gas
// model, so every accessor expands the buffer itself on demand rather than
// requiring a prior externally-computed resize: any access touching
// [offset, offset+size) grows the buffer, zero-filling, to the smallest
// multiple of 32 that is >= offset+size.
type Memory struct {
	store []byte
}

// NewMemory returns a new, empty Memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Len returns the current size of memory in bytes (always a multiple of 32).
func (m *Memory) Len() int {
	return len(m.store)
}

// grow expands the buffer, zero-filling, so that [offset, offset+size) is
// addressable, rounding the new length up to the next 32-byte word.
func (m *Memory) grow(offset, size uint64) error {
	if size == 0 {
		return nil
	}
	end := offset + size
	if end < offset { // offset+size overflowed uint64
		return ErrUnsupportedOperation
	}
	if end <= uint64(len(m.store)) {
		return nil
	}
	r := end % 32
	newLen := end
	if r != 0 {
		newLen = end + 32 - r
	}
	grown := make([]byte, newLen)
	copy(grown, m.store)
	m.store = grown
	return nil
}

// Write copies value into memory at offset, growing memory as needed.
func (m *Memory) Write(offset uint64, value []byte) error {
	if len(value) == 0 {
		return nil
	}
	if err := m.grow(offset, uint64(len(value))); err != nil {
		return err
	}
	copy(m.store[offset:offset+uint64(len(value))], value)
	return nil
}

// Read returns a copy of the memory contents at [offset, offset+size), growing memory as needed.
func (m *Memory) Read(offset, size uint64) ([]byte, error) {
	if size == 0 {
		if offset+size < offset { // offset overflowed uint64 even with zero length
			return nil, ErrUnsupportedOperation
		}
		return []byte{}, nil
	}
	if err := m.grow(offset, size); err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, m.store[offset:offset+size])
	return out, nil
}

// StoreWord writes the 32-byte big-endian encoding of val at offset.
func (m *Memory) StoreWord(offset uint64, val *big.Int) error {
	enc := Encode32(val)
	return m.Write(offset, enc[:])
}

// StoreByte writes a single byte at offset.
func (m *Memory) StoreByte(offset uint64, b byte) error {
	return m.Write(offset, []byte{b})
}

// LoadWord returns the 32 bytes at offset as a Word, growing memory as needed.
func (m *Memory) LoadWord(offset uint64) (*big.Int, error) {
	b, err := m.Read(offset, 32)
	if err != nil {
		return nil, err
	}
	var arr [32]byte
	copy(arr[:], b)
	return Decode32(arr), nil
}

// Data returns the full backing slice.
func (m *Memory) Data() []byte {
	return m.store
}
