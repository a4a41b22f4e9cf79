package archive

import "fmt"

var _ Reader = &Memory{}

// Memory is a sequential reader over a byte buffer.
// A failed read never moves the position.
type Memory struct {
	data     []byte
	length   uint64
	position uint64
}

// NewMemory returns a reader positioned at the start of data.
func NewMemory(data []byte) *Memory {
	return &Memory{
		data:   data,
		length: uint64(len(data)),
	}
}

// ReadBytes copies len(p) bytes from the current position into p.
func (m *Memory) ReadBytes(p []byte) (int, error) {
	requested := uint64(len(p))
	if m.position > m.length || requested > m.length-m.position {
		return 0, fmt.Errorf("%w: reading %d bytes at position %d of %d",
			ErrOutOfBounds, requested, m.position, m.length)
	}

	n := copy(p, m.data[m.position:])
	m.position += uint64(n)
	return n, nil
}

// SetPosition sets the read position.
func (m *Memory) SetPosition(pos uint64) {
	m.position = pos
}

// Position returns the current read position.
func (m *Memory) Position() uint64 {
	return m.position
}

// Len returns the length of the underlying buffer.
func (m *Memory) Len() uint64 {
	return m.length
}

// Remaining returns the number of bytes left after the current position.
func (m *Memory) Remaining() uint64 {
	if m.position >= m.length {
		return 0
	}
	return m.length - m.position
}
