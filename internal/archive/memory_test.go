package archive

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemoryLen(t *testing.T) {
	m := NewMemory(make([]byte, 6))
	assert.Equal(t, uint64(6), m.Len())
	assert.Equal(t, uint64(6), m.Remaining())
}

func TestMemoryReadBytes(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	m := NewMemory(data)

	buf := make([]byte, 5)
	n, err := m.ReadBytes(buf)
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, data, buf)
	assert.Equal(t, uint64(5), m.Position())
	assert.Equal(t, uint64(0), m.Remaining())
}

func TestMemoryReadBytesPartialLengths(t *testing.T) {
	data := []byte{0x10, 0x20, 0x30, 0x40, 0x50, 0x60, 0x70}

	for length := 0; length <= len(data); length++ {
		m := NewMemory(data)
		buf := make([]byte, length)

		n, err := m.ReadBytes(buf)
		assert.NoError(t, err)
		assert.Equal(t, length, n)
		assert.Equal(t, uint64(length), m.Position())
		assert.Equal(t, data[:length], buf)
	}
}

func TestMemoryReadBytesOverflow(t *testing.T) {
	m := NewMemory([]byte{69, 0, 0, 0})
	buf := make([]byte, 5)

	n, err := m.ReadBytes(buf)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, 0, n)
	assert.Equal(t, uint64(0), m.Position())
}

func TestMemoryFailedReadKeepsPosition(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6}
	m := NewMemory(data)

	head := make([]byte, 2)
	_, err := m.ReadBytes(head)
	assert.NoError(t, err)

	_, err = m.ReadBytes(make([]byte, 5))
	assert.Error(t, err)
	assert.Equal(t, uint64(2), m.Position())

	rest := make([]byte, 4)
	_, err = m.ReadBytes(rest)
	assert.NoError(t, err)

	fresh := NewMemory(data)
	fresh.SetPosition(2)
	expected := make([]byte, 4)
	_, err = fresh.ReadBytes(expected)
	assert.NoError(t, err)
	assert.Equal(t, expected, rest)
}

func TestMemorySetPositionPastEnd(t *testing.T) {
	m := NewMemory([]byte{1, 2, 3, 4})
	m.SetPosition(10)
	assert.Equal(t, uint64(0), m.Remaining())

	_, err := m.ReadBytes(make([]byte, 1))
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	m.SetPosition(^uint64(0))
	_, err = m.ReadBytes(make([]byte, 1))
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, ^uint64(0), m.Position())
}
