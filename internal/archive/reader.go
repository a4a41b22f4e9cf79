// Package archive provides bounds checked readers over in-memory archive data.
package archive

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

var (
	// ErrOutOfBounds is returned when a read would advance past the end of the data.
	ErrOutOfBounds = errors.New("read out of bounds")
	// ErrInvalidAddress is returned when an address carries no known region marker.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidString is returned when a string field is not valid UTF-8.
	ErrInvalidString = errors.New("invalid UTF-8 string")
)

// Reader is the single capability every archive backend implements.
// All typed readers in this package are built on top of it.
type Reader interface {
	// ReadBytes fills p from the current position and returns the number of bytes read.
	ReadBytes(p []byte) (int, error)
	// SetPosition moves the read position. It never validates, bounds are
	// checked by the next read.
	SetPosition(pos uint64)
}

// remainder is implemented by readers that know how many bytes are left.
type remainder interface {
	Remaining() uint64
}

// ReadUint32 reads a little-endian uint32.
func ReadUint32(r Reader) (uint32, error) {
	var buf [4]byte
	if _, err := r.ReadBytes(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadInt32 reads a little-endian int32.
func ReadInt32(r Reader) (int32, error) {
	v, err := ReadUint32(r)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// ReadUint64 reads a little-endian uint64.
func ReadUint64(r Reader) (uint64, error) {
	var buf [8]byte
	if _, err := r.ReadBytes(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadFloat32 reads a little-endian IEEE 754 float32.
func ReadFloat32(r Reader) (float32, error) {
	v, err := ReadUint32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadBool reads a single byte, any nonzero value is true.
func ReadBool(r Reader) (bool, error) {
	var buf [1]byte
	if _, err := r.ReadBytes(buf[:]); err != nil {
		return false, err
	}
	return buf[0] != 0, nil
}

// ReadString reads a uint32 length prefix followed by that many bytes of UTF-8 text.
// The length is checked against the remaining data before allocating.
func ReadString(r Reader) (string, error) {
	length, err := ReadUint32(r)
	if err != nil {
		return "", fmt.Errorf("reading string length: %w", err)
	}

	if rem, ok := r.(remainder); ok && uint64(length) > rem.Remaining() {
		return "", fmt.Errorf("reading string data: %w: %d bytes, %d bytes left",
			ErrOutOfBounds, length, rem.Remaining())
	}

	buf := make([]byte, length)
	if _, err := r.ReadBytes(buf); err != nil {
		return "", fmt.Errorf("reading string data: %w", err)
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%w: %d bytes", ErrInvalidString, length)
	}
	return string(buf), nil
}
