package rsc

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cfxkit/cfxtool/internal/archive"
)

// Magic is the little-endian value of the "RSC7" file signature.
const Magic uint32 = 0x37435352

// HeaderSize is the size of the file header including the magic.
const HeaderSize = 20

// ErrInvalidMagic is returned when a file does not start with Magic.
var ErrInvalidMagic = errors.New("invalid magic")

// Header is the fixed header following the magic.
type Header struct {
	Flags             uint32 `json:"flags"`
	VirtualPageFlags  uint32 `json:"virtual_page_flags"`
	PhysicalPageFlags uint32 `json:"physical_page_flags"`
	Version           int32  `json:"version"`
}

// CheckMagic reads the file signature and verifies it.
func CheckMagic(r archive.Reader) error {
	magic, err := archive.ReadUint32(r)
	if err != nil {
		return fmt.Errorf("reading magic: %w", err)
	}
	if magic != Magic {
		return fmt.Errorf("%w: 0x%08x (expected: 0x%08x)", ErrInvalidMagic, magic, Magic)
	}
	return nil
}

// ParseHeader reads the header fields in file order. Only the low byte of
// the version is significant.
func ParseHeader(r archive.Reader) (Header, error) {
	var h Header
	var err error

	if h.Flags, err = archive.ReadUint32(r); err != nil {
		return Header{}, fmt.Errorf("reading flags: %w", err)
	}
	if h.VirtualPageFlags, err = archive.ReadUint32(r); err != nil {
		return Header{}, fmt.Errorf("reading virtual page flags: %w", err)
	}
	if h.PhysicalPageFlags, err = archive.ReadUint32(r); err != nil {
		return Header{}, fmt.Errorf("reading physical page flags: %w", err)
	}
	version, err := archive.ReadInt32(r)
	if err != nil {
		return Header{}, fmt.Errorf("reading version: %w", err)
	}
	h.Version = version & 0xFF

	return h, nil
}

// MarshalBinary encodes the magic followed by the header fields.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Flags)
	binary.LittleEndian.PutUint32(buf[8:12], h.VirtualPageFlags)
	binary.LittleEndian.PutUint32(buf[12:16], h.PhysicalPageFlags)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(h.Version))
	return buf, nil
}

func (h Header) String() string {
	return fmt.Sprintf("flags=0x%08x virtual=0x%08x physical=0x%08x version=%d",
		h.Flags, h.VirtualPageFlags, h.PhysicalPageFlags, h.Version)
}
