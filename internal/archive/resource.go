package archive

import "fmt"

// Base address markers selecting the region an address belongs to.
const (
	VirtualBase  = 0x5000_0000
	PhysicalBase = 0x6000_0000
)

// Region identifies one of the two memory regions of a resource.
type Region int

const (
	Virtual Region = iota
	Physical
)

func (r Region) String() string {
	switch r {
	case Virtual:
		return "virtual"
	case Physical:
		return "physical"
	default:
		return fmt.Sprintf("region(%d)", int(r))
	}
}

// Base returns the address marker of the region.
func (r Region) Base() uint64 {
	if r == Physical {
		return PhysicalBase
	}
	return VirtualBase
}

// Location is an address resolved to a region and an offset inside it.
type Location struct {
	Region Region
	Offset uint64
}

// Address returns the tagged address of the location.
func (l Location) Address() uint64 {
	return l.Offset | l.Region.Base()
}

// Resolve splits an address into its region and offset. The virtual marker
// is checked first, so an address carrying both markers is virtual.
func Resolve(address uint64) (Location, error) {
	switch {
	case address&VirtualBase == VirtualBase:
		return Location{Region: Virtual, Offset: address &^ VirtualBase}, nil
	case address&PhysicalBase == PhysicalBase:
		return Location{Region: Physical, Offset: address &^ PhysicalBase}, nil
	default:
		return Location{}, fmt.Errorf("%w: 0x%08x", ErrInvalidAddress, address)
	}
}

var _ Reader = &Resource{}

// Resource reads from a virtual and a physical region through one address space.
// Reads do not advance the stored address, callers set the position before
// every read.
type Resource struct {
	virtual  *Memory
	physical *Memory
	address  uint64
}

// NewResource returns a reader over the given region buffers.
func NewResource(virtual, physical []byte) *Resource {
	return &Resource{
		virtual:  NewMemory(virtual),
		physical: NewMemory(physical),
	}
}

// ReadBytes reads len(p) bytes from the region selected by the current address.
func (r *Resource) ReadBytes(p []byte) (int, error) {
	loc, err := Resolve(r.address)
	if err != nil {
		return 0, err
	}

	mem := r.memory(loc.Region)
	mem.SetPosition(loc.Offset)
	n, err := mem.ReadBytes(p)
	r.address = loc.Address()
	return n, err
}

// SetPosition stores the address used by the next read.
func (r *Resource) SetPosition(pos uint64) {
	r.address = pos
}

// Position returns the current address.
func (r *Resource) Position() uint64 {
	return r.address
}

// Remaining returns the number of bytes left in the region selected by the
// current address, 0 if the address is invalid.
func (r *Resource) Remaining() uint64 {
	loc, err := Resolve(r.address)
	if err != nil {
		return 0
	}
	size := r.memory(loc.Region).Len()
	if loc.Offset >= size {
		return 0
	}
	return size - loc.Offset
}

// Len returns the size of the given region.
func (r *Resource) Len(region Region) uint64 {
	return r.memory(region).Len()
}

func (r *Resource) memory(region Region) *Memory {
	if region == Physical {
		return r.physical
	}
	return r.virtual
}
