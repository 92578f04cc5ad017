package freeslab

import (
	"math/bits"
	"unsafe"
)

// Slab is the in-band header stamped at the base of every slab-aligned,
// slab-sized memory region. Its address is the slab's base address: it is
// never copied or moved, only addressed via unsafe.Pointer aliased onto
// caller-supplied memory that the Go garbage collector does not scan.
//
// A slab's element size may be less than or equal to its data-block
// capacity (a partitioned slab holding many elements) or may exceed it (a
// "large" slab spanning multiple physical slab units, holding exactly one
// element).
type Slab struct {
	neighborPrev *Slab // physically preceding slab in its segment, or nil
	neighborNext *Slab // physically following slab in its segment, or nil

	freePrev *Slab // previous slab in this bucket's free list, or nil
	freeNext *Slab // next slab in this bucket's free list, or nil

	elementSize uint64 // size of one partitioned element, or total data size for a large slab
	mask        uint64 // bit i set iff element slot i is occupied

	_ [16]byte // padding so the header's size matches platform max-alignment
}

// HeaderSize is the number of bytes a Slab header occupies at the base of
// its region. The data block begins immediately after it.
const HeaderSize = unsafe.Sizeof(Slab{})

// dataPtr returns the address of the first byte of the slab's data block.
func (s *Slab) dataPtr() unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(s)) + HeaderSize)
}

// maxElements returns the number of element slots a slab of this
// element size can hold out of a data block of the given capacity.
// A large slab (elementSize > dataCapacity) always holds exactly one.
func (s *Slab) maxElements(dataCapacity uintptr) int {
	if uintptr(s.elementSize) > dataCapacity || s.elementSize == 0 {
		return 1
	}
	n := dataCapacity / uintptr(s.elementSize)
	if n < 1 {
		n = 1
	}
	return int(n)
}

// fullMask returns the bitmask with the low n bits set, the value mask
// takes when every element slot 0..n-1 is occupied.
func fullMask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(n)) - 1
}

// isEmpty reports whether no element slot is occupied.
func (s *Slab) isEmpty() bool {
	return s.mask == 0
}

// isFull reports whether every element slot this slab can hold, given
// dataCapacity, is occupied.
func (s *Slab) isFull(dataCapacity uintptr) bool {
	return s.mask == fullMask(s.maxElements(dataCapacity))
}

// hasElement reports whether slot i is occupied.
func (s *Slab) hasElement(i int) bool {
	return s.mask&(uint64(1)<<uint(i)) != 0
}

// getFirstFreeElement returns the index of the first unoccupied slot,
// counting trailing ones in the mask. When the slab is full the result
// equals maxElements, or 64 (the mask width) if maxElements exceeds 64.
func (s *Slab) getFirstFreeElement() int {
	return bits.TrailingZeros64(^s.mask)
}

// setElement marks slot i occupied.
func (s *Slab) setElement(i int) {
	s.mask |= uint64(1) << uint(i)
}

// clearElement marks slot i unoccupied.
func (s *Slab) clearElement(i int) {
	s.mask &^= uint64(1) << uint(i)
}

// getElement returns the address of element slot i.
func (s *Slab) getElement(i int) unsafe.Pointer {
	return unsafe.Pointer(uintptr(s.dataPtr()) + uintptr(i)*uintptr(s.elementSize))
}
