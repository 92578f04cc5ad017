package freeslab

import (
	"math/bits"
	"unsafe"
)

// FreeMemoryManager is the size-class bucket table and the allocate/
// deallocate/split/merge state machine. It owns no memory of its own:
// callers launder raw byte regions (LaunderSegment) and admit them with
// AddNewMemorySegment. It is the only type that mutates a Slab's
// neighbour and free-list links.
//
// Not safe for concurrent use; see memory/concurrent.Guard.
type FreeMemoryManager struct {
	slabSize     uintptr // S: compile-time-fixed slab size, a power of two
	dataCapacity uintptr // D = S - HeaderSize

	buckets [maxBuckets]*Slab // head of the free list for each size class
	mask    uint64            // bit b set iff buckets[b] != nil
}

// NewFreeMemoryManager constructs a manager for slabs of the given size.
// slabSize must be a power of two strictly greater than HeaderSize. The
// assertion happens once, here, rather than on every Allocate/Deallocate
// call.
func NewFreeMemoryManager(slabSize uintptr) *FreeMemoryManager {
	if slabSize == 0 || slabSize&(slabSize-1) != 0 {
		panicf("slab size %d is not a power of two", slabSize)
	}
	if slabSize <= HeaderSize {
		panicf("slab size %d does not leave room for a %d-byte header", slabSize, HeaderSize)
	}
	return &FreeMemoryManager{
		slabSize:     slabSize,
		dataCapacity: slabSize - HeaderSize,
	}
}

// SlabSize returns the configured slab size S.
func (m *FreeMemoryManager) SlabSize() uintptr { return m.slabSize }

// DataCapacity returns D = S - HeaderSize, the per-slab data block size.
func (m *FreeMemoryManager) DataCapacity() uintptr { return m.dataCapacity }

// AddNewMemorySegment admits a freshly-laundered slab (no neighbours,
// empty, not in any free list) produced by LaunderSegment. It threads the
// slab into its bucket, first attempting to coalesce it with any already-
// empty physical neighbours — there are none yet for a brand-new segment,
// so this call degenerates to a plain bucket insertion, but the behaviour
// is identical to what deallocate uses when a slab empties out.
func (m *FreeMemoryManager) AddNewMemorySegment(slab *Slab) {
	m.addMemorySegment(slab)
}

// Allocate returns a pointer to size usable bytes, or nil if no admitted
// segment can satisfy the request.
func (m *FreeMemoryManager) Allocate(size uint64) unsafe.Pointer {
	if size == 0 {
		size = 1
	}

	matchingBucket := requiredSizeToSufficientBucketIndex(size)

	// Fast path: the head slab of the request's bucket has a free slot.
	// Its element size is at least 2^matchingBucket but need not be
	// exactly that: an empty slab in the bucket is used as-is, without
	// re-partitioning.
	if matchingBucket < maxBuckets && m.mask&(uint64(1)<<uint(matchingBucket)) != 0 {
		slab := m.buckets[matchingBucket]
		idx := slab.getFirstFreeElement()
		slab.setElement(idx)
		if slab.isFull(m.dataCapacity) {
			m.removeFromFreeList(slab)
		}
		return slab.getElement(idx)
	}

	// Slow path: carve a new slab out of the smallest empty, large-enough
	// slab on hand.
	elementSize := requiredSizeToElementSize(size, m.dataCapacity, m.slabSize, HeaderSize)
	minFullSlabBucket := blockSizeToBucketIndex(uint64(m.dataCapacity))
	start := matchingBucket
	if minFullSlabBucket > start {
		start = minFullSlabBucket
	}
	if start >= maxBuckets {
		return nil
	}
	candidates := m.mask &^ (fullMask(start))
	if candidates == 0 {
		return nil
	}
	bucket := bits.TrailingZeros64(candidates)

	slab := m.buckets[bucket]
	m.removeFromFreeList(slab)

	desiredTotal := uintptr(elementSize)
	if m.dataCapacity > desiredTotal {
		desiredTotal = m.dataCapacity
	}
	desiredTotal += HeaderSize
	m.splitSlabAtOffset(slab, desiredTotal)

	slab.elementSize = elementSize
	slab.setElement(0)
	if !slab.isFull(m.dataCapacity) {
		m.addToBucket(slab)
	}
	return slab.getElement(0)
}

// Deallocate releases a block previously returned by Allocate. Calling it
// on any other pointer is a programming error.
func (m *FreeMemoryManager) Deallocate(ptr unsafe.Pointer) {
	if ptr == nil {
		panicf("deallocate: nil pointer")
	}

	slabAddr := uintptr(ptr) &^ (m.slabSize - 1)
	slab := (*Slab)(unsafe.Pointer(slabAddr))

	if uintptr(ptr) < slabAddr+HeaderSize {
		panicf("deallocate: pointer %#x falls inside the slab header", uintptr(ptr))
	}
	elementOffset := uintptr(ptr) - slabAddr - HeaderSize
	if slab.elementSize == 0 || elementOffset%uintptr(slab.elementSize) != 0 {
		panicf("deallocate: pointer %#x is not element-aligned", uintptr(ptr))
	}
	idx := int(elementOffset / uintptr(slab.elementSize))
	if !slab.hasElement(idx) {
		panicf("deallocate: double free or pointer not owned by this manager")
	}

	wasFull := slab.isFull(m.dataCapacity)
	slab.clearElement(idx)

	switch {
	case slab.isEmpty():
		if !wasFull {
			m.removeFromFreeList(slab)
		}
		if slab.elementSize < uint64(m.dataCapacity) {
			slab.elementSize = uint64(m.dataCapacity)
		}
		m.addMemorySegment(slab)
	case wasFull:
		m.addToBucket(slab)
	}
}
