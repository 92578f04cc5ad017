package freeslab

import (
	"testing"
	"unsafe"
)

// alignedRegion allocates a byte slice with at least size usable bytes
// starting at an address aligned to align (a power of two), returning
// that aligned sub-slice. The backing slice is kept alive by the returned
// value itself, same as any other Go slice — callers must keep a
// reference to it for as long as they hold pointers derived from it.
func alignedRegion(t testing.TB, size, align uintptr) []byte {
	t.Helper()
	buf := make([]byte, size+align)
	base := uintptr(unsafe.Pointer(&buf[0]))
	offset := (align - base%align) % align
	return buf[offset : offset+size]
}

func launderTestSegment(t testing.TB, slabSize uintptr, slabUnits int) (*Slab, []byte) {
	t.Helper()
	region := alignedRegion(t, slabSize*uintptr(slabUnits), slabSize)
	slab := LaunderSegment(unsafe.Pointer(&region[0]), slabUnits, slabSize)
	return slab, region
}
