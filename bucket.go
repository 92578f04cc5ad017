package freeslab

import "math/bits"

// maxBuckets is the width of the bucket-occupancy mask word: the bucket
// count is bounded to the width of a single machine word.
const maxBuckets = 64

// requiredSizeToSufficientBucketIndex returns the smallest bucket index
// whose elements are large enough to satisfy a request of size bytes:
// bit_width(size - 1), ceiling log2.
func requiredSizeToSufficientBucketIndex(size uint64) int {
	if size == 0 {
		size = 1
	}
	return bits.Len64(size - 1)
}

// blockSizeToBucketIndex returns the bucket index a slab of exactly this
// element size lives in: bit_width(size) - 1, floor log2. A bucket may
// therefore hold slabs of any size in [2^b, 2^(b+1)).
func blockSizeToBucketIndex(size uint64) int {
	return bits.Len64(size) - 1
}

// requiredSizeToElementSize derives the element size a slab must carry to
// satisfy a request of size bytes, given a slab's data capacity and the
// header offset. If the request fits a partitioned slab, the element size
// is exactly the next power of two. Otherwise it is rounded up to a whole
// number of slab units minus the header offset (a "large" slab).
func requiredSizeToElementSize(size uint64, dataCapacity, slabSize, headerOffset uintptr) uint64 {
	sufficientBucket := requiredSizeToSufficientBucketIndex(size)
	pow2 := uint64(1) << uint(sufficientBucket)
	if uintptr(pow2) <= dataCapacity {
		return pow2
	}
	total := uintptr(size) + headerOffset
	units := total / slabSize
	if total%slabSize != 0 {
		units++
	}
	return uint64(units*slabSize - headerOffset)
}
