package freeslab

import "testing"

func TestRequiredSizeToSufficientBucketIndex(t *testing.T) {
	cases := []struct {
		size uint64
		want int
	}{
		{1, 0},
		{5, 3}, // smallest bucket able to hold 5 bytes is size class 8
		{8, 3},
		{9, 4},
		{192, 8},
	}
	for _, c := range cases {
		if got := requiredSizeToSufficientBucketIndex(c.size); got != c.want {
			t.Errorf("size %d: expected bucket %d, got %d", c.size, c.want, got)
		}
	}
}

func TestBlockSizeToBucketIndex(t *testing.T) {
	cases := []struct {
		size uint64
		want int
	}{
		{8, 3},
		{2240, 11}, // a large slab's size need not be a power of two: it floor-routes to 2^11
		{2304, 11},
		{4095, 11},
		{4096, 12},
	}
	for _, c := range cases {
		if got := blockSizeToBucketIndex(c.size); got != c.want {
			t.Errorf("size %d: expected bucket %d, got %d", c.size, c.want, got)
		}
	}
}

func TestRequiredSizeToElementSize(t *testing.T) {
	const slabSize, headerOffset = 256, 64
	const dataCapacity = slabSize - headerOffset // 192

	if got := requiredSizeToElementSize(5, dataCapacity, slabSize, headerOffset); got != 8 {
		t.Errorf("expected 8, got %d", got)
	}
	if got := requiredSizeToElementSize(192, dataCapacity, slabSize, headerOffset); got != 192 {
		t.Errorf("expected 192, got %d", got)
	}
	// 1024 bytes doesn't fit a single partitioned slab (D=192): rounds up
	// to a whole number of slab units minus the header.
	if got := requiredSizeToElementSize(1024, dataCapacity, slabSize, headerOffset); got != 5*slabSize-headerOffset {
		t.Errorf("expected %d, got %d", 5*slabSize-headerOffset, got)
	}
}
