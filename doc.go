// Package freeslab implements a single-threaded free-memory manager for
// aligned, fixed-capacity slabs.
//
// A slab is a slab-aligned, slab-sized byte region whose first bytes carry
// an in-band header (see Slab) and whose remainder is a data block sliced
// into equal-sized elements. The manager keeps one doubly-linked free list
// per power-of-two size class ("bucket"), recycles freed elements, splits
// oversized empty slabs to satisfy small requests, and coalesces adjacent
// empty slabs to reclaim fragmentation.
//
// Types and functions in this package are not safe for concurrent use; see
// the memory/concurrent package for a mutex-guarded wrapper.
//
// freeslab does not know where its memory comes from. Callers launder a
// caller-supplied, slab-aligned byte region with LaunderSegment and hand it
// to a FreeMemoryManager via AddNewMemorySegment. The memory package builds
// a complete allocator on top of this core by pairing it with an upstream
// backing allocator.
package freeslab
