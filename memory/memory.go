package memory

import (
	"fmt"
	"unsafe"

	"github.com/bnclabs/freeslab"
	s "github.com/prataprc/gosettings"
)

// Memory is a growable allocator: a freeslab.FreeMemoryManager paired
// with an Upstream it consults whenever every admitted segment is
// exhausted. It decides when to fetch more memory and keeps the
// fetched segments alive, delegating all of the actual bucketing,
// splitting and coalescing to freeslab.
//
// Not safe for concurrent use; see the concurrent subpackage.
type Memory struct {
	mgr      *freeslab.FreeMemoryManager
	upstream Upstream
	settings s.Settings
	log      Logger
	slabSize uintptr

	segments [][]byte // retained so the Go GC never reclaims admitted memory
}

// NewMemory constructs a Memory backed by upstream, configured by opts
// over DefaultSettings.
func NewMemory(upstream Upstream, opts ...Option) *Memory {
	m := &Memory{
		upstream: upstream,
		settings: DefaultSettings(),
		log:      stderrLogger{},
	}
	m.slabSize = slabSizeFromSettings(m.settings)
	for _, opt := range opts {
		opt(m)
	}
	m.mgr = freeslab.NewFreeMemoryManager(m.slabSize)
	return m
}

// SlabSize returns the configured slab size.
func (m *Memory) SlabSize() uintptr { return m.slabSize }

// Segments returns the number of upstream segments admitted so far.
func (m *Memory) Segments() int { return len(m.segments) }

// Allocate returns a pointer to size usable, uninitialized bytes,
// growing from Upstream if no admitted segment can satisfy the
// request. It returns nil only if Upstream itself refuses the growth.
func (m *Memory) Allocate(size uint64) unsafe.Pointer {
	if size == 0 {
		size = 1
	}
	if ptr := m.mgr.Allocate(size); ptr != nil {
		return ptr
	}
	if err := m.growSegment(size); err != nil {
		m.log.Warnf("could not grow to satisfy a %d-byte allocation: %v", size, err)
		return nil
	}
	return m.mgr.Allocate(size)
}

// Release returns a block previously obtained from Allocate. Releasing
// nil is a no-op; releasing anything else is a programming error.
func (m *Memory) Release(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	m.mgr.Deallocate(ptr)
}

// growSegment fetches a fresh segment from Upstream sized to comfortably
// cover size, aligns it to the slab size, and admits it: request at
// least eight slab units, or twice what is strictly needed if that is
// more, plus one slab of alignment slack, so a run of similarly-sized
// requests doesn't bounce back to Upstream on every call.
func (m *Memory) growSegment(size uint64) error {
	required := uintptr(size) + freeslab.HeaderSize
	minBytes := m.slabSize * 8
	if required*2 > minBytes {
		minBytes = required * 2
	}

	raw, err := m.upstream.AllocateSegment(minBytes + m.slabSize)
	if err != nil {
		return err
	}
	aligned, units := alignSegment(raw, m.slabSize)
	if units == 0 {
		return fmt.Errorf("memory: upstream segment of %d bytes cannot hold a single %d-byte slab", len(raw), m.slabSize)
	}

	slab := freeslab.LaunderSegment(unsafe.Pointer(&aligned[0]), units, m.slabSize)
	m.mgr.AddNewMemorySegment(slab)
	m.segments = append(m.segments, raw)
	m.log.Infof("admitted a %d-unit segment (%d bytes) from upstream", units, len(aligned))
	return nil
}

// New allocates space for, and zero-initializes, a T from m.
func New[T any](m *Memory) *T {
	var zero T
	ptr := m.Allocate(uint64(unsafe.Sizeof(zero)))
	if ptr == nil {
		return nil
	}
	out := (*T)(ptr)
	*out = zero
	return out
}

// NewValue allocates space for a T from m and copies value into it.
func NewValue[T any](m *Memory, value T) *T {
	ptr := m.Allocate(uint64(unsafe.Sizeof(value)))
	if ptr == nil {
		return nil
	}
	out := (*T)(ptr)
	*out = value
	return out
}

// Destroy releases a value previously obtained from New or NewValue.
// Destroying nil is a no-op.
func Destroy[T any](m *Memory, ptr *T) {
	if ptr == nil {
		return
	}
	m.Release(unsafe.Pointer(ptr))
}
