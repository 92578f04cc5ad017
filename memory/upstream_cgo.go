//go:build cgo

package memory

//#include <stdlib.h>
import "C"

import "fmt"
import "sync"
import "unsafe"

// OSUpstream backs a Memory directly against the C heap via malloc,
// handing out memory the Go garbage collector never scans or moves.
// This matters because every admitted segment carries in-band Slab
// headers that freeslab addresses with raw pointer arithmetic, which
// the GC's write barrier and mover are not obliged to respect for
// ordinary Go-allocated memory.
//
// Segments are only returned to the OS when Close is called, matching
// malloc's own policy of giving memory back only when the arena is
// released.
type OSUpstream struct {
	mu     sync.Mutex
	blocks []unsafe.Pointer
}

// NewOSUpstream returns an Upstream backed by the C heap.
func NewOSUpstream() *OSUpstream { return &OSUpstream{} }

func (u *OSUpstream) AllocateSegment(minBytes uintptr) ([]byte, error) {
	ptr := C.malloc(C.size_t(minBytes))
	if ptr == nil {
		return nil, fmt.Errorf("memory: C.malloc(%d) failed", minBytes)
	}
	u.mu.Lock()
	u.blocks = append(u.blocks, ptr)
	u.mu.Unlock()
	return unsafe.Slice((*byte)(ptr), int(minBytes)), nil
}

// Close frees every block handed out so far. The Memory this upstream
// backs, and any pointer still derived from it, must not be used
// afterward.
func (u *OSUpstream) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, ptr := range u.blocks {
		C.free(ptr)
	}
	u.blocks = nil
}
