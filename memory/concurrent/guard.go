// Package concurrent wraps a *memory.Memory with a mutex so it can be
// shared across goroutines: freeslab's core manager stays
// single-threaded and fast, and the cost of synchronization is paid
// only by callers who need it.
package concurrent

import (
	"sync"
	"unsafe"

	"github.com/Jille/easymutex"
	"github.com/bnclabs/freeslab/memory"
)

// Guard serializes access to an underlying *memory.Memory.
type Guard struct {
	mtx sync.Mutex
	mem *memory.Memory
}

// NewGuard wraps mem for concurrent use. mem must not be used directly
// by any other goroutine once wrapped.
func NewGuard(mem *memory.Memory) *Guard {
	return &Guard{mem: mem}
}

// Allocate is the concurrency-safe counterpart of Memory.Allocate.
func (g *Guard) Allocate(size uint64) unsafe.Pointer {
	em := easymutex.LockMutex(&g.mtx)
	defer em.Unlock()
	return g.mem.Allocate(size)
}

// Release is the concurrency-safe counterpart of Memory.Release.
func (g *Guard) Release(ptr unsafe.Pointer) {
	em := easymutex.LockMutex(&g.mtx)
	defer em.Unlock()
	g.mem.Release(ptr)
}

// SlabSize returns the guarded Memory's configured slab size.
func (g *Guard) SlabSize() uintptr {
	return g.mem.SlabSize()
}

// New allocates space for a zero-initialized T under g's lock.
func New[T any](g *Guard) *T {
	em := easymutex.LockMutex(&g.mtx)
	defer em.Unlock()
	return memory.New[T](g.mem)
}

// NewValue allocates space for a T under g's lock and copies value
// into it.
func NewValue[T any](g *Guard, value T) *T {
	em := easymutex.LockMutex(&g.mtx)
	defer em.Unlock()
	return memory.NewValue(g.mem, value)
}

// Destroy releases a value previously obtained from New or NewValue
// under g's lock.
func Destroy[T any](g *Guard, ptr *T) {
	em := easymutex.LockMutex(&g.mtx)
	defer em.Unlock()
	memory.Destroy(g.mem, ptr)
}
