// Package memory builds a complete, growable allocator on top of
// freeslab's free-memory manager. Where freeslab only threads and
// recycles slabs the caller already owns, Memory also decides when to
// go get more: it asks an Upstream for a fresh, slab-aligned segment
// whenever the core manager runs dry, and keeps every segment it
// receives alive for the lifetime of the allocator.
package memory
