//go:build !cgo

package memory

// OSUpstream is unavailable in this build: cgo is disabled, so there is
// no C heap to back it with. Use HeapUpstream instead, which satisfies
// every request from the Go runtime heap and aligns each segment to the
// configured slab size itself.
