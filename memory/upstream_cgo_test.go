//go:build cgo

package memory

import "testing"

func TestOSUpstreamAllocatesAndCloses(t *testing.T) {
	u := NewOSUpstream()
	buf, err := u.AllocateSegment(4096)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buf) != 4096 {
		t.Fatalf("expected 4096 bytes, got %d", len(buf))
	}
	buf[0] = 0xAB
	if buf[0] != 0xAB {
		t.Fatalf("expected the returned slice to be writable")
	}
	u.Close()
}

func TestMemoryOverOSUpstream(t *testing.T) {
	u := NewOSUpstream()
	defer u.Close()

	m := NewMemory(u, WithSlabSize(512))
	ptr := m.Allocate(64)
	if ptr == nil {
		t.Fatal("expected a non-nil allocation backed by the C heap")
	}
	m.Release(ptr)
}
