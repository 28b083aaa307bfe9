package gason

import "testing"

func TestArena_HandlesAreDense(t *testing.T) {
	var a Arena
	for i := 1; i <= 10; i++ {
		h, n := a.alloc()
		if h != handle(i) {
			t.Fatalf("alloc %d returned handle %d", i, h)
		}
		if a.node(h) != n {
			t.Fatalf("node(%d) does not resolve to the allocated node", h)
		}
	}
	if a.Len() != 10 {
		t.Errorf("Len() = %d, want 10", a.Len())
	}
}

// Addresses handed out must stay stable while the arena grows across
// zone boundaries.
func TestArena_PointerStability(t *testing.T) {
	var a Arena
	const count = 10 * minZoneNodes
	ptrs := make([]*Node, count)
	for i := range ptrs {
		h, n := a.alloc()
		n.key = int64(i)
		ptrs[i] = n
		if a.node(h) != n {
			t.Fatalf("node(%d) moved immediately", h)
		}
	}
	for i, p := range ptrs {
		if a.node(handle(i+1)) != p {
			t.Fatalf("node %d relocated after growth", i+1)
		}
		if p.key != int64(i) {
			t.Fatalf("node %d lost its contents", i+1)
		}
	}
}

func TestArena_GeometricZones(t *testing.T) {
	var a Arena
	for i := 0; i < minZoneNodes+1; i++ {
		a.alloc()
	}
	if len(a.zones) != 2 {
		t.Fatalf("expected 2 zones after overflowing the first, got %d", len(a.zones))
	}
	if c := cap(a.zones[1].nodes); c != 2*minZoneNodes {
		t.Errorf("second zone capacity = %d, want %d", c, 2*minZoneNodes)
	}
}

func TestArena_Reset(t *testing.T) {
	var a Arena
	for i := 0; i < 3*minZoneNodes; i++ {
		a.alloc()
	}
	zones := len(a.zones)
	a.Reset()
	if a.Len() != 0 {
		t.Fatalf("Len() after Reset = %d", a.Len())
	}
	if len(a.zones) != zones {
		t.Errorf("Reset dropped zone capacity: %d zones, had %d", len(a.zones), zones)
	}

	// Handles restart and retained zones are refilled in order.
	h, n := a.alloc()
	if h != 1 {
		t.Fatalf("first handle after Reset = %d", h)
	}
	if a.node(1) != n {
		t.Error("node(1) does not resolve after Reset")
	}
}

func TestArenaPool(t *testing.T) {
	var pool ArenaPool
	a := pool.Get()
	a.alloc()
	pool.Put(a)

	b := pool.Get()
	if b.Len() != 0 {
		t.Errorf("pooled arena not reset: Len() = %d", b.Len())
	}
}
