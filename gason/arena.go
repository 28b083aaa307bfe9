package gason

import "sync"

// handle is a 1-based arena node index. 0 means "no node"; container
// values store the handle of their chain head in the 47-bit payload.
type handle uint64

// Node is one link of a container chain: an array element or an object
// member. Nodes are arena-owned and never freed individually.
type Node struct {
	next  *Node
	key   int64 // buffer offset of the member key, -1 for array elements
	value Value
}

// Next returns the following node of the chain, nil at the end.
func (n *Node) Next() *Node { return n.next }

// Value returns the node's value.
func (n *Node) Value() Value { return n.value }

// Zone sizing: geometric growth amortizes the per-zone bookkeeping, the
// cap keeps a pathological document from doubling forever.
const (
	minZoneNodes = 64
	maxZoneNodes = 16384
)

// zone is one fixed-capacity block of nodes filled by bump allocation.
// Handles base+1 through base+cap live here. The backing array never
// relocates, so node addresses stay stable for the arena's lifetime.
type zone struct {
	base  handle
	nodes []Node
}

// Arena is a growable sequence of zones supporting only forward
// allocation and bulk release. It backs every node the parser creates.
//
// An Arena must be used by at most one in-flight parse at a time; it is
// not safe for concurrent allocation. The zero Arena is ready to use.
type Arena struct {
	zones []zone
	cur   int // index of the zone currently being filled
	n     int // nodes handed out since the last Reset
}

// alloc carves one node from the current zone, opening a new zone when
// the current one is full. There is no way to return a node.
func (a *Arena) alloc() (handle, *Node) {
	if len(a.zones) == 0 || len(a.zones[a.cur].nodes) == cap(a.zones[a.cur].nodes) {
		a.grow()
	}
	z := &a.zones[a.cur]
	z.nodes = append(z.nodes, Node{key: -1})
	a.n++
	return handle(a.n), &z.nodes[len(z.nodes)-1]
}

func (a *Arena) grow() {
	// Reuse a zone retained by Reset before allocating a new one.
	if len(a.zones) > 0 && a.cur+1 < len(a.zones) {
		a.cur++
		z := &a.zones[a.cur]
		z.base = handle(a.n)
		z.nodes = z.nodes[:0]
		return
	}
	size := minZoneNodes
	if len(a.zones) > 0 {
		size = cap(a.zones[len(a.zones)-1].nodes) * 2
		if size > maxZoneNodes {
			size = maxZoneNodes
		}
	}
	a.zones = append(a.zones, zone{base: handle(a.n), nodes: make([]Node, 0, size)})
	a.cur = len(a.zones) - 1
}

// node resolves a handle. Chains are usually confined to the newest
// zones, so the walk starts there.
func (a *Arena) node(h handle) *Node {
	for i := a.cur; i >= 0; i-- {
		z := &a.zones[i]
		if h > z.base {
			return &z.nodes[h-z.base-1]
		}
	}
	panic("gason: node handle outside arena")
}

// Len returns the number of nodes allocated since the last Reset.
func (a *Arena) Len() int { return a.n }

// Reset releases every node at once while retaining zone capacity for
// reuse. All nodes previously handed out, and every Document built from
// this arena, become invalid. This is the only release path.
func (a *Arena) Reset() {
	for i := range a.zones {
		a.zones[i].nodes = a.zones[i].nodes[:0]
		a.zones[i].base = 0
	}
	a.cur = 0
	a.n = 0
}

// ArenaPool lets concurrent goroutines reuse arenas without sharing
// them. Get either returns a reset arena from the pool or a fresh one.
type ArenaPool struct {
	p sync.Pool
}

// Get returns an empty Arena from the pool.
func (ap *ArenaPool) Get() *Arena {
	if a, ok := ap.p.Get().(*Arena); ok {
		return a
	}
	return &Arena{}
}

// Put resets a and returns it to the pool. The caller must not retain
// any Document or Node built from a.
func (ap *ArenaPool) Put(a *Arena) {
	a.Reset()
	ap.p.Put(a)
}
