package numa

import "sort"

const TotalNodesNotFound = "Not found"

type NodeMemory struct {
	SizeMB uint64
	FreeMB uint64
}

type Topology struct {
	TotalNodesInfo string
	NodeCount      int
	CpusPerNode    map[int]int
	MemoryPerNode  map[int]NodeMemory
	Distances      [][]string

	// Iteration order of CpusPerNode and MemoryPerNode keys, first
	// appearance in the source text. May be nil for hand-built values.
	NodeOrder   []int
	MemoryOrder []int
}

func (t Topology) Nodes() []int {
	return orderedKeys(t.NodeOrder, t.CpusPerNode)
}

func (t Topology) MemoryNodes() []int {
	return orderedKeys(t.MemoryOrder, t.MemoryPerNode)
}

func (t Topology) Memory(node int) (NodeMemory, bool) {
	mem, exists := t.MemoryPerNode[node]
	return mem, exists
}

// orderedKeys returns order when it lists exactly the keys of m, sorted
// keys otherwise.
func orderedKeys[V any](order []int, m map[int]V) []int {
	if len(order) != len(m) {
		return sortedKeys(m)
	}
	seen := make(map[int]bool, len(order))
	for _, id := range order {
		if _, exists := m[id]; !exists || seen[id] {
			return sortedKeys(m)
		}
		seen[id] = true
	}
	return append([]int(nil), order...)
}

func sortedKeys[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

type topologyBuilder struct {
	totalNodesInfo string
	nodeCount      int
	cpus           map[int]int
	memory         map[int]NodeMemory
	distances      [][]string
	nodeOrder      []int
	memoryOrder    []int
}

func newTopologyBuilder() *topologyBuilder {
	return &topologyBuilder{
		totalNodesInfo: TotalNodesNotFound,
		cpus:           map[int]int{},
		memory:         map[int]NodeMemory{},
		distances:      [][]string{},
	}
}

func (b *topologyBuilder) seedNode(id int) {
	if _, exists := b.cpus[id]; exists {
		return
	}
	b.cpus[id] = 0
	b.nodeOrder = append(b.nodeOrder, id)
}

func (b *topologyBuilder) setCpus(id int, count int) {
	b.seedNode(id)
	b.cpus[id] = count
}

func (b *topologyBuilder) setMemorySize(id int, size uint64) {
	if _, exists := b.memory[id]; !exists {
		b.memoryOrder = append(b.memoryOrder, id)
	}
	b.memory[id] = NodeMemory{SizeMB: size}
}

func (b *topologyBuilder) setMemoryFree(id int, free uint64) {
	mem, exists := b.memory[id]
	if !exists {
		b.memoryOrder = append(b.memoryOrder, id)
	}
	mem.FreeMB = free
	b.memory[id] = mem
}

func (b *topologyBuilder) build() Topology {
	// Memory-only nodes still get a cpu entry.
	for _, id := range b.memoryOrder {
		b.seedNode(id)
	}
	return Topology{
		TotalNodesInfo: b.totalNodesInfo,
		NodeCount:      b.nodeCount,
		CpusPerNode:    b.cpus,
		MemoryPerNode:  b.memory,
		Distances:      b.distances,
		NodeOrder:      b.nodeOrder,
		MemoryOrder:    b.memoryOrder,
	}
}
