package numa

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fourNodeOutput = `available: 4 nodes (0-3)
node 0 cpus: 0 1 2 3
node 0 size: 8000 MB
node 0 free: 7000 MB
node 1 cpus: 4 5 6 7
node 1 size: 8000 MB
node 1 free: 6500 MB
node 2 cpus:
node 2 size: 4000 MB
node 2 free: 3900 MB
node 3 cpus: 8 9
node 3 size: 0 MB
node 3 free: 0 MB
node distances:
node   0   1   2   3
  0:  10  20  20  20
  1:  20  10  20  20
  2:  20  20  10  20
  3:  20  20  20  10
`

func TestExtractFourNodes(t *testing.T) {
	got := Extract(fourNodeOutput)
	want := Topology{
		TotalNodesInfo: "4 nodes (0-3)",
		NodeCount:      1,
		CpusPerNode:    map[int]int{0: 4, 1: 4, 2: 0, 3: 2},
		MemoryPerNode: map[int]NodeMemory{
			0: {SizeMB: 8000, FreeMB: 7000},
			1: {SizeMB: 8000, FreeMB: 6500},
			2: {SizeMB: 4000, FreeMB: 3900},
			3: {SizeMB: 0, FreeMB: 0},
		},
		Distances: [][]string{
			{"node", "0", "1", "2", "3"},
			{"0:", "10", "20", "20", "20"},
			{"1:", "20", "10", "20", "20"},
			{"2:", "20", "20", "10", "20"},
			{"3:", "20", "20", "20", "10"},
		},
		NodeOrder:   []int{0, 1, 2, 3},
		MemoryOrder: []int{0, 1, 2, 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	first := Extract(fourNodeOutput)
	second := Extract(fourNodeOutput)
	assert.True(t, reflect.DeepEqual(first, second))
}

func TestExtractNodeCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"comma list", "available: 2 nodes (0,1)\n", 2},
		{"range counts as one entry", "available: 4 nodes (0-3)\n", 1},
		{"mixed", "available: 3 nodes (0-1,3)\n", 2},
		{"absent", "node 0 cpus: 0 1\n", 0},
		{"unparsable list", "available: 2 nodes (zero,one)\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.text).NodeCount; got != tt.want {
				t.Errorf("Extract().NodeCount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractSummaryNotFound(t *testing.T) {
	got := Extract("node 0 cpus: 0 1\n")
	assert.Equal(t, TotalNodesNotFound, got.TotalNodesInfo)
	assert.Equal(t, "Not found", got.TotalNodesInfo)
}

func TestExtractSummaryTrimsCarriageReturn(t *testing.T) {
	got := Extract("available: 2 nodes (0,1)\r\nnode 0 cpus: 0\r\n")
	assert.Equal(t, "2 nodes (0,1)", got.TotalNodesInfo)
	assert.Equal(t, 2, got.NodeCount)
}

func TestExtractEmptyText(t *testing.T) {
	got := Extract("")
	assert.Equal(t, TotalNodesNotFound, got.TotalNodesInfo)
	assert.Equal(t, 0, got.NodeCount)
	assert.Empty(t, got.CpusPerNode)
	assert.Empty(t, got.MemoryPerNode)
	assert.NotNil(t, got.Distances)
	assert.Empty(t, got.Distances)
}

func TestExtractCpus(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		want      map[int]int
		wantOrder []int
	}{
		{
			name:      "whitespace only list",
			text:      "node 0 cpus:    \nnode 1 cpus: 1 2\n",
			want:      map[int]int{0: 0, 1: 2},
			wantOrder: []int{0, 1},
		},
		{
			name:      "last match wins",
			text:      "node 0 cpus: 1 2 3\nnode 0 cpus: 4\n",
			want:      map[int]int{0: 1},
			wantOrder: []int{0},
		},
		{
			name:      "memory only node is defaulted",
			text:      "node 1 cpus: 0 1\nnode 5 size: 100 MB\n",
			want:      map[int]int{1: 2, 5: 0},
			wantOrder: []int{1, 5},
		},
		{
			name:      "free only node is defaulted",
			text:      "node 2 free: 10 MB\n",
			want:      map[int]int{2: 0},
			wantOrder: []int{2},
		},
		{
			name:      "document order preserved",
			text:      "node 3 cpus: 1\nnode 1 cpus: 2 3\nnode 2 cpus: 4\n",
			want:      map[int]int{3: 1, 1: 2, 2: 1},
			wantOrder: []int{3, 1, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !reflect.DeepEqual(got.CpusPerNode, tt.want) {
				t.Errorf("Extract().CpusPerNode = %v, want %v", got.CpusPerNode, tt.want)
			}
			if !reflect.DeepEqual(got.Nodes(), tt.wantOrder) {
				t.Errorf("Extract().Nodes() = %v, want %v", got.Nodes(), tt.wantOrder)
			}
		})
	}
}

func TestExtractMemory(t *testing.T) {
	text := strings.Join([]string{
		"node 1 free: 20 MB",
		"node 0 size: 4096 MB",
		"node 1 size: 2048 MB",
		"node 2 free: 5 MB",
		"node 3 size: 99999999999999999999999 MB",
	}, "\n")
	got := Extract(text)
	want := map[int]NodeMemory{
		0: {SizeMB: 4096, FreeMB: 0},
		1: {SizeMB: 2048, FreeMB: 20},
		2: {SizeMB: 0, FreeMB: 5},
	}
	assert.Equal(t, want, got.MemoryPerNode)
	assert.Equal(t, []int{0, 1, 2}, got.MemoryNodes())
	// The overflowing size line still mentions node 3.
	assert.Contains(t, got.CpusPerNode, 3)
}

func TestExtractDistances(t *testing.T) {
	tests := []struct {
		name string
		text string
		want [][]string
	}{
		{
			name: "absent",
			text: "node 0 cpus: 0\n",
			want: [][]string{},
		},
		{
			name: "stops at blank line",
			text: "node distances:\nnode 0 1\n  0: 10 21\n  1: 21 10\n\ntrailing 1 2\n",
			want: [][]string{{"node", "0", "1"}, {"0:", "10", "21"}, {"1:", "21", "10"}},
		},
		{
			name: "stops at whitespace only line",
			text: "node distances:\n  0: 10\n   \t\n  1: 10\n",
			want: [][]string{{"0:", "10"}},
		},
		{
			name: "runs to end of text",
			text: "node distances:\n  0: 10",
			want: [][]string{{"0:", "10"}},
		},
		{
			name: "header at end of text",
			text: "node distances:",
			want: [][]string{},
		},
		{
			name: "crlf line endings",
			text: "node distances:\r\n  0: 10 20\r\n  1: 20 10\r\n\r\n",
			want: [][]string{{"0:", "10", "20"}, {"1:", "20", "10"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text).Distances
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract().Distances = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractDistanceLabelsAreNodes(t *testing.T) {
	got := Extract("node 0 cpus: 0 1\nnode distances:\nnode   0   1\n  0:  10  20\n  1:  20  10\n")
	assert.Equal(t, map[int]int{0: 2, 1: 0}, got.CpusPerNode)
	assert.Equal(t, []int{0, 1}, got.Nodes())
}

func TestExtractDefaultFillInvariant(t *testing.T) {
	got := Extract("node 7 free: 12 MB\n" + fourNodeOutput)
	for _, id := range got.MemoryNodes() {
		assert.Contains(t, got.CpusPerNode, id)
	}
	for _, row := range got.Distances[1:] {
		id, ok := parseNodeId(strings.TrimSuffix(row[0], ":"))
		require.True(t, ok)
		assert.Contains(t, got.CpusPerNode, id)
	}
}

func TestExtractReader(t *testing.T) {
	got, err := ExtractReader(strings.NewReader(fourNodeOutput))
	require.NoError(t, err)
	assert.Equal(t, Extract(fourNodeOutput), got)
}
