package numa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topology(cpus map[int]int, sizes map[int]uint64) Topology {
	memory := map[int]NodeMemory{}
	for id, size := range sizes {
		memory[id] = NodeMemory{SizeMB: size}
	}
	return Topology{CpusPerNode: cpus, MemoryPerNode: memory}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		topology     Topology
		verdict      Verdict
		explanations []string
	}{
		{
			name:         "all conditions met",
			topology:     topology(map[int]int{0: 4, 1: 4}, map[int]uint64{0: 8000, 1: 8000}),
			verdict:      VerdictGood,
			explanations: []string{"All conditions are met, ensuring balanced NUMA allocation."},
		},
		{
			name:         "cpu boundary holds",
			topology:     topology(map[int]int{0: 4, 1: 2}, map[int]uint64{0: 8000, 1: 8000}),
			verdict:      VerdictGood,
			explanations: []string{AllConditionsMet},
		},
		{
			name:         "odd maximum is not truncated",
			topology:     topology(map[int]int{0: 1, 1: 2}, map[int]uint64{0: 3, 1: 5}),
			verdict:      VerdictGood,
			explanations: []string{AllConditionsMet},
		},
		{
			name:     "cpu imbalance",
			topology: topology(map[int]int{0: 1, 1: 4}, map[int]uint64{0: 8000, 1: 8000}),
			verdict:  VerdictBad,
			explanations: []string{
				"Condition 1 violated: Minimum CPUs in any node (1) is less than half of the maximum CPUs in any node (4). Violating nodes: [0].",
			},
		},
		{
			name:     "memory imbalance",
			topology: topology(map[int]int{0: 4, 1: 4}, map[int]uint64{0: 16000, 1: 7999}),
			verdict:  VerdictBad,
			explanations: []string{
				"Condition 2 violated: Minimum memory size in any node (7999 MB) is less than half of the maximum memory size in any node (16000 MB). Violating nodes: [1].",
			},
		},
		{
			name:     "all minimum nodes are reported",
			topology: topology(map[int]int{0: 1, 1: 1, 2: 4}, map[int]uint64{0: 100, 1: 100, 2: 100}),
			verdict:  VerdictBad,
			explanations: []string{
				"Condition 1 violated: Minimum CPUs in any node (1) is less than half of the maximum CPUs in any node (4). Violating nodes: [0, 1].",
			},
		},
		{
			name:     "cpu-less node with memory",
			topology: topology(map[int]int{0: 4, 1: 0}, map[int]uint64{0: 8000, 1: 8000}),
			verdict:  VerdictBad,
			explanations: []string{
				"Condition 1 violated: Minimum CPUs in any node (0) is less than half of the maximum CPUs in any node (4). Violating nodes: [1].",
				"Condition 3 violated: At least one node is assigned only memory or only CPUs. Violating nodes: [1].",
			},
		},
		{
			name:     "node missing from memory table",
			topology: topology(map[int]int{0: 4, 1: 4}, map[int]uint64{0: 8000}),
			verdict:  VerdictBad,
			explanations: []string{
				"Condition 3 violated: At least one node is assigned only memory or only CPUs. Violating nodes: [1].",
			},
		},
		{
			name:     "every condition violated in order",
			topology: topology(map[int]int{0: 4, 1: 4, 2: 0, 3: 2}, map[int]uint64{0: 8000, 1: 8000, 2: 4000, 3: 0}),
			verdict:  VerdictBad,
			explanations: []string{
				"Condition 1 violated: Minimum CPUs in any node (0) is less than half of the maximum CPUs in any node (4). Violating nodes: [2].",
				"Condition 2 violated: Minimum memory size in any node (0 MB) is less than half of the maximum memory size in any node (8000 MB). Violating nodes: [3].",
				"Condition 3 violated: At least one node is assigned only memory or only CPUs. Violating nodes: [2, 3].",
			},
		},
		{
			name:     "all zero",
			topology: topology(map[int]int{0: 0}, map[int]uint64{0: 0}),
			verdict:  VerdictBad,
			explanations: []string{
				"Condition 3 violated: At least one node is assigned only memory or only CPUs. Violating nodes: [0].",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.topology)
			require.NoError(t, err)
			assert.Equal(t, tt.verdict, got.Verdict)
			assert.Equal(t, tt.explanations, got.Explanations)
			assert.Len(t, got.Conditions, 3)
		})
	}
}

func TestClassifyConditionDetails(t *testing.T) {
	got, err := Classify(topology(map[int]int{0: 1, 1: 4}, map[int]uint64{0: 8000, 1: 2000}))
	require.NoError(t, err)
	assert.Equal(t, []ConditionResult{
		{Number: ConditionCpuBalance, Holds: false, Min: 1, Max: 4, Violating: []int{0}},
		{Number: ConditionMemoryBalance, Holds: false, Min: 2000, Max: 8000, Violating: []int{1}},
		{Number: ConditionNoSplitNodes, Holds: true},
	}, got.Conditions)
	assert.False(t, got.Good())
}

func TestClassifyFollowsDocumentOrder(t *testing.T) {
	got, err := Classify(Extract("node 3 cpus: 1\nnode 3 size: 10 MB\nnode 1 cpus: 1\nnode 1 size: 10 MB\nnode 2 cpus: 0 1 2 3 4 5 6 7\nnode 2 size: 10 MB\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Condition 1 violated: Minimum CPUs in any node (1) is less than half of the maximum CPUs in any node (8). Violating nodes: [3, 1].",
	}, got.Explanations)
}

func TestClassifyDegenerateInput(t *testing.T) {
	tests := []struct {
		name     string
		topology Topology
	}{
		{"empty", Topology{}},
		{"no memory", topology(map[int]int{0: 4}, nil)},
		{"no cpus", Topology{MemoryPerNode: map[int]NodeMemory{0: {SizeMB: 10}}}},
		{"extracted from blank text", Extract("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.topology)
			require.Error(t, err)
			var degenerate *DegenerateInputError
			assert.True(t, errors.As(err, &degenerate))
			assert.True(t, errors.Is(err, ErrDegenerateInput))
		})
	}
}

func TestClassifyExtractedOutput(t *testing.T) {
	got, err := Classify(Extract(fourNodeOutput))
	require.NoError(t, err)
	assert.Equal(t, VerdictBad, got.Verdict)
	assert.Len(t, got.Explanations, 3)
}

func TestVerdict(t *testing.T) {
	for _, verdict := range []Verdict{VerdictGood, VerdictBad} {
		assert.Equal(t, verdict, NewVerdict(verdict.String()))
		assert.Equal(t, verdict, NewVerdict(verdict.Short()))
	}
	assert.Equal(t, "Good NUMA allocation", VerdictGood.String())
	assert.Equal(t, "Bad NUMA allocation", VerdictBad.String())
	assert.Equal(t, VerdictUnknown, NewVerdict("excellent"))
}
