package numa

import (
	"fmt"
	"strconv"
	"strings"
)

const AllConditionsMet = "All conditions are met, ensuring balanced NUMA allocation."

const (
	ConditionCpuBalance    = 1
	ConditionMemoryBalance = 2
	ConditionNoSplitNodes  = 3
)

type ConditionResult struct {
	Number    int
	Holds     bool
	Min       uint64
	Max       uint64
	Violating []int
}

type Classification struct {
	Verdict      Verdict
	Explanations []string
	Conditions   []ConditionResult
}

func (c Classification) Good() bool {
	return c.Verdict == VerdictGood
}

func Classify(t Topology) (Classification, error) {
	if len(t.CpusPerNode) == 0 || len(t.MemoryPerNode) == 0 {
		return Classification{}, &DegenerateInputError{
			CpuNodes:    len(t.CpusPerNode),
			MemoryNodes: len(t.MemoryPerNode),
		}
	}

	nodes := t.Nodes()
	cpuCounts := make([]uint64, len(nodes))
	for i, id := range nodes {
		cpuCounts[i] = uint64(t.CpusPerNode[id])
	}
	memNodes := t.MemoryNodes()
	memSizes := make([]uint64, len(memNodes))
	for i, id := range memNodes {
		memSizes[i] = t.MemoryPerNode[id].SizeMB
	}

	conditions := []ConditionResult{
		balanceCondition(ConditionCpuBalance, nodes, cpuCounts),
		balanceCondition(ConditionMemoryBalance, memNodes, memSizes),
		splitNodesCondition(t, nodes),
	}

	result := Classification{Verdict: VerdictGood, Explanations: []string{}, Conditions: conditions}
	for _, condition := range conditions {
		if condition.Holds {
			continue
		}
		result.Verdict = VerdictBad
		result.Explanations = append(result.Explanations, explain(condition))
	}
	if result.Verdict == VerdictGood {
		result.Explanations = append(result.Explanations, AllConditionsMet)
	}
	return result, nil
}

// min >= max/2 compared as reals, so 1 vs 2 holds.
func balanceCondition(number int, nodes []int, values []uint64) ConditionResult {
	result := ConditionResult{Number: number, Min: values[0], Max: values[0]}
	for _, value := range values[1:] {
		if value < result.Min {
			result.Min = value
		}
		if value > result.Max {
			result.Max = value
		}
	}
	result.Holds = float64(result.Min) >= float64(result.Max)/2
	if result.Holds {
		return result
	}
	for i, id := range nodes {
		if values[i] == result.Min {
			result.Violating = append(result.Violating, id)
		}
	}
	return result
}

func splitNodesCondition(t Topology, nodes []int) ConditionResult {
	result := ConditionResult{Number: ConditionNoSplitNodes, Holds: true}
	for _, id := range nodes {
		// Missing memory entry reads as zero size.
		if t.CpusPerNode[id] == 0 || t.MemoryPerNode[id].SizeMB == 0 {
			result.Violating = append(result.Violating, id)
		}
	}
	result.Holds = len(result.Violating) == 0
	return result
}

func explain(condition ConditionResult) string {
	violating := formatNodeList(condition.Violating)
	switch condition.Number {
	case ConditionCpuBalance:
		return fmt.Sprintf("Condition 1 violated: Minimum CPUs in any node (%d) is less than half of the maximum CPUs in any node (%d). Violating nodes: %s.", condition.Min, condition.Max, violating)
	case ConditionMemoryBalance:
		return fmt.Sprintf("Condition 2 violated: Minimum memory size in any node (%d MB) is less than half of the maximum memory size in any node (%d MB). Violating nodes: %s.", condition.Min, condition.Max, violating)
	default:
		return fmt.Sprintf("Condition 3 violated: At least one node is assigned only memory or only CPUs. Violating nodes: %s.", violating)
	}
}

func formatNodeList(nodes []int) string {
	parts := make([]string, 0, len(nodes))
	for _, id := range nodes {
		parts = append(parts, strconv.Itoa(id))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
