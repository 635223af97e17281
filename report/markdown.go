package report

import (
	"fmt"
	"strings"
	"subuk/numango/numa"
)

const (
	markdownHeader    = "| Node | CPUs | Memory Size (MB) | Memory Free (MB) |"
	markdownSeparator = "|------|------|-----------------|-----------------|"
	notAvailable      = "N/A"
)

// Markdown renders one row per node in Topology.Nodes order. Nodes without
// a memory entry show N/A.
func Markdown(t numa.Topology) string {
	var b strings.Builder
	b.WriteString(markdownHeader + "\n")
	b.WriteString(markdownSeparator + "\n")
	for _, id := range t.Nodes() {
		size, free := notAvailable, notAvailable
		if mem, exists := t.Memory(id); exists {
			size = fmt.Sprintf("%d", mem.SizeMB)
			free = fmt.Sprintf("%d", mem.FreeMB)
		}
		fmt.Fprintf(&b, "| %d | %d | %s | %s |\n", id, t.CpusPerNode[id], size, free)
	}
	return b.String()
}
