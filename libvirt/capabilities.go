package libvirt

import (
	"fmt"
	"sort"
	"subuk/numango/numa"
	"subuk/numango/util"

	libvirtxml "github.com/libvirt/libvirt-go-xml"
)

// ParseCapabilities converts a `virsh capabilities` document into a
// topology. Free memory is not part of capabilities and stays zero.
func ParseCapabilities(capsXml string) (numa.Topology, error) {
	capsConfig := &libvirtxml.Caps{}
	if err := capsConfig.Unmarshal(capsXml); err != nil {
		return numa.Topology{}, util.NewError(err, "cannot parse capabilities")
	}
	return TopologyFromCapabilities(capsConfig), nil
}

var CapabilitiesParser = numa.TopologyParserFunc(ParseCapabilities)

func TopologyFromCapabilities(capsConfig *libvirtxml.Caps) numa.Topology {
	topology := numa.Topology{
		TotalNodesInfo: numa.TotalNodesNotFound,
		CpusPerNode:    map[int]int{},
		MemoryPerNode:  map[int]numa.NodeMemory{},
		Distances:      [][]string{},
	}
	if capsConfig.Host.NUMA == nil || capsConfig.Host.NUMA.Cells == nil {
		return topology
	}
	cells := capsConfig.Host.NUMA.Cells.Cells
	for _, cell := range cells {
		if _, exists := topology.CpusPerNode[cell.ID]; !exists {
			topology.NodeOrder = append(topology.NodeOrder, cell.ID)
		}
		cpus := 0
		if cell.CPUS != nil {
			cpus = len(cell.CPUS.CPUs)
		}
		topology.CpusPerNode[cell.ID] = cpus
		if cell.Memory != nil {
			if _, exists := topology.MemoryPerNode[cell.ID]; !exists {
				topology.MemoryOrder = append(topology.MemoryOrder, cell.ID)
			}
			size := ComputeSizeFromLibvirtSize(cell.Memory.Unit, cell.Memory.Size)
			topology.MemoryPerNode[cell.ID] = numa.NodeMemory{SizeMB: size.M()}
		}
	}
	if len(topology.NodeOrder) == 0 {
		return topology
	}

	ids := append([]int(nil), topology.NodeOrder...)
	sort.Ints(ids)
	topology.NodeCount = len(ids)
	topology.TotalNodesInfo = fmt.Sprintf("%d nodes (%s)", len(ids), FormatIdRanges(ids))
	topology.Distances = distancesFromCells(cells)
	return topology
}

// Rows mirror numactl: a "node" header row then "<id>:" rows of raw values.
func distancesFromCells(cells []libvirtxml.CapsHostNUMACell) [][]string {
	header := []string{"node"}
	rows := [][]string{}
	for _, cell := range cells {
		if cell.Distances == nil || len(cell.Distances.Siblings) == 0 {
			continue
		}
		row := []string{fmt.Sprintf("%d:", cell.ID)}
		for _, sibling := range cell.Distances.Siblings {
			if len(rows) == 0 {
				header = append(header, fmt.Sprintf("%d", sibling.ID))
			}
			row = append(row, fmt.Sprintf("%d", sibling.Value))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return [][]string{}
	}
	return append([][]string{header}, rows...)
}
