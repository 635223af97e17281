package libvirt

import (
	"fmt"
	"strings"
	"subuk/numango/numa"
)

// Libvirt reports NUMA cell memory in KiB unless a unit says otherwise.
func ComputeSizeFromLibvirtSize(unit string, value uint64) numa.Size {
	if unit == "" {
		return numa.NewSize(value, numa.SizeUnitK)
	}
	return numa.NewSize(value, numa.NewSizeUnit(unit))
}

// FormatIdRanges renders sorted ids the way numactl does: 0-3,6,8-9.
func FormatIdRanges(ids []int) string {
	parts := []string{}
	for i := 0; i < len(ids); {
		j := i
		for j+1 < len(ids) && ids[j+1] == ids[j]+1 {
			j++
		}
		if j == i {
			parts = append(parts, fmt.Sprintf("%d", ids[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", ids[i], ids[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}
