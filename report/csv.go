package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"subuk/numango/numa"
)

var csvHeader = []string{"document", "report_id", "total_nodes_info", "total_nodes", "nodes", "verdict", "explanations", "error"}

// One row per document; explanations are joined with " | ".
func writeCsv(w io.Writer, analyses []*numa.Analysis) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, analysis := range analyses {
		row := []string{
			analysis.Document,
			analysis.Id,
			analysis.Topology.TotalNodesInfo,
			fmt.Sprintf("%d", analysis.Topology.NodeCount),
			fmt.Sprintf("%d", len(analysis.Topology.CpusPerNode)),
			"",
			"",
			"",
		}
		if analysis.Failed() {
			row[7] = analysis.Err.Error()
		} else {
			row[5] = analysis.Classification.Verdict.Short()
			row[6] = strings.Join(analysis.Classification.Explanations, " | ")
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
