package report

import (
	"fmt"
	"io"
	"strings"
	"subuk/numango/numa"

	"github.com/dustin/go-humanize"
)

func WriteClassification(w io.Writer, c numa.Classification) error {
	if _, err := fmt.Fprintf(w, "Classification: %s\n", c.Verdict); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Explanation:"); err != nil {
		return err
	}
	for _, explanation := range c.Explanations {
		if _, err := fmt.Fprintln(w, explanation); err != nil {
			return err
		}
	}
	return nil
}

func WriteTopology(w io.Writer, name string, t numa.Topology) error {
	ew := &errWriter{w: w}
	ew.printf("Results for %s:\n", name)
	ew.printf("  Total nodes info: %s\n", t.TotalNodesInfo)
	ew.printf("  Total nodes: %d\n", t.NodeCount)
	ew.printf("  Node information:\n")
	for _, id := range t.Nodes() {
		mem, exists := t.Memory(id)
		if !exists {
			ew.printf("    Node %d: cpus = %d, mem_size = N/A MB, mem_free = N/A MB\n", id, t.CpusPerNode[id])
			continue
		}
		ew.printf("    Node %d: cpus = %d, mem_size = %d MB (%s), mem_free = %d MB (%s)\n",
			id, t.CpusPerNode[id],
			mem.SizeMB, humanize.BigIBytes(mem.Size().BigBytes()),
			mem.FreeMB, humanize.BigIBytes(mem.Free().BigBytes()),
		)
	}
	ew.printf("  Latency info:\n")
	for _, row := range t.Distances {
		ew.printf("     %s\n", strings.Join(row, " "))
	}
	return ew.err
}

func writeText(w io.Writer, analyses []*numa.Analysis) error {
	for _, analysis := range analyses {
		if err := WriteTopology(w, analysis.Document, analysis.Topology); err != nil {
			return err
		}
		if err := writeAnalysisMarkdown(w, analysis); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func writeAnalysisMarkdown(w io.Writer, analysis *numa.Analysis) error {
	ew := &errWriter{w: w}
	ew.printf("Markdown table for %s:\n", analysis.Document)
	ew.printf("%s\n", Markdown(analysis.Topology))
	if ew.err != nil {
		return ew.err
	}
	if analysis.Failed() {
		ew.printf("Skipped: %s\n", analysis.Err)
		return ew.err
	}
	return WriteClassification(w, analysis.Classification)
}

func writeMarkdown(w io.Writer, analyses []*numa.Analysis) error {
	for _, analysis := range analyses {
		if err := writeAnalysisMarkdown(w, analysis); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
