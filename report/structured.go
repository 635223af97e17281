package report

import (
	"encoding/json"
	"io"
	"subuk/numango/numa"

	"gopkg.in/yaml.v2"
)

type NodeView struct {
	Id           int    `json:"id" yaml:"id"`
	Cpus         int    `json:"cpus" yaml:"cpus"`
	MemorySizeMB uint64 `json:"memory_size_mb" yaml:"memory_size_mb"`
	MemoryFreeMB uint64 `json:"memory_free_mb" yaml:"memory_free_mb"`
	HasMemory    bool   `json:"has_memory" yaml:"has_memory"`
}

type ConditionView struct {
	Number    int    `json:"number" yaml:"number"`
	Holds     bool   `json:"holds" yaml:"holds"`
	Min       uint64 `json:"min" yaml:"min"`
	Max       uint64 `json:"max" yaml:"max"`
	Violating []int  `json:"violating_nodes" yaml:"violating_nodes"`
}

type AnalysisView struct {
	Id             string          `json:"id" yaml:"id"`
	Document       string          `json:"document" yaml:"document"`
	TotalNodesInfo string          `json:"total_nodes_info" yaml:"total_nodes_info"`
	TotalNodes     int             `json:"total_nodes" yaml:"total_nodes"`
	Nodes          []NodeView      `json:"nodes" yaml:"nodes"`
	Distances      [][]string      `json:"distances" yaml:"distances"`
	Verdict        string          `json:"verdict,omitempty" yaml:"verdict,omitempty"`
	Explanations   []string        `json:"explanations,omitempty" yaml:"explanations,omitempty"`
	Conditions     []ConditionView `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Error          string          `json:"error,omitempty" yaml:"error,omitempty"`
}

func NewAnalysisView(analysis *numa.Analysis) AnalysisView {
	t := analysis.Topology
	view := AnalysisView{
		Id:             analysis.Id,
		Document:       analysis.Document,
		TotalNodesInfo: t.TotalNodesInfo,
		TotalNodes:     t.NodeCount,
		Nodes:          []NodeView{},
		Distances:      t.Distances,
	}
	if view.Distances == nil {
		view.Distances = [][]string{}
	}
	for _, id := range t.Nodes() {
		node := NodeView{Id: id, Cpus: t.CpusPerNode[id]}
		if mem, exists := t.Memory(id); exists {
			node.HasMemory = true
			node.MemorySizeMB = mem.SizeMB
			node.MemoryFreeMB = mem.FreeMB
		}
		view.Nodes = append(view.Nodes, node)
	}
	if analysis.Failed() {
		view.Error = analysis.Err.Error()
		return view
	}
	view.Verdict = analysis.Classification.Verdict.String()
	view.Explanations = analysis.Classification.Explanations
	for _, condition := range analysis.Classification.Conditions {
		view.Conditions = append(view.Conditions, ConditionView{
			Number:    condition.Number,
			Holds:     condition.Holds,
			Min:       condition.Min,
			Max:       condition.Max,
			Violating: condition.Violating,
		})
	}
	return view
}

func NewAnalysisViews(analyses []*numa.Analysis) []AnalysisView {
	views := []AnalysisView{}
	for _, analysis := range analyses {
		views = append(views, NewAnalysisView(analysis))
	}
	return views
}

func writeJson(w io.Writer, analyses []*numa.Analysis) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewAnalysisViews(analyses))
}

func writeYaml(w io.Writer, analyses []*numa.Analysis) error {
	content, err := yaml.Marshal(NewAnalysisViews(analyses))
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}
