package numa

import (
	"fmt"
)

type Event interface {
	Name() string
	Plain() map[string]string
}

type EventPublisher interface {
	Publish(event Event) error
}

type nopEventPublisher struct{}

func (nopEventPublisher) Publish(event Event) error {
	return nil
}

type EventAnalysisFinished struct {
	analysis *Analysis
}

func NewEventAnalysisFinished(analysis *Analysis) *EventAnalysisFinished {
	return &EventAnalysisFinished{analysis: analysis}
}

func (e *EventAnalysisFinished) Name() string {
	if e.analysis.Failed() {
		return "analysis_failed"
	}
	if e.analysis.Classification.Good() {
		return "analysis_good"
	}
	return "analysis_bad"
}

func (e *EventAnalysisFinished) Plain() map[string]string {
	topology := e.analysis.Topology
	data := map[string]string{
		"event":             e.Name(),
		"report_id":         e.analysis.Id,
		"document":          e.analysis.Document,
		"total_nodes":       fmt.Sprintf("%d", topology.NodeCount),
		"node_count":        fmt.Sprintf("%d", len(topology.CpusPerNode)),
		"verdict":           e.analysis.Classification.Verdict.Short(),
		"explanation_count": fmt.Sprintf("%d", len(e.analysis.Classification.Explanations)),
	}
	if e.analysis.Err != nil {
		data["error"] = e.analysis.Err.Error()
	}
	for idx, explanation := range e.analysis.Classification.Explanations {
		data[fmt.Sprintf("explanation_%d", idx)] = explanation
	}
	for _, id := range topology.Nodes() {
		data[fmt.Sprintf("node_%d_cpus", id)] = fmt.Sprintf("%d", topology.CpusPerNode[id])
		if mem, exists := topology.Memory(id); exists {
			data[fmt.Sprintf("node_%d_memory_mib", id)] = fmt.Sprintf("%d", mem.SizeMB)
		}
	}
	return data
}
