package report

import (
	"bytes"
	"io"
	"subuk/numango/numa"

	"gopkg.in/yaml.v2"
)

const Instruction = `You are AI assistant to support the Non-uniform memory access(NUMA) allocation analysis. To ensure good performance of NUMA placement should satisfy the following 3 conditions.
1. min(CPUs) >= (max(CPUs) / 2 )
2. min(Memory Size) >= (max(Memory Size) / 2)
3. No node should be assigned only memory or only cpus
When a numactl command execution result is provided, you must analyse, reason and deduct if the above conditions are met.`

// DatasetRecord is one instruction-tuning sample: the instruction, the raw
// tool output as context and the node table plus classification as answer.
type DatasetRecord struct {
	Document    string `yaml:"document"`
	Instruction string `yaml:"instruction"`
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
}

func NewDatasetRecord(analysis *numa.Analysis) (DatasetRecord, error) {
	var output bytes.Buffer
	output.WriteString(Markdown(analysis.Topology))
	output.WriteString("\n")
	if err := WriteClassification(&output, analysis.Classification); err != nil {
		return DatasetRecord{}, err
	}
	return DatasetRecord{
		Document:    analysis.Document,
		Instruction: Instruction,
		Input:       analysis.Text,
		Output:      output.String(),
	}, nil
}

// Failed analyses carry no answer and are left out.
func writeDataset(w io.Writer, analyses []*numa.Analysis) error {
	records := []DatasetRecord{}
	for _, analysis := range analyses {
		if analysis.Failed() {
			continue
		}
		record, err := NewDatasetRecord(analysis)
		if err != nil {
			return err
		}
		records = append(records, record)
	}
	content, err := yaml.Marshal(records)
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}
