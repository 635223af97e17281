package numa

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentKind int

const (
	DocumentKindUnknown      = DocumentKind(0)
	DocumentKindNumactl      = DocumentKind(1)
	DocumentKindCapabilities = DocumentKind(2)
)

func (kind DocumentKind) String() string {
	switch kind {
	default:
		return "unknown"
	case DocumentKindNumactl:
		return "numactl"
	case DocumentKindCapabilities:
		return "capabilities"
	}
}

func NewDocumentKind(input string) DocumentKind {
	switch input {
	default:
		return DocumentKindUnknown
	case "numactl":
		return DocumentKindNumactl
	case "capabilities":
		return DocumentKindCapabilities
	}
}

// DocumentKindFromFilename treats saved `virsh capabilities` dumps (.xml) as
// capabilities and everything else as numactl text.
func DocumentKindFromFilename(filename string) DocumentKind {
	if strings.EqualFold(filepath.Ext(filename), ".xml") {
		return DocumentKindCapabilities
	}
	return DocumentKindNumactl
}

type Document struct {
	Name string
	Path string
	Kind DocumentKind
	Text string
}

type DocumentRepository interface {
	List() ([]*Document, error)
	Get(name string) (*Document, error)
}

type TopologyParser interface {
	Parse(text string) (Topology, error)
}

type TopologyParserFunc func(text string) (Topology, error)

func (f TopologyParserFunc) Parse(text string) (Topology, error) {
	return f(text)
}

var NumactlParser = TopologyParserFunc(func(text string) (Topology, error) {
	return Extract(text), nil
})

type HostTopologyRepository interface {
	Get() (Topology, error)
}
