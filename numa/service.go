package numa

import (
	"errors"
	"fmt"
	"subuk/numango/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrHostNotConfigured      = errors.New("host topology source is not configured")
	ErrDocumentsNotConfigured = errors.New("document source is not configured")
)

type Analysis struct {
	Id             string
	Document       string
	Text           string
	Topology       Topology
	Classification Classification
	Err            error
}

func (a *Analysis) Failed() bool {
	return a.Err != nil
}

// Service runs documents through extraction and classification one at a
// time. Documents never share state, so a failed one does not stop the
// rest.
type Service struct {
	docs    DocumentRepository
	host    HostTopologyRepository
	epub    EventPublisher
	parsers map[DocumentKind]TopologyParser
	logger  zerolog.Logger
}

func NewService(docs DocumentRepository, host HostTopologyRepository, epub EventPublisher, logger zerolog.Logger) *Service {
	if epub == nil {
		epub = nopEventPublisher{}
	}
	return &Service{
		docs:    docs,
		host:    host,
		epub:    epub,
		logger:  logger,
		parsers: map[DocumentKind]TopologyParser{DocumentKindNumactl: NumactlParser},
	}
}

func (service *Service) RegisterParser(kind DocumentKind, parser TopologyParser) {
	service.parsers[kind] = parser
}

func (service *Service) AnalyzeText(name, text string) *Analysis {
	return service.analyze(name, text, Extract(text))
}

func (service *Service) AnalyzeTopology(name string, topology Topology) *Analysis {
	return service.analyze(name, "", topology)
}

// text is the source document, empty for topologies not read from text.
func (service *Service) analyze(name, text string, topology Topology) *Analysis {
	analysis := &Analysis{Id: uuid.New().String(), Document: name, Text: text, Topology: topology}
	classification, err := Classify(topology)
	if err != nil {
		service.logger.Warn().Err(err).Str("document", name).Msg("skipping document")
		analysis.Err = err
	} else {
		analysis.Classification = classification
		service.logger.Debug().
			Str("document", name).
			Str("verdict", classification.Verdict.Short()).
			Int("nodes", len(topology.CpusPerNode)).
			Msg("document classified")
	}
	service.publish(analysis)
	return analysis
}

func (service *Service) AnalyzeDocument(doc *Document) *Analysis {
	parser, exists := service.parsers[doc.Kind]
	if !exists {
		analysis := &Analysis{
			Id:       uuid.New().String(),
			Document: doc.Name,
			Text:     doc.Text,
			Err:      fmt.Errorf("no parser for %s documents", doc.Kind),
		}
		service.publish(analysis)
		return analysis
	}
	topology, err := parser.Parse(doc.Text)
	if err != nil {
		service.logger.Warn().Err(err).Str("document", doc.Name).Msg("cannot parse document")
		analysis := &Analysis{
			Id:       uuid.New().String(),
			Document: doc.Name,
			Text:     doc.Text,
			Err:      util.NewError(err, "cannot parse %s", doc.Name),
		}
		service.publish(analysis)
		return analysis
	}
	return service.analyze(doc.Name, doc.Text, topology)
}

func (service *Service) publish(analysis *Analysis) {
	if err := service.epub.Publish(NewEventAnalysisFinished(analysis)); err != nil {
		service.logger.Error().Err(err).Str("document", analysis.Document).Msg("event hook failed")
		if analysis.Err == nil {
			analysis.Err = util.NewError(err, "cannot publish analysis event")
		}
	}
}

func (service *Service) AnalyzeDocuments() ([]*Analysis, error) {
	if service.docs == nil {
		return nil, ErrDocumentsNotConfigured
	}
	docs, err := service.docs.List()
	if err != nil {
		return nil, util.NewError(err, "cannot list documents")
	}
	results := []*Analysis{}
	for _, doc := range docs {
		results = append(results, service.AnalyzeDocument(doc))
	}
	return results, nil
}

func (service *Service) AnalyzeNamedDocument(name string) (*Analysis, error) {
	if service.docs == nil {
		return nil, ErrDocumentsNotConfigured
	}
	doc, err := service.docs.Get(name)
	if err != nil {
		return nil, err
	}
	return service.AnalyzeDocument(doc), nil
}

func (service *Service) AnalyzeHost() (*Analysis, error) {
	if service.host == nil {
		return nil, ErrHostNotConfigured
	}
	topology, err := service.host.Get()
	if err != nil {
		return nil, util.NewError(err, "cannot fetch host topology")
	}
	return service.AnalyzeTopology("host", topology), nil
}
