package bootstrap

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"subuk/numango/config"
	"subuk/numango/filesystem"
	"subuk/numango/libvirt"
	"subuk/numango/numa"
	"subuk/numango/report"
	"subuk/numango/util"
	"subuk/numango/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	ExitOk         = 0
	ExitError      = 1
	ExitImbalanced = 2
)

type AnalyzeParams struct {
	Paths     []string
	Format    string
	Output    string
	Strict    bool
	Recursive bool
}

type HostParams struct {
	Uri    string
	Format string
}

func LoadConfig(filename string, optional bool) *config.Config {
	cfg, err := config.Load(filename, optional)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(ExitError)
	}
	return cfg
}

func NewLogger(level string) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		logger.Warn().Str("level", level).Msg("unknown log level, using info")
		parsed = zerolog.InfoLevel
	}
	return logger.Level(parsed)
}

func newEventBroker(cfg *config.Config, logger zerolog.Logger) numa.EventPublisher {
	if len(cfg.Subscribes) == 0 {
		return nil
	}
	broker := filesystem.NewScriptedEventBroker(logger.With().Str("component", "event-broker").Logger())
	for _, sub := range cfg.Subscribes {
		broker.Subscribe(sub.Event, sub.Script, sub.Documents, sub.Mandatory)
	}
	return broker
}

func newDocumentRepository(cfg *config.Config, path string, logger zerolog.Logger) numa.DocumentRepository {
	return filesystem.NewDocumentRepository(path, filesystem.DocumentRepositoryOptions{
		Extensions:  cfg.Input.Extensions,
		Recursive:   cfg.Input.Recursive,
		MaxFileSize: uint64(cfg.Input.MaxFileSize),
	}, logger.With().Str("component", "documents").Str("root", path).Logger())
}

func resolveFormat(requested string, cfg *config.Config) (report.Format, error) {
	if requested == "" {
		requested = cfg.Report.Format
	}
	format := report.NewFormat(requested)
	if format == report.FormatUnknown {
		return format, fmt.Errorf("unknown report format '%s', expected one of %s", requested, strings.Join(report.AllFormatsStrings(), ", "))
	}
	return format, nil
}

func openOutput(filename string) (io.WriteCloser, error) {
	if filename == "" || filename == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	file, err := os.Create(util.ExpandHomeDir(filename))
	if err != nil {
		return nil, util.NewError(err, "cannot create output file")
	}
	return file, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// Analyze returns the process exit code.
func Analyze(cfg *config.Config, params AnalyzeParams) int {
	logger := NewLogger(cfg.LogLevel)
	if params.Recursive {
		cfg.Input.Recursive = true
	}
	if params.Output == "" {
		params.Output = cfg.Report.Output
	}
	params.Strict = params.Strict || cfg.Report.Strict

	format, err := resolveFormat(params.Format, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("invalid arguments")
		return ExitError
	}
	epub := newEventBroker(cfg, logger)

	analyses := []*numa.Analysis{}
	for _, path := range params.Paths {
		docs := newDocumentRepository(cfg, path, logger)
		service := numa.NewService(docs, nil, epub, logger.With().Str("component", "analyzer").Logger())
		service.RegisterParser(numa.DocumentKindCapabilities, libvirt.CapabilitiesParser)
		results, err := service.AnalyzeDocuments()
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("cannot analyze path")
			return ExitError
		}
		if len(results) == 0 {
			logger.Warn().Str("path", path).Strs("extensions", cfg.Input.Extensions).Msg("no documents found")
		}
		analyses = append(analyses, results...)
	}
	return writeReport(logger, format, params.Output, params.Strict, analyses)
}

func writeReport(logger zerolog.Logger, format report.Format, output string, strict bool, analyses []*numa.Analysis) int {
	out, err := openOutput(output)
	if err != nil {
		logger.Error().Err(err).Msg("cannot open output")
		return ExitError
	}
	defer out.Close()
	if err := report.Write(out, format, analyses); err != nil {
		logger.Error().Err(err).Msg("cannot write report")
		return ExitError
	}

	good, bad, failed := 0, 0, 0
	for _, analysis := range analyses {
		switch {
		case analysis.Failed():
			failed++
		case analysis.Classification.Good():
			good++
		default:
			bad++
		}
	}
	logger.Info().Int("good", good).Int("bad", bad).Int("failed", failed).Msg("analysis finished")
	if strict && bad > 0 {
		return ExitImbalanced
	}
	return ExitOk
}

func Host(cfg *config.Config, params HostParams) int {
	logger := NewLogger(cfg.LogLevel)
	if params.Uri == "" {
		params.Uri = cfg.Libvirt.Uri
	}
	if params.Uri == "" {
		logger.Error().Msg("no libvirt uri configured")
		return ExitError
	}
	format, err := resolveFormat(params.Format, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("invalid arguments")
		return ExitError
	}

	pool := libvirt.NewConnectionPool(params.Uri, logger.With().Str("component", "libvirt-connection-pool").Logger())
	defer pool.Close()
	host := libvirt.NewTopologyRepository(pool, logger.With().Str("component", "libvirt-topology").Logger())
	service := numa.NewService(nil, host, newEventBroker(cfg, logger), logger.With().Str("component", "analyzer").Logger())
	analysis, err := service.AnalyzeHost()
	if err != nil {
		logger.Error().Err(err).Str("uri", params.Uri).Msg("cannot analyze host")
		return ExitError
	}
	return writeReport(logger, format, cfg.Report.Output, cfg.Report.Strict, []*numa.Analysis{analysis})
}

func Web(cfg *config.Config) {
	logger := NewLogger(cfg.LogLevel)

	var docs numa.DocumentRepository
	if cfg.Web.Documents != "" {
		docs = newDocumentRepository(cfg, cfg.Web.Documents, logger)
	}
	var host numa.HostTopologyRepository
	if cfg.Libvirt.Uri != "" {
		pool := libvirt.NewConnectionPool(cfg.Libvirt.Uri, logger.With().Str("component", "libvirt-connection-pool").Logger())
		defer pool.Close()
		host = libvirt.NewTopologyRepository(pool, logger.With().Str("component", "libvirt-topology").Logger())
	}
	service := numa.NewService(docs, host, newEventBroker(cfg, logger), logger.With().Str("component", "analyzer").Logger())
	service.RegisterParser(numa.DocumentKindCapabilities, libvirt.CapabilitiesParser)

	registry := prometheus.NewRegistry()
	webenv := web.New(cfg, logger.With().Str("component", "web").Logger(), service, registry)
	server := http.Server{
		Addr:    cfg.Web.Listen,
		Handler: webenv,
	}
	logger.Info().Str("addr", server.Addr).Msg("starting server")
	if err := server.ListenAndServe(); err != nil {
		logger.Error().Err(err).Msg("serve failed")
		os.Exit(ExitError)
	}
}
