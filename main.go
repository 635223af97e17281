package main

import (
	"fmt"
	"os"
	"subuk/numango/bootstrap"
	"subuk/numango/report"
	"subuk/numango/util"

	"github.com/akamensky/argparse"
)

const defaultConfigFilename = "numango.conf"

func main() {
	parser := argparse.NewParser("numango", "NUMA topology balance checker")
	configFilename := parser.String("c", "config", &argparse.Options{
		Default: util.GetenvDefault("NUMANGO_CONFIG", defaultConfigFilename),
		Help:    "Configuration file path",
	})

	analyzeCmd := parser.NewCommand("analyze", "Classify numactl --hardware outputs from files or folders")
	analyzePaths := analyzeCmd.List("p", "path", &argparse.Options{
		Required: true,
		Help:     "File or folder to analyze, may be repeated",
	})
	analyzeFormat := analyzeCmd.Selector("f", "format", report.AllFormatsStrings(), &argparse.Options{
		Help: "Report format",
	})
	analyzeOutput := analyzeCmd.String("o", "output", &argparse.Options{
		Help: "Write report to file instead of stdout",
	})
	analyzeStrict := analyzeCmd.Flag("s", "strict", &argparse.Options{
		Help: "Exit with code 2 when any document is imbalanced",
	})
	analyzeRecursive := analyzeCmd.Flag("r", "recursive", &argparse.Options{
		Help: "Descend into subfolders",
	})

	hostCmd := parser.NewCommand("host", "Classify the NUMA topology of a libvirt host")
	hostUri := hostCmd.String("u", "uri", &argparse.Options{
		Help: "Libvirt connection uri, overrides configuration",
	})
	hostFormat := hostCmd.Selector("f", "format", report.AllFormatsStrings(), &argparse.Options{
		Help: "Report format",
	})

	serveCmd := parser.NewCommand("serve", "Run HTTP analysis server")
	genpwCmd := parser.NewCommand("genpw", "Generate bcrypt password hash for web users")

	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(bootstrap.ExitError)
	}

	switch {
	case genpwCmd.Happened():
		os.Exit(bootstrap.GenPassword())
	case analyzeCmd.Happened():
		cfg := bootstrap.LoadConfig(*configFilename, *configFilename == defaultConfigFilename)
		os.Exit(bootstrap.Analyze(cfg, bootstrap.AnalyzeParams{
			Paths:     *analyzePaths,
			Format:    *analyzeFormat,
			Output:    *analyzeOutput,
			Strict:    *analyzeStrict,
			Recursive: *analyzeRecursive,
		}))
	case hostCmd.Happened():
		cfg := bootstrap.LoadConfig(*configFilename, *configFilename == defaultConfigFilename)
		os.Exit(bootstrap.Host(cfg, bootstrap.HostParams{
			Uri:    *hostUri,
			Format: *hostFormat,
		}))
	case serveCmd.Happened():
		cfg := bootstrap.LoadConfig(*configFilename, *configFilename == defaultConfigFilename)
		bootstrap.Web(cfg)
	}
}
