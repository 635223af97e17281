package report

import (
	"fmt"
	"io"
	"subuk/numango/numa"
)

func Write(w io.Writer, format Format, analyses []*numa.Analysis) error {
	switch format {
	default:
		return fmt.Errorf("unsupported report format '%s'", format)
	case FormatText:
		return writeText(w, analyses)
	case FormatMarkdown:
		return writeMarkdown(w, analyses)
	case FormatJson:
		return writeJson(w, analyses)
	case FormatYaml:
		return writeYaml(w, analyses)
	case FormatCsv:
		return writeCsv(w, analyses)
	case FormatDataset:
		return writeDataset(w, analyses)
	}
}
