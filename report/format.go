package report

type Format int

const (
	FormatUnknown  = Format(0)
	FormatText     = Format(1)
	FormatMarkdown = Format(2)
	FormatJson     = Format(3)
	FormatYaml     = Format(4)
	FormatCsv      = Format(5)
	FormatDataset  = Format(6)
)

var AllFormats = []Format{
	FormatText,
	FormatMarkdown,
	FormatJson,
	FormatYaml,
	FormatCsv,
	FormatDataset,
}

func AllFormatsStrings() []string {
	r := []string{}
	for _, format := range AllFormats {
		r = append(r, format.String())
	}
	return r
}

func (format Format) String() string {
	switch format {
	default:
		return "unknown"
	case FormatText:
		return "text"
	case FormatMarkdown:
		return "markdown"
	case FormatJson:
		return "json"
	case FormatYaml:
		return "yaml"
	case FormatCsv:
		return "csv"
	case FormatDataset:
		return "dataset"
	}
}

func (format Format) ContentType() string {
	switch format {
	default:
		return "text/plain; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatJson:
		return "application/json; charset=utf-8"
	case FormatYaml, FormatDataset:
		return "application/x-yaml; charset=utf-8"
	case FormatCsv:
		return "text/csv; charset=utf-8"
	}
}

func NewFormat(input string) Format {
	switch input {
	default:
		return FormatUnknown
	case "text", "txt":
		return FormatText
	case "markdown", "md":
		return FormatMarkdown
	case "json":
		return FormatJson
	case "yaml", "yml":
		return FormatYaml
	case "csv":
		return FormatCsv
	case "dataset":
		return FormatDataset
	}
}
