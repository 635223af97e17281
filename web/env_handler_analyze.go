package web

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"net/http"
	"subuk/numango/numa"
	"subuk/numango/report"
)

func (env *Environ) Health(rw http.ResponseWriter, req *http.Request) {
	env.render.JSON(rw, http.StatusOK, map[string]string{"status": "ok", "version": AppVersion})
}

func (env *Environ) requestFormat(req *http.Request) (report.Format, error) {
	raw := req.URL.Query().Get("format")
	if raw == "" {
		return report.FormatJson, nil
	}
	format := report.NewFormat(raw)
	if format == report.FormatUnknown {
		return format, fmt.Errorf("unknown format '%s', expected one of %v", raw, report.AllFormatsStrings())
	}
	return format, nil
}

func (env *Environ) respond(rw http.ResponseWriter, req *http.Request, format report.Format, analyses []*numa.Analysis, single bool) {
	if format == report.FormatJson {
		views := report.NewAnalysisViews(analyses)
		if single && len(views) == 1 {
			env.render.JSON(rw, http.StatusOK, views[0])
			return
		}
		env.render.JSON(rw, http.StatusOK, views)
		return
	}
	var buf bytes.Buffer
	if err := report.Write(&buf, format, analyses); err != nil {
		env.error(rw, req, err, "failed to render report", http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", format.ContentType())
	env.render.Data(rw, http.StatusOK, buf.Bytes())
}

func (env *Environ) Analyze(rw http.ResponseWriter, req *http.Request) {
	format, err := env.requestFormat(req)
	if err != nil {
		env.error(rw, req, err, "invalid format", http.StatusBadRequest)
		return
	}
	body := req.Body
	if env.maxBodySize > 0 {
		body = http.MaxBytesReader(rw, req.Body, env.maxBodySize)
	}
	content, err := ioutil.ReadAll(body)
	if err != nil {
		env.error(rw, req, err, "cannot read request body", http.StatusRequestEntityTooLarge)
		return
	}
	name := req.URL.Query().Get("name")
	if name == "" {
		name = "request"
	}
	doc := &numa.Document{Name: name, Kind: numa.NewDocumentKind(req.URL.Query().Get("kind")), Text: string(content)}
	if doc.Kind == numa.DocumentKindUnknown {
		doc.Kind = numa.DocumentKindNumactl
	}
	analysis := env.service.AnalyzeDocument(doc)
	env.metrics.Observe("request", analysis)
	env.respond(rw, req, format, []*numa.Analysis{analysis}, true)
}

type documentListItem struct {
	report.AnalysisView
	Url string `json:"url"`
}

func (env *Environ) DocumentList(rw http.ResponseWriter, req *http.Request) {
	format, err := env.requestFormat(req)
	if err != nil {
		env.error(rw, req, err, "invalid format", http.StatusBadRequest)
		return
	}
	analyses, err := env.service.AnalyzeDocuments()
	if err == numa.ErrDocumentsNotConfigured {
		env.error(rw, req, err, "no document folder configured", http.StatusNotFound)
		return
	}
	if err != nil {
		env.error(rw, req, err, "cannot analyze documents", http.StatusInternalServerError)
		return
	}
	for _, analysis := range analyses {
		env.metrics.Observe("folder", analysis)
	}
	if format != report.FormatJson {
		env.respond(rw, req, format, analyses, false)
		return
	}
	items := []documentListItem{}
	for _, analysis := range analyses {
		items = append(items, documentListItem{
			AnalysisView: report.NewAnalysisView(analysis),
			Url:          env.url("document-detail", "name", analysis.Document).String(),
		})
	}
	env.render.JSON(rw, http.StatusOK, items)
}

func (env *Environ) DocumentDetail(rw http.ResponseWriter, req *http.Request) {
	format, err := env.requestFormat(req)
	if err != nil {
		env.error(rw, req, err, "invalid format", http.StatusBadRequest)
		return
	}
	name := env.vars(req)["name"]
	analysis, err := env.service.AnalyzeNamedDocument(name)
	switch err {
	case nil:
	case numa.ErrDocumentNotFound, numa.ErrDocumentsNotConfigured:
		env.error(rw, req, err, "document not found", http.StatusNotFound)
		return
	default:
		env.error(rw, req, err, "cannot analyze document", http.StatusInternalServerError)
		return
	}
	env.metrics.Observe("folder", analysis)
	env.respond(rw, req, format, []*numa.Analysis{analysis}, true)
}
