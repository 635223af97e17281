package web

import (
	"net/http"
	"subuk/numango/numa"
)

func (env *Environ) HostInfo(rw http.ResponseWriter, req *http.Request) {
	format, err := env.requestFormat(req)
	if err != nil {
		env.error(rw, req, err, "invalid format", http.StatusBadRequest)
		return
	}
	analysis, err := env.service.AnalyzeHost()
	if err == numa.ErrHostNotConfigured {
		env.error(rw, req, err, "libvirt is not configured", http.StatusNotFound)
		return
	}
	if err != nil {
		env.error(rw, req, err, "hostinfo failed", http.StatusInternalServerError)
		return
	}
	env.metrics.Observe("host", analysis)
	env.respond(rw, req, format, []*numa.Analysis{analysis}, true)
}
