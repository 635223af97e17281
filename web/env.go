package web

import (
	"fmt"
	"net/http"
	neturl "net/url"
	"subuk/numango/config"
	"subuk/numango/numa"
	"subuk/numango/util"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

var AppVersion string

type Environ struct {
	render      *render.Render
	logger      zerolog.Logger
	router      *mux.Router
	service     *numa.Service
	metrics     *Metrics
	cfg         *config.WebConfig
	maxBodySize int64
}

func New(cfg *config.Config, logger zerolog.Logger, service *numa.Service, registry *prometheus.Registry) http.Handler {
	env := &Environ{cfg: &cfg.Web}
	router := mux.NewRouter()
	renderer := render.New(render.Options{
		IsDevelopment: cfg.Web.Debug,
		IndentJSON:    true,
	})

	env.render = renderer
	env.logger = logger
	env.router = router
	env.service = service
	env.metrics = NewMetrics(registry)
	env.maxBodySize = int64(cfg.Input.MaxFileSize)

	router.HandleFunc("/healthz", env.Health).Name("health")
	router.HandleFunc("/metrics", env.authenticated(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP)).Name("metrics")

	router.HandleFunc("/api/analyze/", env.authenticated(env.Analyze)).Methods("POST").Name("analyze")
	router.HandleFunc("/api/documents/", env.authenticated(env.DocumentList)).Methods("GET").Name("document-list")
	router.HandleFunc("/api/documents/{name:.+}", env.authenticated(env.DocumentDetail)).Methods("GET").Name("document-detail")
	router.HandleFunc("/api/host/", env.authenticated(env.HostInfo)).Methods("GET").Name("host")

	return env
}

func (env *Environ) error(rw http.ResponseWriter, req *http.Request, err error, message string, status int) {
	if err != nil {
		env.logger.Warn().Int("Status", status).Err(err).Str("path", req.URL.Path).Msg("request error occured")
	}
	data := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}{Message: message}
	if err != nil {
		data.Error = err.Error()
	}
	if renderErr := env.render.JSON(rw, status, data); renderErr != nil {
		http.Error(rw, "Error: "+message, status)
	}
}

func (e *Environ) url(name string, params ...string) *neturl.URL {
	route := e.router.Get(name)
	if route == nil {
		panic(fmt.Errorf("route named %s not found", name))
	}
	url, err := route.URL(params...)
	if err != nil {
		panic(util.NewError(err, "resolving failed with params %s", params))
	}
	return url
}

func (e *Environ) vars(request *http.Request) map[string]string {
	return mux.Vars(request)
}

func (env *Environ) ServeHTTP(w http.ResponseWriter, request *http.Request) {
	env.router.ServeHTTP(w, request)
}
