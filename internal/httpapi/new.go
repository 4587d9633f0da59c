package httpapi

import (
	"net/http"

	"github.com/jd3600/sonar/internal/archive"
	"github.com/jd3600/sonar/internal/logger"
	"github.com/jd3600/sonar/internal/template"
	"github.com/jd3600/sonar/internal/types"
)

// Deps are the collaborators of the API. Archive and Dashboard are optional.
type Deps struct {
	Collector  Collector
	Records    Records
	Journal    Journal
	Archive    archive.Archive
	Assemblers map[types.MediaKind]template.Assembler
	// Dashboard is a directory of static files served at /.
	Dashboard string
}

type Server struct {
	deps   Deps
	logger logger.Logger
	mux    *http.ServeMux
}

// New builds the API and its routes.
func New(deps Deps, log logger.Logger) *Server {
	s := &Server{deps: deps, logger: log, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/data", s.handleData)
	s.mux.HandleFunc("GET /api/records", s.handleRecords)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("POST /api/collect", s.handleCollect)
	s.mux.HandleFunc("POST /api/extract", s.handleExtract)
	s.mux.HandleFunc("GET /api/speakers", s.handleSpeakers)
	if s.deps.Dashboard != "" {
		s.mux.Handle("GET /", http.FileServer(http.Dir(s.deps.Dashboard)))
	}
}

// Handler returns the routes wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return s.withRequestLog(s.mux)
}
