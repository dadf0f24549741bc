package inspect

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/opal-lang/opal/runtime/object"
)

// Server serves read-only registry queries over HTTP
type Server struct {
	registry *object.Registry
	log      *zap.Logger
}

// NewServer creates an inspection server over the given registry
func NewServer(registry *object.Registry, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{registry: registry, log: log}
}

// Routes builds the chi router for the inspection API
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/types", s.handleTypes)
	r.Route("/types/{name}", func(r chi.Router) {
		r.Get("/", s.handleType)
		r.Get("/mro", s.handleMRO)
		r.Get("/fields", s.handleFields)
		r.Get("/methods", s.handleMethods)
	})
	return r
}

// ListenAndServe runs the inspection API on addr with conservative
// timeouts until the server fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("inspection server listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	types := s.registry.Types()
	out := make([]TypeSummary, len(types))
	for i, t := range types {
		out[i] = summarize(t)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleType(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, detail(t))
}

func (s *Server) handleMRO(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"mro": t.MRONames()})
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookup(w, r)
	if !ok {
		return
	}
	localOnly := r.URL.Query().Get("local") == "true"
	s.writeJSON(w, http.StatusOK, fieldViews(t.Fields(localOnly)))
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookup(w, r)
	if !ok {
		return
	}
	localOnly := r.URL.Query().Get("local") == "true"
	s.writeJSON(w, http.StatusOK, map[string][]MethodView{
		"public":  methodViews(t.PublicMethods(localOnly)),
		"private": methodViews(t.PrivateMethods()),
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*object.TypeMetaobject, bool) {
	name := chi.URLParam(r, "name")
	t, ok := s.registry.Lookup(name)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "type not found: " + name})
		return nil, false
	}
	return t, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("failed to encode response", zap.Error(err))
	}
}
