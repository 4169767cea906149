package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jlab-tracking/treesearch/pkg/cache"
	"github.com/jlab-tracking/treesearch/pkg/errors"
	"github.com/jlab-tracking/treesearch/pkg/patterntree"
	"github.com/jlab-tracking/treesearch/pkg/serialize"
)

// Server holds the shared, read-only state the HTTP handlers need: the
// cache backend trees are looked up from, and a logger. Trees themselves
// are loaded per request and are safe to share read-only across
// concurrent requests once loaded.
type Server struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRouter builds the chi router serving POST /trees/{key}/match,
// GET /trees/{key}, and GET /healthz.
func (s *Server) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/trees/{key}", s.handleTreeInfo)
	r.Post("/trees/{key}/match", s.handleMatch)

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) loadTree(r *http.Request) (*patterntree.Tree, error) {
	key := chi.URLParam(r, "key")
	if err := errors.ValidatePath(key); err != nil {
		return nil, err
	}
	data, ok, err := s.Cache.Get(r.Context(), key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "load tree %s", key)
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no cached tree for key %s", key)
	}
	tree, err := serialize.ReadBytes(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFormat, err, "decode tree %s", key)
	}
	return tree, nil
}

func (s *Server) handleTreeInfo(w http.ResponseWriter, r *http.Request) {
	tree, err := s.loadTree(r)
	if err != nil {
		writeError(w, err)
		return
	}

	stats := tree.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"name":     tree.Name,
		"nLevels":  stats.NumLevels,
		"nPlanes":  tree.NPlanes,
		"patterns": stats.NumPatterns,
		"links":    stats.NumLinks,
		"maxDepth": stats.MaxDepth,
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var recoveredErr error
	defer func() {
		if recoveredErr != nil {
			writeError(w, recoveredErr)
		}
	}()
	defer errors.RecoverInvariant(&recoveredErr)

	tree, err := s.loadTree(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeParam, err, "decode match request"))
		return
	}

	resp := Run(r.Context(), tree, req)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeParam, errors.ErrCodeFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": errors.UserMessage(err)})
}
