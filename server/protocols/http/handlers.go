package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/server/catalog"
	"github.com/gear6io/mallard/server/dataset"
	"github.com/go-chi/chi/v5"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// writeJSON marshals v and writes it with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to marshal JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// writeFailure renders a coded error as the error envelope. Errors
// without a code are wrapped so the envelope always carries one.
func (s *Server) writeFailure(w http.ResponseWriter, status int, err error) {
	coded := errors.AsError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Str("code", coded.Code.String()).Err(err).Msg("Request failed")
	}

	s.writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    coded.Code.String(),
		Message: coded.Message,
	}})
}

// handleRoot lists the service identity and every registered data route.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	keys := s.catalog.Keys()
	endpoints := make([]string, 0, len(keys))
	for _, key := range keys {
		endpoints = append(endpoints, "/data/"+key)
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Mallard",
		"version":     Version,
		"instance_id": s.instanceID,
		"data_path":   s.catalog.DataPath(),
		"endpoints":   endpoints,
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleResource serves every /data/{resource} route: data pages for
// files, listings for plain folders, and schema pages when the key
// carries the schema suffix.
func (s *Server) handleResource(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "resource")

	if item, ok := s.catalog.Resolve(key); ok {
		if item.Kind == catalog.KindPlainFolder {
			s.serveListing(w, r, item)
			return
		}
		s.serveData(w, r, item)
		return
	}

	if s.config.SchemaEndpointsEnabled() && strings.HasSuffix(key, catalog.SchemaSuffix) {
		base := strings.TrimSuffix(key, catalog.SchemaSuffix)
		if item, ok := s.catalog.Resolve(base); ok && item.Kind.HasSchema() {
			s.serveSchema(w, r, item)
			return
		}
	}

	s.writeFailure(w, http.StatusNotFound, errors.Newf(ErrUnknownResource, "no resource registered for %q", key))
}

func (s *Server) serveData(w http.ResponseWriter, r *http.Request, item catalog.Item) {
	req, err := parsePageRequest(r)
	if err != nil {
		s.writeFailure(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.service.Page(r.Context(), item, req)
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) serveSchema(w http.ResponseWriter, r *http.Request, item catalog.Item) {
	req, err := parsePageRequest(r)
	if err != nil {
		s.writeFailure(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.service.Schema(r.Context(), item, req)
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// serveListing ignores pagination parameters; directory listings are
// always complete.
func (s *Server) serveListing(w http.ResponseWriter, r *http.Request, item catalog.Item) {
	result, err := s.service.List(s.catalog.DataPath(), item)
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// parsePageRequest validates page and page_size before anything reaches
// the dataset core. Missing parameters fall back to the defaults.
func parsePageRequest(r *http.Request) (dataset.PageRequest, error) {
	req := dataset.DefaultPageRequest()

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < dataset.DefaultPage {
			return req, errors.Newf(ErrInvalidParam, "page must be an integer >= 1, got %q", raw)
		}
		req.Page = page
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < dataset.MinPageSize || size > dataset.MaxPageSize {
			return req, errors.Newf(ErrInvalidParam, "page_size must be an integer between %d and %d, got %q",
				dataset.MinPageSize, dataset.MaxPageSize, raw)
		}
		req.PageSize = size
	}

	return req, nil
}
