package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssargent/yad/pkg/document"
	"github.com/ssargent/yad/pkg/store"
)

// Server holds the API server state
type Server struct {
	store   DocumentStore
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(store DocumentStore, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	respondOK(w, map[string]string{"status": "healthy"})
}

// handlePut stores a document under a name. The body is either the binary
// wire form (Content-Type application/x-yad) or the typed JSON view.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "Document name is required")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var doc *document.Document
	if sendsWire(r) {
		doc, err = document.Unmarshal(body)
	} else {
		doc, err = document.FromJSON(body)
	}
	if err != nil {
		s.metrics.RecordDocOperation("put", false, time.Since(start))
		respondError(w, http.StatusBadRequest, "Invalid document: "+err.Error())
		return
	}

	rev, err := s.store.Put(name, doc)
	if err != nil {
		s.metrics.RecordDocOperation("put", false, time.Since(start))
		respondError(w, http.StatusInternalServerError, "Failed to store document")
		return
	}

	s.metrics.RecordDocOperation("put", true, time.Since(start))
	respondOK(w, PutResponse{Name: name, Revision: rev})
}

// handleGet returns a document, either its head copy or, with ?revision=id,
// a historical write. The response is the typed JSON view unless the Accept
// header asks for the binary wire form.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")

	var (
		doc *document.Document
		err error
	)
	if rev := r.URL.Query().Get("revision"); rev != "" {
		doc, err = s.store.GetRevision(name, rev)
	} else {
		doc, err = s.store.Get(name)
	}
	if err != nil {
		s.metrics.RecordDocOperation("get", false, time.Since(start))
		if errors.Is(err, store.ErrDocumentNotFound) || errors.Is(err, store.ErrRevisionNotFound) {
			respondError(w, http.StatusNotFound, "Document not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to read document")
		return
	}

	if wantsWire(r) {
		raw, err := document.Marshal(doc)
		if err != nil {
			s.metrics.RecordDocOperation("get", false, time.Since(start))
			respondError(w, http.StatusInternalServerError, "Failed to serialize document")
			return
		}
		s.metrics.RecordDocOperation("get", true, time.Since(start))
		respondRaw(w, wireContentType, raw)
		return
	}

	js, err := document.ToJSON(doc)
	if err != nil {
		s.metrics.RecordDocOperation("get", false, time.Since(start))
		respondError(w, http.StatusInternalServerError, "Failed to render document")
		return
	}
	s.metrics.RecordDocOperation("get", true, time.Since(start))
	respondRaw(w, jsonContentType, js)
}

// handleDelete removes a document's head copy; its history is kept.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")

	if err := s.store.Delete(name); err != nil {
		s.metrics.RecordDocOperation("delete", false, time.Since(start))
		if errors.Is(err, store.ErrDocumentNotFound) {
			respondError(w, http.StatusNotFound, "Document not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	s.metrics.RecordDocOperation("delete", true, time.Since(start))
	respondOK(w, map[string]string{"name": name, "status": "deleted"})
}

// handleList returns the names of all stored documents.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	names, err := s.store.List()
	if err != nil {
		s.metrics.RecordDocOperation("list", false, time.Since(start))
		respondError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	s.metrics.RecordDocOperation("list", true, time.Since(start))
	s.metrics.UpdateDocCount(len(names))
	respondOK(w, map[string]interface{}{"documents": names, "count": len(names)})
}

// handleHistory returns the revision log of a document, oldest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")

	revs, err := s.store.History(name)
	if err != nil {
		s.metrics.RecordDocOperation("history", false, time.Since(start))
		respondError(w, http.StatusInternalServerError, "Failed to read history")
		return
	}

	s.metrics.RecordDocOperation("history", true, time.Since(start))
	respondOK(w, map[string]interface{}{"name": name, "revisions": revs})
}

// handleStats reports store-wide counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stats, err := s.store.Stats()
	if err != nil {
		s.metrics.RecordDocOperation("stats", false, time.Since(start))
		respondError(w, http.StatusInternalServerError, "Failed to read stats")
		return
	}

	s.metrics.RecordDocOperation("stats", true, time.Since(start))
	s.metrics.UpdateDocCount(stats.Documents)
	respondOK(w, stats)
}
