// Package routes exposes the test run engine over HTTP for the client UI.
package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/istekapp/istek-sub000/pkg/models"
	"github.com/istekapp/istek-sub000/pkg/platform/yaml/collectiondb"
	"github.com/istekapp/istek-sub000/pkg/service/testrun"
)

type TestRun struct {
	logger *zap.Logger
	svc    testrun.Service
}

func New(r chi.Router, svc testrun.Service, logger *zap.Logger) {
	h := &TestRun{
		logger: logger,
		svc:    svc,
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Route("/testrun", func(r chi.Router) {
			r.Post("/run", h.Run)
			r.Post("/stream", h.Stream)
		})
		r.Route("/collections/{collectionID}", func(r chi.Router) {
			r.Post("/run", h.RunCollection)
			r.Post("/stream", h.StreamCollection)
		})
	})
}

func (h *TestRun) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, "OK")
}

func (h *TestRun) Run(w http.ResponseWriter, r *http.Request) {
	var req models.TestRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Error decoding request", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Run(r.Context(), &req)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

func (h *TestRun) RunCollection(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCollectionRun(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.RunCollection(r.Context(), req)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

func (h *TestRun) Stream(w http.ResponseWriter, r *http.Request) {
	var req models.TestRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Error decoding request", http.StatusBadRequest)
		return
	}
	events, err := h.svc.RunStream(r.Context(), &req)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.streamEvents(w, r, events)
}

func (h *TestRun) StreamCollection(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCollectionRun(w, r)
	if !ok {
		return
	}
	events, err := h.svc.RunCollectionStream(r.Context(), req)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.streamEvents(w, r, events)
}

func (h *TestRun) decodeCollectionRun(w http.ResponseWriter, r *http.Request) (*models.CollectionRunRequest, bool) {
	var req models.CollectionRunRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Error decoding request", http.StatusBadRequest)
			return nil, false
		}
	}
	req.CollectionID = chi.URLParam(r, "collectionID")
	if folder := r.URL.Query().Get("folderId"); folder != "" {
		req.FolderID = folder
	}
	return &req, true
}

// streamEvents keeps the connection alive and flushes each run event as a
// JSON document the moment it arrives, so the UI sees results
// incrementally. A disconnecting consumer cancels the request context,
// which tears the run down.
func (h *TestRun) streamEvents(w http.ResponseWriter, r *http.Request, events <-chan models.RunEvent) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Transfer-Encoding", "chunked")
	w.Header().Set("Cache-Control", "no-cache")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}

	for event := range events {
		select {
		case <-r.Context().Done():
			h.logger.Debug("client closed the connection mid-run")
			return
		default:
			render.JSON(w, r, event)
			flusher.Flush()
		}
	}
}

func (h *TestRun) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, collectiondb.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, testrun.ErrNoRequests):
		status = http.StatusBadRequest
	}
	h.logger.Debug("test run request rejected", zap.Int("status", status), zap.Error(err))
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}
