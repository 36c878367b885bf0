package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inamate/drawtools/internal/document"
	"github.com/inamate/drawtools/internal/engine"
	"github.com/inamate/drawtools/internal/render"
	"github.com/inamate/drawtools/internal/session"
	"github.com/inamate/drawtools/internal/store"
	"github.com/inamate/drawtools/internal/typeid"
)

// exportMargin is the blank border around rendered exports.
const exportMargin = 10

// Handler serves the session, drawing and export endpoints.
type Handler struct {
	hub      *Hub
	issuer   *session.Issuer
	store    store.Store
	origins  []string
	gatherer prometheus.Gatherer
}

func NewHandler(hub *Hub, issuer *session.Issuer, st store.Store, origins []string, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		hub:      hub,
		issuer:   issuer,
		store:    st,
		origins:  origins,
		gatherer: gatherer,
	}
}

// Routes registers every endpoint on r.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})).Methods("GET")

	r.HandleFunc("/sessions", h.CreateSession).Methods("POST")
	r.HandleFunc("/drawings/{id}", h.GetDrawing).Methods("GET")
	r.HandleFunc("/drawings/{id}/summary", h.GetSummary).Methods("GET")

	s := r.PathPrefix("/sessions/{id}").Subrouter()
	s.Use(h.issuer.Require)
	s.HandleFunc("/ws", h.Connect)
	s.HandleFunc("/state", h.GetState).Methods("GET")
	s.HandleFunc("/save", h.SaveSession).Methods("POST")
	s.HandleFunc("/render.png", h.RenderPNG).Methods("GET")
	s.HandleFunc("/render.pdf", h.RenderPDF).Methods("GET")
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createSessionRequest struct {
	DrawingID string `json:"drawingId"`
}

type createSessionResponse struct {
	SessionID string `json:"sessionId"`
	DrawingID string `json:"drawingId"`
	Token     string `json:"token"`
}

// CreateSession handles POST /sessions. An empty body starts a new drawing.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}
	if req.DrawingID != "" {
		if err := typeid.Validate(req.DrawingID, typeid.PrefixDrawing); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	s, err := h.hub.Create(r.Context(), req.DrawingID)
	if err != nil {
		handleStoreError(w, err)
		return
	}

	token, err := h.issuer.Issue(s.ID)
	if err != nil {
		slog.Error("issue token failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: s.ID,
		DrawingID: s.DrawingID,
		Token:     token,
	})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, ok := h.hub.Get(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return nil, false
	}
	return s, true
}

// Connect handles GET /sessions/{id}/ws.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.hub, conn, s, uuid.New().String())
	if !h.hub.Register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	client.Serve(r.Context())
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.State())
}

// SaveSession handles POST /sessions/{id}/save.
func (h *Handler) SaveSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	snap, err := h.hub.Save(r.Context(), s)
	if err != nil {
		handleStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// RenderPNG handles GET /sessions/{id}/render.png. The optional maxSide
// query parameter scales the image down.
func (h *Handler) RenderPNG(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	maxSide := 0
	if v := r.URL.Query().Get("maxSide"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "maxSide must be a positive integer"})
			return
		}
		maxSide = n
	}

	start := time.Now()
	var buf bytes.Buffer
	err := s.WritePNG(&buf, exportMargin, maxSide)
	h.metrics().renderSeconds.WithLabelValues("png").Observe(time.Since(start).Seconds())
	switch {
	case errors.Is(err, render.ErrTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "drawing too large to render, pass maxSide"})
		return
	case err != nil:
		slog.Error("render png", "error", err, "session", s.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}

	setExportHeaders(w, "image/png", "png")
	w.Write(buf.Bytes())
}

// RenderPDF handles GET /sessions/{id}/render.pdf.
func (h *Handler) RenderPDF(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	start := time.Now()
	setExportHeaders(w, "application/pdf", "pdf")
	if err := s.WritePDF(w, exportMargin); err != nil {
		slog.Error("render pdf", "error", err, "session", s.ID)
	}
	h.metrics().renderSeconds.WithLabelValues("pdf").Observe(time.Since(start).Seconds())
}

func (h *Handler) metrics() *Metrics {
	return h.hub.metrics
}

func setExportHeaders(w http.ResponseWriter, contentType, ext string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.%s"`, typeid.NewExportID(), ext))
}

// GetDrawing handles GET /drawings/{id}: the latest snapshot. With
// ?format=yaml the document is returned as YAML instead.
func (h *Handler) GetDrawing(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Latest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		handleStoreError(w, err)
		return
	}

	if r.URL.Query().Get("format") != string(document.FormatYAML) {
		writeJSON(w, http.StatusOK, snap)
		return
	}

	rec, err := document.Decode(snap.Document, document.FormatJSON)
	if err == nil {
		var out []byte
		if out, err = document.Encode(rec, document.FormatYAML); err == nil {
			w.Header().Set("Content-Type", "application/yaml")
			w.WriteHeader(http.StatusOK)
			w.Write(out)
			return
		}
	}
	slog.Error("encode drawing yaml", "error", err, "drawing", snap.DrawingID)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

// GetSummary handles GET /drawings/{id}/summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Latest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		handleStoreError(w, err)
		return
	}

	rec, err := document.Decode(snap.Document, document.FormatJSON)
	if err != nil {
		slog.Error("decode drawing", "error", err, "drawing", snap.DrawingID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	scene, err := engine.ReadScene(rec)
	if err != nil {
		slog.Error("read drawing", "error", err, "drawing", snap.DrawingID)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, document.Summarize(scene))
}

func handleStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "drawing not found"})
	case errors.Is(err, store.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid drawing id"})
	default:
		slog.Error("store request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
