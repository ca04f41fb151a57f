package scores

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const maxBodyBytes = 4 << 10

// Handler serves the score endpoints.
type Handler struct {
	board  Board
	logger *log.Logger
}

// NewHandler serves board. A nil logger uses the package default.
func NewHandler(board Board, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{board: board, logger: logger}
}

// Register adds the routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /scores", h.submit)
	mux.HandleFunc("GET /scores", h.get)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
}

type lookupResponse struct {
	Exists bool   `json:"exists"`
	Entry  *Entry `json:"entry"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var sub Submission
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := h.board.Submit(r.Context(), sub)
	switch {
	case errors.Is(err, ErrProfileRequired):
		writeJSON(w, http.StatusConflict, map[string]bool{"requiresProfile": true})
	case errors.Is(err, ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.logger.Error("submit score", "id", sub.ID, "err", err, "request_id", RequestID(r))
		writeError(w, http.StatusInternalServerError, "internal error")
	case res.Created:
		writeJSON(w, http.StatusCreated, res.Entry)
	default:
		writeJSON(w, http.StatusOK, res.Entry)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("id") {
		h.lookup(w, r, q.Get("id"))
		return
	}

	limit := DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	entries, err := h.board.List(r.Context(), ClampLimit(limit))
	if err != nil {
		h.logger.Error("list scores", "err", err, "request_id", RequestID(r))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, id string) {
	e, err := h.board.Lookup(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusOK, lookupResponse{})
	case errors.Is(err, ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.logger.Error("lookup score", "id", id, "err", err, "request_id", RequestID(r))
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, lookupResponse{Exists: true, Entry: &e})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

const requestIDHeader = "X-Request-Id"

// RequestID returns the id assigned by RequestLogger.
func RequestID(r *http.Request) string {
	return r.Header.Get(requestIDHeader)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags each request with an id and logs it on completion.
func RequestLogger(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", id,
		)
	})
}
