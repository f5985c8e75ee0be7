package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nhlcentral/stats-api/internal/logic"
)

// Health check endpoint
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

func (h *Handler) rawJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, body)
}

// fetchError maps adapter failures onto the response. Not-found is a valid
// empty result (404, empty body); anything else means the variant database
// let the request down and there is no retry.
func (h *Handler) fetchError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, logic.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if errors.Is(err, context.Canceled) {
		// Caller disconnected; nobody is reading the response.
		return
	}
	h.logger.Errorw("adapter fetch failed",
		"variant", h.adapter.Namespace(), "path", r.URL.Path, "error", err)
	h.errorResponse(w, http.StatusBadGateway, "upstream database unavailable")
}

// serveDirect runs an uncached fetch and serializes the result.
func (h *Handler) serveDirect(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context) (any, error)) {
	v, err := fetch(r.Context())
	if err != nil {
		h.fetchError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, v)
}

// serveCached is the cache-aside path: serve the cached body verbatim when
// fresh, otherwise fetch, serialize once, write back with the TTL and
// respond with the same bytes.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, fetch func(ctx context.Context) (any, error)) {
	ctx := r.Context()

	if body, ok := h.cache.Get(ctx, key); ok {
		h.rawJSON(w, body)
		return
	}

	v, err := fetch(ctx)
	if err != nil {
		h.fetchError(w, r, err)
		return
	}

	payload, err := json.Marshal(v)
	if err != nil {
		h.logger.Errorw("marshal response failed", "key", key, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "serialization failed")
		return
	}

	h.cache.Set(ctx, key, string(payload), ttl)
	h.rawJSON(w, string(payload))
}

// urlID parses a numeric route parameter. Malformed ids are rejected
// before any adapter work.
func urlID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}
