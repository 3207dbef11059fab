package runshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"folha/internal/store"
	"folha/internal/transport/http/api"
	"folha/internal/transport/http/middleware"
)

type Handler struct {
	Runs *store.RunStore
}

func NewHandler(runs *store.RunStore) *Handler {
	return &Handler{Runs: runs}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/runs", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if h.Runs == nil {
		api.Fail(w, http.StatusServiceUnavailable, "no_store", "run history is not configured", reqID)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := h.Runs.List(r.Context(), limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "listing runs failed", reqID)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	api.Success(w, runs, reqID)
}
