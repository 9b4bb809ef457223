package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"smarthire/internal/hiring"
	"smarthire/internal/platform/middleware"
	jsonResponse "smarthire/internal/transport/http/json"
	"smarthire/internal/transport/http/shared"
	dErrors "smarthire/pkg/domain-errors"
)

// HandleCreateCandidate implements POST /candidates. The payload is the
// candidate row; id and owner are always assigned server-side.
func (h *Handler) HandleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var c hiring.Candidate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}
	c.ID = ""
	c.UserID = middleware.GetUserID(ctx)

	created, err := h.hiring.CreateCandidate(ctx, &c)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "candidate created",
		"request_id", middleware.GetRequestID(ctx),
		"candidate_id", created.ID,
	)
	jsonResponse.WriteJSON(w, http.StatusCreated, created)
}

// HandleListCandidates implements GET /candidates. Supports limit/offset
// paging; expiring_within_days switches to the retention view and skill
// filters to candidates carrying that extracted skill.
func (h *Handler) HandleListCandidates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	if days := queryInt(r, "expiring_within_days"); days > 0 {
		out, err := h.hiring.CandidatesNearExpiration(ctx, userID, days)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		jsonResponse.WriteJSON(w, http.StatusOK, newListResponse(out))
		return
	}
	if skill := r.URL.Query().Get("skill"); skill != "" {
		out, err := h.hiring.ListCandidatesBySkill(ctx, userID, skill)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		jsonResponse.WriteJSON(w, http.StatusOK, newListResponse(out))
		return
	}

	out, err := h.hiring.ListCandidates(ctx, userID, queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newListResponse(out))
}

// HandleGetCandidate implements GET /candidates/{id}.
func (h *Handler) HandleGetCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := h.hiring.GetCandidate(ctx, chi.URLParam(r, "id"), middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, c)
}

// HandleUpdateCandidate implements PUT /candidates/{id}.
func (h *Handler) HandleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var c hiring.Candidate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}
	c.ID = chi.URLParam(r, "id")
	c.UserID = middleware.GetUserID(ctx)

	if err := h.hiring.UpdateCandidate(ctx, &c); err != nil {
		shared.WriteError(w, err)
		return
	}

	updated, err := h.hiring.GetCandidate(ctx, c.ID, c.UserID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, updated)
}

// HandleDeleteCandidate implements DELETE /candidates/{id}.
func (h *Handler) HandleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.hiring.DeleteCandidate(ctx, chi.URLParam(r, "id"), middleware.GetUserID(ctx)); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSearchCandidates implements POST /candidates/search.
func (h *Handler) HandleSearchCandidates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}

	hits, err := h.hiring.SearchCandidates(ctx, middleware.GetUserID(ctx), req.Embedding, req.Threshold, req.Limit)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newListResponse(hits))
}

// HandleExtendCandidate implements POST /candidates/{id}/extend. The new
// retention deadline is additional_days from now; an empty body extends by
// the 30-day default.
func (h *Handler) HandleExtendCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		AdditionalDays int `json:"additional_days"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
			return
		}
	}

	c, err := h.hiring.ExtendCandidateExpiration(ctx, chi.URLParam(r, "id"), middleware.GetUserID(ctx), req.AdditionalDays)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, c)
}

// HandleCandidateStats implements GET /candidates/stats.
func (h *Handler) HandleCandidateStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.hiring.CandidateStats(ctx, middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, stats)
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

func queryFloat(r *http.Request, name string) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0
	}
	return v
}
