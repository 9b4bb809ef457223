package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smarthire/internal/hiring"
	"smarthire/internal/platform/middleware"
	jsonResponse "smarthire/internal/transport/http/json"
	"smarthire/internal/transport/http/shared"
	dErrors "smarthire/pkg/domain-errors"
)

// HandleCreateMatch implements POST /matches. The payload carries the
// externally computed scores; id and owner are assigned server-side.
func (h *Handler) HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var m hiring.Match
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}
	m.ID = ""
	m.UserID = middleware.GetUserID(ctx)

	created, err := h.hiring.CreateMatch(ctx, &m)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "match created",
		"request_id", middleware.GetRequestID(ctx),
		"match_id", created.ID,
		"recommendation", string(created.Recommendation),
	)
	jsonResponse.WriteJSON(w, http.StatusCreated, created)
}

// HandleListMatches implements GET /matches. One filter applies at a time:
// candidate_id, job_description_id, or recommendation; otherwise paged
// history, newest first.
func (h *Handler) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	q := r.URL.Query()

	var (
		out []hiring.Match
		err error
	)
	switch {
	case q.Get("candidate_id") != "":
		out, err = h.hiring.ListMatchesForCandidate(ctx, q.Get("candidate_id"), userID)
	case q.Get("job_description_id") != "":
		out, err = h.hiring.ListMatchesForJobDescription(ctx, q.Get("job_description_id"), userID)
	case q.Get("recommendation") != "":
		out, err = h.hiring.ListMatchesByRecommendation(ctx, userID, hiring.Recommendation(q.Get("recommendation")))
	default:
		out, err = h.hiring.ListMatches(ctx, userID, queryInt(r, "limit"), queryInt(r, "offset"))
	}
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newListResponse(out))
}

// HandleGetMatch implements GET /matches/{id}.
func (h *Handler) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	m, err := h.hiring.GetMatch(ctx, chi.URLParam(r, "id"), middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, m)
}

// HandleMatchFeedback implements POST /matches/{id}/feedback.
func (h *Handler) HandleMatchFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var fb hiring.Feedback
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}

	if err := h.hiring.SetMatchFeedback(ctx, chi.URLParam(r, "id"), middleware.GetUserID(ctx), fb); err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleDeleteMatch implements DELETE /matches/{id}.
func (h *Handler) HandleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.hiring.DeleteMatch(ctx, chi.URLParam(r, "id"), middleware.GetUserID(ctx)); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTopMatches implements GET /matches/top. min_percentage and limit
// default to 70 and 10.
func (h *Handler) HandleTopMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := h.hiring.TopMatches(ctx, middleware.GetUserID(ctx), queryFloat(r, "min_percentage"), queryInt(r, "limit"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newListResponse(out))
}

// HandleAnalytics implements GET /matches/analytics.
func (h *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.hiring.Analytics(ctx, middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, report)
}
