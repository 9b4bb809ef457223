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

// HandleCreateJobDescription implements POST /job-descriptions.
func (h *Handler) HandleCreateJobDescription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var jd hiring.JobDescription
	if err := json.NewDecoder(r.Body).Decode(&jd); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}
	jd.ID = ""
	jd.UserID = middleware.GetUserID(ctx)
	jd.TimesUsed = 0
	jd.LastUsedAt = nil

	created, err := h.hiring.CreateJobDescription(ctx, &jd)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "job description created",
		"request_id", middleware.GetRequestID(ctx),
		"job_description_id", created.ID,
	)
	jsonResponse.WriteJSON(w, http.StatusCreated, created)
}

// HandleListJobDescriptions implements GET /job-descriptions.
func (h *Handler) HandleListJobDescriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := h.hiring.ListJobDescriptions(ctx, middleware.GetUserID(ctx), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newListResponse(out))
}

// HandleGetJobDescription implements GET /job-descriptions/{id}.
func (h *Handler) HandleGetJobDescription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jd, err := h.hiring.GetJobDescription(ctx, chi.URLParam(r, "id"), middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, jd)
}

// HandleUpdateJobDescription implements PUT /job-descriptions/{id}. Usage
// counters are server-owned and survive the update untouched.
func (h *Handler) HandleUpdateJobDescription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var jd hiring.JobDescription
	if err := json.NewDecoder(r.Body).Decode(&jd); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}
	jd.ID = chi.URLParam(r, "id")
	jd.UserID = middleware.GetUserID(ctx)

	if err := h.hiring.UpdateJobDescription(ctx, &jd); err != nil {
		shared.WriteError(w, err)
		return
	}

	updated, err := h.hiring.GetJobDescription(ctx, jd.ID, jd.UserID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, updated)
}

// HandleDeleteJobDescription implements DELETE /job-descriptions/{id}.
func (h *Handler) HandleDeleteJobDescription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.hiring.DeleteJobDescription(ctx, chi.URLParam(r, "id"), middleware.GetUserID(ctx)); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSearchJobDescriptions implements POST /job-descriptions/search.
func (h *Handler) HandleSearchJobDescriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}

	hits, err := h.hiring.SearchJobDescriptions(ctx, middleware.GetUserID(ctx), req.Embedding, req.Threshold, req.Limit)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newListResponse(hits))
}

// HandleMostUsedJobDescriptions implements GET /job-descriptions/most-used.
// limit defaults to 5.
func (h *Handler) HandleMostUsedJobDescriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := h.hiring.MostUsedJobDescriptions(ctx, middleware.GetUserID(ctx), queryInt(r, "limit"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newListResponse(out))
}

// HandleRecordJobDescriptionUse implements POST /job-descriptions/{id}/use.
func (h *Handler) HandleRecordJobDescriptionUse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.hiring.RecordJobDescriptionUse(ctx, chi.URLParam(r, "id"), middleware.GetUserID(ctx)); err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
