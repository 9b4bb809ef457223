// Package handler exposes the auth endpoints: registration, sign-in,
// verification resends, and the client-assist validation checks.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smarthire/internal/auth/credential"
	"smarthire/internal/auth/models"
	"smarthire/internal/platform/middleware"
	jsonResponse "smarthire/internal/transport/http/json"
	"smarthire/internal/transport/http/shared"
	dErrors "smarthire/pkg/domain-errors"
	s "smarthire/pkg/string"
)

// Service defines the interface for auth operations.
type Service interface {
	SignUpWithCompanyProfile(ctx context.Context, req *models.RegistrationRequest) (*models.RegistrationData, error)
	SignIn(ctx context.Context, req *models.SignInRequest) (*models.SignInData, error)
	ResendVerification(ctx context.Context, email string) error
	CheckEmailAvailability(ctx context.Context, email string) (bool, error)
}

// Handler handles the /auth endpoints.
type Handler struct {
	auth   Service
	logger *slog.Logger
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.HandleRegister)
	r.Post("/auth/signin", h.HandleSignIn)
	r.Post("/auth/resend-verification", h.HandleResendVerification)
	r.Post("/auth/validate-email", h.HandleValidateEmail)
	r.Post("/auth/password-strength", h.HandlePasswordStrength)
}

// HandleRegister implements POST /auth/register.
// The response is always the registration envelope: success with data, or a
// single error attributed to a field where possible.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req models.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode registration request",
			"error", err,
			"request_id", requestID,
		)
		jsonResponse.WriteJSON(w, http.StatusBadRequest, models.RegistrationResponse{
			Success: false,
			Error:   &models.RegistrationError{Message: "Invalid JSON in request body"},
		})
		return
	}
	s.TrimStrings(&req.FullName, &req.Email, &req.CompanyName)

	data, err := h.auth.SignUpWithCompanyProfile(ctx, &req)
	if err != nil {
		h.writeRegistrationError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "registration successful",
		"request_id", requestID,
		"user_id", data.UserID,
		"profile_created", data.ProfileCreated,
	)
	jsonResponse.WriteJSON(w, http.StatusCreated, models.RegistrationResponse{
		Success: true,
		Data:    data,
	})
}

func (h *Handler) writeRegistrationError(ctx context.Context, w http.ResponseWriter, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) {
		h.logger.ErrorContext(ctx, "registration failed", "error", err)
		jsonResponse.WriteJSON(w, http.StatusInternalServerError, models.RegistrationResponse{
			Success: false,
			Error:   &models.RegistrationError{Message: "An unexpected error occurred. Please try again."},
		})
		return
	}

	regErr := &models.RegistrationError{
		Message: de.Message,
		Field:   de.Field,
	}
	// Schema validation failures carry only message and field, matching the
	// client-side validator's shape. Everything else gets a stable code.
	if de.Code != dErrors.CodeValidation {
		regErr.Code = string(de.Code)
	}
	jsonResponse.WriteJSON(w, shared.DomainCodeToHTTPStatus(de.Code), models.RegistrationResponse{
		Success: false,
		Error:   regErr,
	})
}

// HandleSignIn implements POST /auth/signin.
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode signin request",
			"error", err,
			"request_id", requestID,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}
	s.TrimStrings(&req.Email)

	data, err := h.auth.SignIn(ctx, &req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "signin successful",
		"request_id", requestID,
		"user_id", data.UserID,
	)
	jsonResponse.WriteJSON(w, http.StatusOK, data)
}

// HandleResendVerification implements POST /auth/resend-verification.
func (h *Handler) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ResendVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}

	if err := h.auth.ResendVerification(ctx, req.Email); err != nil {
		var de *dErrors.Error
		if errors.As(err, &de) {
			jsonResponse.WriteJSON(w, shared.DomainCodeToHTTPStatus(de.Code), models.ResendResult{
				Success: false,
				Error:   de.Message,
			})
			return
		}
		jsonResponse.WriteJSON(w, http.StatusInternalServerError, models.ResendResult{
			Success: false,
			Error:   "Failed to resend verification email",
		})
		return
	}

	jsonResponse.WriteJSON(w, http.StatusOK, models.ResendResult{Success: true})
}

// emailCheckResponse is the blur-time email check payload: format verdict
// plus availability when the format is valid.
type emailCheckResponse struct {
	credential.EmailValidationResult
	Available *bool `json:"available,omitempty"`
}

// HandleValidateEmail implements POST /auth/validate-email.
func (h *Handler) HandleValidateEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.EmailCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}

	resp := emailCheckResponse{EmailValidationResult: credential.ValidateEmailFormat(req.Email)}
	if resp.IsValid {
		available, err := h.auth.CheckEmailAvailability(ctx, req.Email)
		if err != nil {
			h.logger.WarnContext(ctx, "email availability check failed", "error", err)
		} else {
			resp.Available = &available
			if !available {
				resp.Error = "This email is already registered"
			}
		}
	}

	jsonResponse.WriteJSON(w, http.StatusOK, resp)
}

// HandlePasswordStrength implements POST /auth/password-strength.
// Pure computation; never fails on weak input, the meter is advisory.
func (h *Handler) HandlePasswordStrength(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordStrengthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}

	jsonResponse.WriteJSON(w, http.StatusOK, credential.CalculatePasswordStrength(req.Password))
}
