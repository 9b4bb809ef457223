package service

import (
	"context"

	"smarthire/internal/audit"
	"smarthire/internal/platform/middleware"
)

// Observability helpers for logging, auditing, and metrics.

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, userID, email, reason string) {
	requestID := middleware.GetRequestID(ctx)
	meta := middleware.GetClientMetadata(ctx)

	args := []any{"event", string(event), "log_type", "audit"}
	if userID != "" {
		args = append(args, "user_id", userID)
	}
	if email != "" {
		args = append(args, "email", email)
	}
	if reason != "" {
		args = append(args, "reason", reason)
	}
	if requestID != "" {
		args = append(args, "request_id", requestID)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		UserID:    userID,
		Email:     email,
		Action:    string(event),
		Reason:    reason,
		RequestID: requestID,
		ClientIP:  meta.IP,
		Browser:   meta.Browser,
		Platform:  meta.Platform,
	})
	if err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event", "error", err)
	}
}

func (s *Service) logFailure(ctx context.Context, event audit.AuditEvent, reason string, isError bool, attributes ...any) {
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(event), "reason", reason, "log_type", "standard")
	if s.logger == nil {
		return
	}
	if isError {
		s.logger.ErrorContext(ctx, string(event), args...)
		return
	}
	s.logger.WarnContext(ctx, string(event), args...)
}
