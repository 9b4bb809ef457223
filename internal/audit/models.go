package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Action    string    `json:"action"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Browser   string    `json:"browser,omitempty"`
	Platform  string    `json:"platform,omitempty"`
}

type AuditEvent string

const (
	EventUserRegistered     AuditEvent = "user_registered"
	EventRegistrationFailed AuditEvent = "registration_failed"
	EventProfileCreateFail  AuditEvent = "profile_create_failed"
	EventVerificationResent AuditEvent = "verification_resent"
	EventResendRejected     AuditEvent = "resend_rejected"
	EventSignIn             AuditEvent = "signin"
	EventSignInFailed       AuditEvent = "signin_failed"
)
