package models

// RegistrationError attributes a registration failure to a field and a
// stable machine-readable code.
type RegistrationError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
}

// RegistrationData is the success payload of a registration attempt.
type RegistrationData struct {
	UserID                    string `json:"userId"`
	Email                     string `json:"email"`
	RequiresEmailVerification bool   `json:"requiresEmailVerification"`
	// ProfileCreated reports whether the secondary profile write succeeded.
	// Account creation can succeed while the profile row fails; callers
	// decide whether to retry or compensate.
	ProfileCreated bool `json:"profileCreated"`
}

// RegistrationResponse is produced once per submission attempt.
type RegistrationResponse struct {
	Success bool               `json:"success"`
	Error   *RegistrationError `json:"error,omitempty"`
	Data    *RegistrationData  `json:"data,omitempty"`
}

// SignInData carries the issued token and basic profile for a signed-in user.
type SignInData struct {
	UserID                    string `json:"userId"`
	Email                     string `json:"email"`
	FullName                  string `json:"fullName,omitempty"`
	AccessToken               string `json:"accessToken"`
	RequiresEmailVerification bool   `json:"requiresEmailVerification"`
}

// ResendResult reports a resend attempt outcome.
type ResendResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
