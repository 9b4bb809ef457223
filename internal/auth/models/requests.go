package models

// CompanySize enumerates the B2B company size buckets offered at signup.
type CompanySize string

const (
	CompanySize1To10     CompanySize = "1-10"
	CompanySize11To50    CompanySize = "11-50"
	CompanySize51To200   CompanySize = "51-200"
	CompanySize201To1000 CompanySize = "201-1000"
	CompanySize1000Plus  CompanySize = "1000+"
)

// RegistrationRequest is the signup form payload. Field order matters: the
// schema validator reports the first failure in declaration order, and
// clients surface one error at a time.
type RegistrationRequest struct {
	FullName        string      `json:"fullName" validate:"min=2,max=100,person_name"`
	Email           string      `json:"email" validate:"email,min=5,max=320"`
	CompanyName     string      `json:"companyName" validate:"min=2,max=100"`
	Password        string      `json:"password" validate:"min=8,max=128,has_upper,has_lower,has_digit,has_special"`
	ConfirmPassword string      `json:"confirmPassword" validate:"eqfield=Password"`
	CompanySize     CompanySize `json:"companySize,omitempty" validate:"omitempty,oneof=1-10 11-50 51-200 201-1000 1000+"`
	AcceptTerms     bool        `json:"acceptTerms" validate:"eq=true"`
}

// SignInRequest is the credentials payload for an existing account.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,max=128"`
}

// ResendVerificationRequest asks for another signup verification email.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email,max=320"`
}

// EmailCheckRequest drives the blur-time email format check.
type EmailCheckRequest struct {
	Email string `json:"email"`
}

// PasswordStrengthRequest drives the keystroke-time strength meter.
type PasswordStrengthRequest struct {
	Password string `json:"password"`
}
