// Package models defines the wire payloads exchanged with the Sportera
// backend. JSON tags are field-exact: changing them breaks the contract.
package models

// AuthResponse is returned by every auth endpoint. Both fields are optional:
// registration behind email verification returns no token, and some steps
// (resend, forgot-password) return neither.
type AuthResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// ErrorResponse is the structured error body the backend sends on non-2xx
// statuses. All fields are optional; the classifier falls back to raw-text
// extraction when none parse.
type ErrorResponse struct {
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// LoginRequest carries credentials for POST auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the registration form for POST auth/register.
type RegisterRequest struct {
	FirstName string `json:"prenom"`
	LastName  string `json:"nom"`
	Email     string `json:"email"`
	Phone     string `json:"tel"`
	BirthDate string `json:"age"`
	Role      string `json:"role"`
	Password  string `json:"password"`
}

// EmailRequest is the single-field body shared by resend-verification and
// forgot-password step 1.
type EmailRequest struct {
	Email string `json:"email"`
}

// VerifyRequest carries an OTP code plus the email identifying the account.
// Used by auth/verify-code and auth/forgot-password/verify-code.
type VerifyRequest struct {
	Code  string `json:"code"`
	Email string `json:"email"`
}

// ResetPasswordRequest is the final body of the forgot-password sequence.
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
