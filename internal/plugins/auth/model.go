// Package auth handles registration, login, logout, and the session gate
// for the notification portal. Sessions are stateless signed tokens carried
// in the "jwt" cookie; nothing is stored server-side, so a token is valid
// until it expires or the cookie is cleared.
package auth

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the raw data submitted by the registration form.
// Majors arrives as a comma-separated string and Grade as a string; the
// validation layer coerces both.
type RegisterRequest struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
	Majors          string `form:"majors"`
	Grade           string `form:"grade"`
}

// LoginRequest holds the raw data submitted by the sign-in form.
type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// --- Service Input DTOs (validated and coerced) ---

// RegisterInput is the validated input for creating a new subscriber.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Majors   []string
	Grade    int
	Tags     []string
}

// LoginInput is the validated input for authenticating a subscriber.
type LoginInput struct {
	Email    string
	Password string
}
