// Package settings implements the subscription-settings page: viewing the
// current profile and submitting partial updates to it.
package settings

// UpdateRequest is the raw settings form. Every profile field is present on
// the page, but name, email, and password are treated as optional on
// submission: an empty value means "leave unchanged".
type UpdateRequest struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
	Majors          string `form:"majors"`
	Grade           string `form:"grade"`
	Tags            string `form:"tags"`
	IsActive        string `form:"isActive"`
}

// UpdateInput is the validated, coerced settings submission. Pointer fields
// follow the same convention as users.Patch: nil means the field was left
// empty and should not be written.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string // plaintext here; the service hashes before storing
	Majors   []string
	Grade    int
	Tags     []string
	IsActive bool
}
