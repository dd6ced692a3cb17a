package auth

import "github.com/Hariom1711/travelbuddy/internal/validate"

// SignupInput is a credentials registration request.
// ConfirmPassword is checked only when present; the sign-up form always sends it.
type SignupInput struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"min=8"`
	ConfirmPassword *string `json:"confirmPassword,omitempty"`
}

// maxPasswordBytes is the most bcrypt will hash
const maxPasswordBytes = 72

var signupMessages = validate.Messages{
	"email.required": "Please enter a valid email address",
	"password.min":   "Password must be at least 8 characters",
}

// Validate returns the field errors of the input
func (in SignupInput) Validate() *validate.Errors {
	in.Email = NormalizeEmail(in.Email)
	errs := validate.Struct(in, signupMessages)
	if len(in.Password) > maxPasswordBytes {
		errs.Add("password", "Password must be at most 72 bytes")
	}
	if in.ConfirmPassword != nil && *in.ConfirmPassword != in.Password {
		errs.Add("confirmPassword", "Passwords do not match")
	}
	return errs
}
