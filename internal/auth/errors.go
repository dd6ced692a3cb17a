package auth

import "errors"

var (
	// ErrInvalidCredentials is the only error credential sign-in reports to callers
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no session")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidIdentity    = errors.New("identity provider returned an incomplete identity")
	// ErrAccountNotLinked means the email belongs to a password account that never signed in with this provider
	ErrAccountNotLinked = errors.New("account is not linked to this provider")
)
