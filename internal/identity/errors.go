package identity

import "errors"

// Business errors returned by the identity service. These are expected
// outcomes and map to 4xx responses at the HTTP boundary; anything else
// coming out of the service is a server-side failure.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already in use")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrRoleNotFound       = errors.New("role not found")
	ErrUserNotFound       = errors.New("user not found")
)
