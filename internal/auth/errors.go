package auth

import "errors"

var (
	// ErrMissingToken means the request carried no Authorization value.
	ErrMissingToken = errors.New("token is missing")
	// ErrTokenExpired means the token verified but its expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed covers bad signatures, bad structure and unexpected algorithms.
	ErrTokenMalformed = errors.New("token is invalid")
	// ErrForbidden means the token is valid but carries the wrong role.
	ErrForbidden = errors.New("access denied for this role")
	// ErrInvalidCredentials is returned for a failed password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsUnauthorized reports whether err should be answered with 401.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrInvalidCredentials)
}
