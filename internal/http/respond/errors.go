package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/jobboard-be/internal/auth"
	"github.com/hongminglow/jobboard-be/internal/logging"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

// described carries a client-facing message for a matched sentinel.
type described struct {
	err     error
	message string
}

func (d *described) Error() string { return d.message + ": " + d.err.Error() }
func (d *described) Unwrap() error { return d.err }

// Describe replaces the client message for err when err matches target.
// Other errors pass through untouched.
func Describe(err, target error, message string) error {
	if err == nil || !errors.Is(err, target) {
		return err
	}
	return &described{err: err, message: message}
}

// Status maps an error onto its HTTP status and a safe client message.
func Status(err error) (int, string) {
	var (
		status  int
		message string
		vErr    *dto.ValidationError
	)
	switch {
	case errors.As(err, &vErr):
		status, message = http.StatusBadRequest, vErr.Error()
	case errors.Is(err, auth.ErrMissingToken):
		status, message = http.StatusUnauthorized, "token is missing"
	case errors.Is(err, auth.ErrTokenExpired):
		status, message = http.StatusUnauthorized, "token has expired"
	case errors.Is(err, auth.ErrTokenMalformed):
		status, message = http.StatusUnauthorized, "token is invalid"
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, auth.ErrForbidden):
		status, message = http.StatusForbidden, "forbidden"
	case errors.Is(err, storage.ErrInvalidID):
		status, message = http.StatusBadRequest, "invalid id"
	case errors.Is(err, storage.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, storage.ErrAlreadyExists):
		status, message = http.StatusConflict, "already exists"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
	var d *described
	if errors.As(err, &d) {
		message = d.message
	}
	return status, message
}

// Err writes the error envelope for err. Server-side failures are logged with
// the request context and reach the client only as a generic message.
func Err(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, message := Status(err)
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", logging.RequestID(r.Context()),
			"error", err,
		)
	}
	Error(w, status, message)
}
