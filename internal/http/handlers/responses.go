package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/jobboard-be/internal/auth"
	"github.com/hongminglow/jobboard-be/internal/middleware"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

const maxBodyBytes = 1 << 20

// Guards wrap routes that need a verified identity.
type Guards struct {
	User  middleware.Middleware
	Admin middleware.Middleware
}

type validatable interface {
	Validate() error
}

// decode reads a JSON body into dst and validates it.
func decode(w http.ResponseWriter, r *http.Request, dst validatable) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return dto.Invalid("request body too large")
		}
		return dto.Invalid("invalid JSON payload")
	}
	return dst.Validate()
}

// caller returns the identity the guard put on the request.
func caller(r *http.Request) auth.Identity {
	id, _ := auth.IdentityFrom(r.Context())
	return id
}

// lookup reports whether a record exists, treating ErrNotFound as a plain miss.
func lookup[T any](v T, err error) (T, bool, error) {
	switch {
	case err == nil:
		return v, true, nil
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidID):
		return v, false, nil
	}
	return v, false, err
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return &dto.ValidationError{Message: "missing fields", Fields: []string{name}}
	}
	return nil
}
