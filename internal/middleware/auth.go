package middleware

import (
	"log/slog"
	"net/http"

	"github.com/hongminglow/jobboard-be/internal/auth"
	"github.com/hongminglow/jobboard-be/internal/http/respond"
	"github.com/hongminglow/jobboard-be/internal/models"
)

// Authenticator verifies an Authorization header for a required role.
type Authenticator interface {
	Authenticate(header string, required models.Role) (auth.Identity, error)
}

// Require rejects requests whose token is missing, invalid, expired (401) or
// of another role (403), and puts the verified identity on the context.
func Require(tokens Authenticator, role models.Role, log *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := tokens.Authenticate(r.Header.Get("Authorization"), role)
			if err != nil {
				respond.Err(w, r, log, err)
				return
			}
			if rec := recordFrom(r.Context()); rec != nil {
				rec.subject, rec.role = id.Subject, string(id.Role)
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// User guards routes that need a regular user token.
func User(tokens Authenticator, log *slog.Logger) Middleware {
	return Require(tokens, models.RoleUser, log)
}

// Admin guards routes that need an admin token.
func Admin(tokens Authenticator, log *slog.Logger) Middleware {
	return Require(tokens, models.RoleAdmin, log)
}
