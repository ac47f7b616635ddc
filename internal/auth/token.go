package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hongminglow/jobboard-be/internal/models"
)

// Claims is the signed payload carried by every access token. User tokens set
// UserID; admin tokens set AdminID and Role "admin".
type Claims struct {
	UserID  string      `json:"user_id,omitempty"`
	AdminID string      `json:"admin_id,omitempty"`
	Role    models.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Identity resolves the claims into the verified subject and its role.
// Tokens without a role marker belong to regular users.
func (c *Claims) Identity() Identity {
	if c.Role == models.RoleAdmin {
		return Identity{Subject: c.AdminID, Role: models.RoleAdmin}
	}
	return Identity{Subject: c.UserID, Role: models.RoleUser}
}

// TokenManager issues and verifies HS256 JWTs signed with a process-wide secret.
type TokenManager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Option customises a TokenManager.
type Option func(*TokenManager)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(t *TokenManager) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTokenManager creates a manager with the provided secret and issuer.
func NewTokenManager(secret, issuer string, opts ...Option) *TokenManager {
	t := &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Issue signs a token for subject with the given role, valid for ttl.
func (t *TokenManager) Issue(subject string, role models.Role, ttl time.Duration) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("issue token: empty subject")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("issue token: ttl must be positive, got %s", ttl)
	}
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	switch role {
	case models.RoleAdmin:
		claims.AdminID = subject
		claims.Role = models.RoleAdmin
	case models.RoleUser, "":
		claims.UserID = subject
	default:
		return "", fmt.Errorf("issue token: unknown role %q", role)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the signature and expiry of raw and returns its claims.
// Expired tokens yield ErrTokenExpired; anything else that fails yields
// ErrTokenMalformed.
func (t *TokenManager) Verify(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	claims := &Claims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if claims.Identity().Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenMalformed)
	}
	return claims, nil
}

// Authenticate extracts the token from an Authorization header value, verifies
// it and requires the given role. A valid token of another role fails with
// ErrForbidden.
func (t *TokenManager) Authenticate(header string, required models.Role) (Identity, error) {
	raw, err := ExtractToken(header)
	if err != nil {
		return Identity{}, err
	}
	claims, err := t.Verify(raw)
	if err != nil {
		return Identity{}, err
	}
	id := claims.Identity()
	if id.Role != required {
		return Identity{}, ErrForbidden
	}
	return id, nil
}

// AuthenticateUser is Authenticate for routes that require a regular user.
func (t *TokenManager) AuthenticateUser(header string) (Identity, error) {
	return t.Authenticate(header, models.RoleUser)
}

// AuthenticateAdmin is Authenticate for admin-only routes.
func (t *TokenManager) AuthenticateAdmin(header string) (Identity, error) {
	return t.Authenticate(header, models.RoleAdmin)
}

// ExtractToken accepts either a bare token or "Bearer <token>".
func ExtractToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	const prefix = "Bearer "
	if len(header) >= len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		header = strings.TrimSpace(header[len(prefix):])
	}
	if header == "" || strings.EqualFold(header, strings.TrimSpace(prefix)) {
		return "", ErrMissingToken
	}
	return header, nil
}
