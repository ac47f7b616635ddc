package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/jobboard-be/internal/models"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestManager(t *testing.T, secret string) (*TokenManager, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewTokenManager(secret, "jobboard-test", WithClock(clock.Now)), clock
}

func TestIssueAndVerify_User(t *testing.T) {
	t.Parallel()
	tm, clock := newTestManager(t, "super-secret")

	tok, err := tm.Issue("user-123", models.RoleUser, time.Hour)
	require.NoError(t, err)

	claims, err := tm.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Empty(t, claims.AdminID)
	assert.Empty(t, claims.Role)
	assert.Equal(t, Identity{Subject: "user-123", Role: models.RoleUser}, claims.Identity())
	assert.Equal(t, clock.now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, clock.now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestIssueAndVerify_AdminPayload(t *testing.T) {
	t.Parallel()
	tm, _ := newTestManager(t, "super-secret")

	tok, err := tm.Issue("admin-1", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	// The wire payload carries admin_id and role, not user_id.
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"admin_id":"admin-1"`)
	assert.Contains(t, string(payload), `"role":"admin"`)
	assert.Contains(t, string(payload), `"exp":`)
	assert.NotContains(t, string(payload), `"user_id"`)

	claims, err := tm.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, Identity{Subject: "admin-1", Role: models.RoleAdmin}, claims.Identity())
}

func TestIssue_RejectsBadInput(t *testing.T) {
	t.Parallel()
	tm, _ := newTestManager(t, "k")

	_, err := tm.Issue("", models.RoleUser, time.Hour)
	assert.Error(t, err)
	_, err = tm.Issue("u1", models.RoleUser, 0)
	assert.Error(t, err)
	_, err = tm.Issue("u1", models.Role("root"), time.Hour)
	assert.Error(t, err)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	t.Parallel()
	ttls := []time.Duration{time.Hour, 24 * time.Hour}

	for _, ttl := range ttls {
		tm, clock := newTestManager(t, "secret")
		issuedAt := clock.now

		tok, err := tm.Issue("u1", models.RoleUser, ttl)
		require.NoError(t, err)

		for _, offset := range []time.Duration{0, time.Second, ttl / 2, ttl - time.Second} {
			clock.now = issuedAt.Add(offset)
			_, err := tm.Verify(tok)
			assert.NoError(t, err, "ttl=%s offset=%s", ttl, offset)
		}

		for _, offset := range []time.Duration{ttl, ttl + time.Second, 2 * ttl} {
			clock.now = issuedAt.Add(offset)
			_, err := tm.Verify(tok)
			assert.ErrorIs(t, err, ErrTokenExpired, "ttl=%s offset=%s", ttl, offset)
		}
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()
	right, _ := newTestManager(t, "right-secret")
	wrong, _ := newTestManager(t, "wrong-secret")

	tok, err := right.Issue("u2", models.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = wrong.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenMalformed)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_FlippedPayloadBit(t *testing.T) {
	t.Parallel()
	tm, _ := newTestManager(t, "secret")

	tok, err := tm.Issue("u3", models.RoleUser, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	for i := range payload {
		tampered := append([]byte(nil), payload...)
		tampered[i] ^= 0x01
		forged := parts[0] + "." + base64.RawURLEncoding.EncodeToString(tampered) + "." + parts[2]

		_, err := tm.Verify(forged)
		require.ErrorIs(t, err, ErrTokenMalformed, "byte %d", i)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	tm, clock := newTestManager(t, "secret")

	claims := Claims{
		UserID: "u4",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "jobboard-test",
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tm.Verify(hs512)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.Verify(none)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_RequiresExpiryAndSubject(t *testing.T) {
	t.Parallel()
	tm, _ := newTestManager(t, "secret")

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "u5",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "jobboard-test"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tm.Verify(noExp)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "jobboard-test",
			ExpiresAt: jwt.NewNumericDate(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tm.Verify(noSubject)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_MalformedStrings(t *testing.T) {
	t.Parallel()
	tm, _ := newTestManager(t, "k")

	for _, raw := range []string{"not.a.jwt", "abc", "a.b", "..", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		_, err := tm.Verify(raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, raw)
	}
}

func TestAuthenticate_RoleGate(t *testing.T) {
	t.Parallel()
	tm, clock := newTestManager(t, "secret")

	userTok, err := tm.Issue("u1", models.RoleUser, time.Hour)
	require.NoError(t, err)
	adminTok, err := tm.Issue("a1", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	id, err := tm.AuthenticateUser("Bearer " + userTok)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.Subject)

	id, err = tm.AuthenticateAdmin(adminTok)
	require.NoError(t, err)
	assert.Equal(t, Identity{Subject: "a1", Role: models.RoleAdmin}, id)

	// A non-admin token on an admin gate is forbidden, never unauthorized.
	_, err = tm.AuthenticateAdmin("Bearer " + userTok)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, IsUnauthorized(err))

	_, err = tm.AuthenticateUser(adminTok)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = tm.AuthenticateAdmin("")
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.True(t, IsUnauthorized(err))

	_, err = tm.AuthenticateAdmin("Bearer garbage")
	assert.ErrorIs(t, err, ErrTokenMalformed)

	clock.now = clock.now.Add(2 * time.Hour)
	_, err = tm.AuthenticateAdmin(adminTok)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.True(t, IsUnauthorized(err))
}

func TestExtractToken(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bare", header: "abc.def.ghi", want: "abc.def.ghi"},
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase bearer", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "padded", header: "  Bearer   abc.def.ghi  ", want: "abc.def.ghi"},
		{name: "empty", header: "", wantErr: ErrMissingToken},
		{name: "bearer only", header: "Bearer ", wantErr: ErrMissingToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
