package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginIdentifier(t *testing.T) {
	tests := []struct {
		name string
		req  LoginRequest
		want string
	}{
		{"email wins", LoginRequest{Email: " Ann@Example.com ", Username: "ann"}, "ann@example.com"},
		{"username kept as is", LoginRequest{Username: " AnnB "}, "AnnB"},
		{"email given as username", LoginRequest{Username: "ANN@example.com"}, "ann@example.com"},
		{"empty", LoginRequest{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Identifier())
		})
	}
}

func TestEmailsAreLowerCased(t *testing.T) {
	signup := SignupRequest{
		FirstName: "Ann", LastName: "Bee", Username: "ann",
		Email: "Ann@Example.COM", Password: "pass-word-1", BirthDate: "1990-01-01",
	}
	require.NoError(t, signup.Validate())
	assert.Equal(t, "ann@example.com", signup.Email)

	admin := AdminSignupRequest{Username: "ops", Email: " OPS@example.com", Password: "pass-word-1"}
	require.NoError(t, admin.Validate())
	assert.Equal(t, "ops@example.com", admin.Email)

	email := "New@Example.com"
	update := UpdateProfileRequest{Email: &email}
	require.NoError(t, update.Validate())
	assert.Equal(t, "new@example.com", *update.Email)
}

func TestSignupRequiresProfileFields(t *testing.T) {
	req := SignupRequest{Username: "ann", Email: "ann@example.com", Password: "pass-word-1"}
	err := req.Validate()
	require.Error(t, err)
	assert.Equal(t, "missing fields: first_name, last_name, birth_date", err.Error())
}
