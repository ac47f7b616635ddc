package dto

import (
	"strings"

	"github.com/hongminglow/jobboard-be/internal/models"
)

type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	BirthDate string `json:"birth_date"`
}

func (r *SignupRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.BirthDate = strings.TrimSpace(r.BirthDate)

	var c checker
	c.require("first_name", r.FirstName)
	c.require("last_name", r.LastName)
	c.require("username", r.Username)
	c.require("email", r.Email)
	c.require("password", r.Password)
	c.require("birth_date", r.BirthDate)
	c.email("email", r.Email)
	c.password("password", r.Password)
	return c.result()
}

// LoginRequest accepts either email or username as the identifier.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Identifier returns the email if present, else the username. Emails are
// stored lower-case, so an identifier containing "@" is folded to match.
func (r LoginRequest) Identifier() string {
	id := strings.TrimSpace(r.Email)
	if id == "" {
		id = strings.TrimSpace(r.Username)
	}
	if strings.Contains(id, "@") {
		return strings.ToLower(id)
	}
	return id
}

func (r *LoginRequest) Validate() error {
	if r.Identifier() == "" || r.Password == "" {
		return Invalid("email or username and password are required")
	}
	return nil
}

type AdminSignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *AdminSignupRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	var c checker
	c.require("username", r.Username)
	c.require("email", r.Email)
	c.require("password", r.Password)
	c.email("email", r.Email)
	c.password("password", r.Password)
	return c.result()
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type AdminLoginResponse struct {
	Token string       `json:"token"`
	Admin models.Admin `json:"admin"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
