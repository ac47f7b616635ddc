package dto

import (
	"strings"

	"github.com/hongminglow/jobboard-be/internal/models"
)

// UpdateProfileRequest is a partial profile update; omitted fields stay as they are.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	BirthDate *string `json:"birth_date"`
}

func (r *UpdateProfileRequest) Validate() error {
	r.FirstName, r.LastName = trimPtr(r.FirstName), trimPtr(r.LastName)
	r.Username, r.Email, r.BirthDate = trimPtr(r.Username), trimPtr(r.Email), trimPtr(r.BirthDate)
	if r.Email != nil {
		*r.Email = strings.ToLower(*r.Email)
	}

	var c checker
	c.optional("username", r.Username)
	c.optional("email", r.Email)
	if r.Email != nil {
		c.email("email", *r.Email)
	}
	if err := c.result(); err != nil {
		return err
	}
	if r.Patch().Empty() {
		return Invalid("no fields to update")
	}
	return nil
}

func (r UpdateProfileRequest) Patch() models.UserPatch {
	return models.UserPatch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Username:  r.Username,
		Email:     r.Email,
		BirthDate: r.BirthDate,
	}
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var c checker
	c.require("old_password", r.OldPassword)
	c.require("new_password", r.NewPassword)
	c.password("new_password", r.NewPassword)
	return c.result()
}

// RemoveAccountRequest re-states the credentials before an account is deleted.
type RemoveAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RemoveAccountRequest) Validate() error {
	var c checker
	c.require("email", r.Email)
	c.require("password", r.Password)
	return c.result()
}
