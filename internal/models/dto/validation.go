package dto

import (
	"net/mail"
	"strings"
)

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// ValidationError reports a request body that is missing or has malformed fields.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, ", ")
}

// Invalid builds a ValidationError with a free-form message.
func Invalid(message string) *ValidationError {
	return &ValidationError{Message: message}
}

type checker struct {
	missing []string
	err     *ValidationError
}

func (c *checker) require(name, value string) {
	if strings.TrimSpace(value) == "" {
		c.missing = append(c.missing, name)
	}
}

func (c *checker) fail(message string) {
	if c.err == nil {
		c.err = Invalid(message)
	}
}

func (c *checker) email(name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(value)); err != nil {
		c.fail(name + " is not a valid email address")
	}
}

func (c *checker) password(name, value string) {
	if len(value) > MaxPasswordBytes {
		c.fail(name + " must be at most 72 bytes")
	}
}

func (c *checker) optional(name string, value *string) {
	if value != nil && strings.TrimSpace(*value) == "" {
		c.fail(name + " cannot be empty")
	}
}

func (c *checker) result() error {
	if len(c.missing) > 0 {
		return &ValidationError{Message: "missing fields", Fields: c.missing}
	}
	if c.err != nil {
		return c.err
	}
	return nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
