package domain

import (
	"strings"
	"time"
)

// User is a person who can create tasks and have tasks assigned to them.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NormalizeEmail trims and lower-cases an email address. Emails are stored
// and compared in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser creates a User with a trimmed name and normalized email.
// The ID is assigned by the store on insert.
func NewUser(name, email string) (*User, error) {
	user := &User{
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks name and email.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return NewValidationError("name", "cannot be empty", ErrEmptyName)
	}

	if strings.TrimSpace(u.Email) == "" {
		return NewValidationError("email", "cannot be empty", ErrEmptyEmail)
	}

	if !validateEmailFormat(u.Email) {
		return NewValidationError("email", "has an invalid format", ErrInvalidEmail)
	}

	return nil
}

// validateEmailFormat requires a local part, an @, and a dotted domain.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domainPart := email[at+1:]
	if len(domainPart) < 3 || strings.ContainsAny(domainPart, "@ ") {
		return false
	}

	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}
