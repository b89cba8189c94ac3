package domain

import (
	"errors"
	"testing"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser(" Ann ", " Ann@Example.COM ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Name != "Ann" {
		t.Errorf("Expected name %q, got %q", "Ann", user.Name)
	}

	if user.Email != "ann@example.com" {
		t.Errorf("Expected normalized email, got %q", user.Email)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	_, err = NewUser("  ", "ann@example.com")
	if !errors.Is(err, ErrEmptyName) || !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrEmptyName validation error, got %v", err)
	}

	_, err = NewUser("Ann", " ")
	if !errors.Is(err, ErrEmptyEmail) {
		t.Errorf("Expected ErrEmptyEmail, got %v", err)
	}
}

func TestValidateEmailFormat(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.com", "first.last@example.co.uk", "x+tag@sub.domain.io"}
	for _, email := range valid {
		if !validateEmailFormat(email) {
			t.Errorf("Expected %q to be valid", email)
		}
	}

	invalid := []string{"plain", "@example.com", "user@", "user@com", "user@.com", "user@example.", "a@b@c.com"}
	for _, email := range invalid {
		if validateEmailFormat(email) {
			t.Errorf("Expected %q to be invalid", email)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  A@B.com "); got != "a@b.com" {
		t.Errorf("Expected a@b.com, got %q", got)
	}
}

func TestNewCategory(t *testing.T) {
	t.Parallel()

	c, err := NewCategory(" Work ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.Name != "Work" {
		t.Errorf("Expected trimmed name, got %q", c.Name)
	}

	if _, err := NewCategory("   "); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}
