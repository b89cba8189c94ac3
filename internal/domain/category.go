package domain

import "strings"

// Category groups tasks. Names are unique and looked up case-insensitively.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// NewCategory creates a Category with a trimmed name.
func NewCategory(name string) (*Category, error) {
	c := &Category{Name: strings.TrimSpace(name)}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the name is not blank.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "cannot be empty", ErrEmptyName)
	}
	return nil
}
