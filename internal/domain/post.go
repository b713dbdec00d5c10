package domain

import (
	"fmt"
	"strings"
	"time"
)

// Post is a published gallery entry. Posts are never mutated after creation.
type Post struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Prompt    string    `json:"prompt"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"created_at"`
}

// PostDraft carries the user supplied fields of a post before an id is assigned.
type PostDraft struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
	Photo  string `json:"photo"`
}

// Normalize trims the text fields. The photo payload is opaque and left untouched.
func (d PostDraft) Normalize() PostDraft {
	return PostDraft{
		Name:   strings.TrimSpace(d.Name),
		Prompt: strings.TrimSpace(d.Prompt),
		Photo:  d.Photo,
	}
}

// Validate enforces that name, prompt and photo are all present.
func (d PostDraft) Validate() error {
	n := d.Normalize()
	if n.Name == "" || n.Prompt == "" {
		return fmt.Errorf("%w: name and prompt are required", ErrValidation)
	}
	if strings.TrimSpace(n.Photo) == "" {
		return fmt.Errorf("%w: photo is required", ErrValidation)
	}
	return nil
}
