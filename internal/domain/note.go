package domain

import (
	"strings"
	"time"
)

// TimestampLayout is the layout used for locally assigned CreatedAt values.
const TimestampLayout = time.RFC3339

type Note struct {
	ID        string
	Title     string
	Body      string
	CreatedAt string
	Archived  bool
}

// Validate checks that title and body are both non-blank.
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(n.Body) == "" {
		return &ValidationError{Field: "body", Message: "body is required"}
	}
	return nil
}

// Created parses CreatedAt. The zero time is returned when the value is
// missing or not RFC 3339.
func (n *Note) Created() time.Time {
	if n.CreatedAt == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, n.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DisplayID returns the first 8 characters of ID for compact display.
func (n *Note) DisplayID() string {
	if len(n.ID) >= 8 {
		return n.ID[:8]
	}
	return n.ID
}
