package library

import (
	"errors"
	"strings"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrFileNotFound  = errors.New("book or file not found")
	ErrDuplicateISBN = errors.New("ISBN already exists")
)

// FieldError describes one violated rule on an input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rule a BookInput violates.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// IsNotFound reports whether err means the book (or its file) does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookNotFound) || errors.Is(err, ErrFileNotFound)
}
