package library

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BookInput is the accepted shape of a create or update request.
// An empty ISBN means the book has none.
type BookInput struct {
	Title  string `form:"title" validate:"required"`
	Author string `form:"author" validate:"required"`
	ISBN   string `form:"isbn" validate:"omitempty,isbn"`
}

// Normalize trims surrounding whitespace from every field.
func (in BookInput) Normalize() BookInput {
	return BookInput{
		Title:  strings.TrimSpace(in.Title),
		Author: strings.TrimSpace(in.Author),
		ISBN:   strings.TrimSpace(in.ISBN),
	}
}

// isbnPtr returns nil for a missing ISBN so the unique index ignores it.
func (in BookInput) isbnPtr() *string {
	if in.ISBN == "" {
		return nil
	}
	isbn := in.ISBN
	return &isbn
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the input and returns a *ValidationError listing every
// violated rule, or nil.
func (in BookInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	result := &ValidationError{}
	for _, fe := range verrs {
		result.Errors = append(result.Errors, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return result
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:] + " is required"
	case "isbn":
		return "Invalid ISBN format"
	default:
		return fe.Field() + " is invalid"
	}
}
