package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldErrors maps a form field name to a message suitable for rendering
// next to the field.
type FieldErrors map[string]string

// PostForm carries user input for creating or editing a post. Image holds
// the stored attachment URL after the upload has been handled, not the raw
// file.
type PostForm struct {
	Text    string `validate:"required"`
	GroupID *uint
	Image   string
}

// Validate returns per-field messages; an empty map means the form is valid.
func (f *PostForm) Validate() FieldErrors {
	return fieldErrors(validate.Struct(f))
}

// CommentForm carries user input for adding a comment.
type CommentForm struct {
	Text string `validate:"required"`
}

// Validate returns per-field messages; an empty map means the form is valid.
func (f *CommentForm) Validate() FieldErrors {
	return fieldErrors(validate.Struct(f))
}

func fieldErrors(err error) FieldErrors {
	errs := FieldErrors{}
	if err == nil {
		return errs
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			errs[field] = "This field is required."
		default:
			errs[field] = "This value is invalid."
		}
	}
	return errs
}
