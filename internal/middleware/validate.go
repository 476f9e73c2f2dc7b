package middleware

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validator is a struct that holds the validator instance
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New()
	// notblank rejects whitespace-only strings
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{validate: v}
}

// Validate validates a struct against its `validate` tags
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

// ParseQuery fills s from the query string and validates it
func (v *Validator) ParseQuery(c *fiber.Ctx, s interface{}) error {
	if err := c.QueryParser(s); err != nil {
		return err
	}
	return v.Validate(s)
}

// ParseForm fills s from the request body (form or JSON) and validates it
func (v *Validator) ParseForm(c *fiber.Ctx, s interface{}) error {
	if err := c.BodyParser(s); err != nil {
		return err
	}
	return v.Validate(s)
}

// FieldErrors maps failing fields to the tag that failed; nil when err is
// not a validation error.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
