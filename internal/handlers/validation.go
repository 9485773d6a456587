package handlers

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/BradenHooton/storefront/internal/models"
	"github.com/BradenHooton/storefront/pkg/auth"
	"github.com/go-playground/validator/v10"
)

// emailDomainPattern requires a dotted domain ending in a TLD of two or more letters.
var emailDomainPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Global validator instance (reused across all handlers)
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("emaildomain", func(fl validator.FieldLevel) bool {
		return emailDomainPattern.MatchString(fl.Field().String())
	})

	return v
}

// fieldMessages holds the message for each field/tag pair.
var fieldMessages = map[string]string{
	"email.required":    "Email is required",
	"email.notblank":    "Email is required",
	"email.max":         "Email must not exceed 255 characters",
	"email.email":       "Invalid email format",
	"email.emaildomain": "Email must have valid domain",
	"name.required":     "Name is required",
	"name.notblank":     "Name is required",
	"name.max":          "Name must be between 1 and 100 characters",
	"password.required": "Password is required",
	"password.notblank": "Password is required",
	"password.min":      "Password must be between 8 and 128 characters",
	"password.max":      "Password must be between 8 and 128 characters",
}

// ValidateRequest validates a request struct and returns every violated rule.
// It returns nil when req is valid.
func ValidateRequest(req any) []models.FieldViolation {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []models.FieldViolation{{Field: "", Rule: "invalid", Message: err.Error()}}
	}

	violations := make([]models.FieldViolation, 0, len(ve))
	for _, fe := range ve {
		violations = append(violations, models.FieldViolation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: formatValidationError(fe),
		})
	}
	return violations
}

// ValidateCreateUser collects all violations of a registration request,
// including one entry per missing password character class.
func ValidateCreateUser(req CreateUserRequest) []models.FieldViolation {
	violations := ValidateRequest(req)

	if req.Password != "" {
		for _, pv := range auth.PasswordViolations(req.Password) {
			violations = append(violations, models.FieldViolation{
				Field:   "password",
				Rule:    pv.Rule,
				Message: pv.Message,
			})
		}
	}

	return violations
}

// formatValidationError converts a validator FieldError to a user-friendly message
func formatValidationError(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required", "notblank":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must have a minimum of " + fe.Param() + " characters"
	case "max":
		return "must have a maximum of " + fe.Param() + " characters"
	default:
		return "failed validation: " + fe.Tag()
	}
}
