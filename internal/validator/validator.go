package validator

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Seat numbers follow the fixed hall layout: rows A-F, seats 1-24.
	seatNumberRgx = regexp.MustCompile(`^[A-F]([1-9]|1[0-9]|2[0-4])$`)
	hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)

	genres = map[string]bool{
		"Action":    true,
		"Adventure": true,
		"Comedy":    true,
		"Drama":     true,
		"Fantasy":   true,
		"Horror":    true,
		"Thriller":  true,
		"Sci-Fi":    true,
	}
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("seat_number", validateSeatNumber)
	validator.RegisterValidation("genre", validateGenre)
	validator.RegisterValidation("password", validatePassword)

	return validator
}

func validateSeatNumber(fl validator.FieldLevel) bool {
	return seatNumberRgx.MatchString(fl.Field().String())
}

func validateGenre(fl validator.FieldLevel) bool {
	return genres[fl.Field().String()]
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit, containsSpecial := false, false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		case hasSpecialRgx.MatchString(string(ch)):
			containsSpecial = true
		}
	}

	return containsUpper && containsLower && containsDigit && containsSpecial
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must contain at least %s items or characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "unique":
		return "must not contain duplicates"
	case "uuid4":
		return "must be a valid UUID"
	case "seat_number":
		return "must be a seat between A1 and F24"
	case "genre":
		return "must be a known genre"
	case "password":
		return "must be 8-25 characters long and include at least one uppercase letter, one lowercase letter, " +
			"one number, and one special character (!@#$%^&*)."
	default:
		return "is invalid"
	}
}
