package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// NameTag is the validator tag backed by ValidateName.
	NameTag = "person_name"
	// EmailTag is the validator tag backed by ValidateEmail.
	EmailTag = "email_address"
)

var (
	// Latin or Cyrillic letters, whitespace and hyphens; 2 to 50 runes.
	namePattern = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ\s\-]{2,50}$`)

	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateName reports whether name is an acceptable user name.
func ValidateName(name string) bool {
	return namePattern.MatchString(name)
}

// ValidateEmail reports whether email has a valid address syntax.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeName trims surrounding whitespace.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register adds the name and email tags to v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(NameTag, func(fl validator.FieldLevel) bool {
		return ValidateName(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	})
}
