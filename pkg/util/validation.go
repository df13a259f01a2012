package util

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	dniRegex   = regexp.MustCompile(`^[0-9]{8}$`)
)

// ValidateEmail checks basic email shape and length.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email exceeds maximum length")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateDNI checks the national id format: exactly 8 digits.
func ValidateDNI(dni string) error {
	if !dniRegex.MatchString(dni) {
		return fmt.Errorf("dni must be exactly 8 digits")
	}
	return nil
}

// IsValidDNI reports whether the string is an 8-digit national id.
func IsValidDNI(dni string) bool {
	return dniRegex.MatchString(dni)
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// knownRoles mirrors the fixed platform role enumeration. Kept here so the
// validator does not depend on internal packages.
var knownRoles = map[string]bool{
	"superadmin":     true,
	"business_admin": true,
	"staff":          true,
	"host":           true,
	"lector_qr":      true,
	"promoter":       true,
}

// RegisterValidators installs the custom binding validators used by request
// structs: `dni`, `objectid` and `role`. Call once at startup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine")
	}
	if err := v.RegisterValidation("dni", func(fl validator.FieldLevel) bool {
		return IsValidDNI(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		_, err := primitive.ObjectIDFromHex(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return knownRoles[fl.Field().String()]
	})
}
