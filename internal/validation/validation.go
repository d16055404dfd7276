// Package validation holds the format-level KYC checks run before any
// financial logic: national identity card numbers, phone numbers and postal
// codes. The checks are exposed both as plain functions and as custom
// go-playground/validator tags for request DTOs.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Old format: 9 digits followed by V or X. New format: 12 digits.
	oldNICPattern = regexp.MustCompile(`^[0-9]{9}[VvXx]$`)
	newNICPattern = regexp.MustCompile(`^[0-9]{12}$`)

	// Local 10-digit numbers starting 0, or +94 followed by 9 digits.
	localPhonePattern = regexp.MustCompile(`^0[0-9]{9}$`)
	intlPhonePattern  = regexp.MustCompile(`^\+94[0-9]{9}$`)

	postalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)
)

// IsValidNIC reports whether s is a valid Sri Lankan NIC number in either
// the old 9-digit+letter or the new 12-digit format.
func IsValidNIC(s string) bool {
	s = strings.TrimSpace(s)
	return oldNICPattern.MatchString(s) || newNICPattern.MatchString(s)
}

// IsValidPhone reports whether s is a valid Sri Lankan phone number.
func IsValidPhone(s string) bool {
	s = strings.TrimSpace(s)
	return localPhonePattern.MatchString(s) || intlPhonePattern.MatchString(s)
}

// IsValidPostalCode reports whether s is a valid 5-digit postal code.
func IsValidPostalCode(s string) bool {
	return postalCodePattern.MatchString(strings.TrimSpace(s))
}

// NormalizeNIC upper-cases the check letter of old-format NICs so storage
// and lookups are consistent.
func NormalizeNIC(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Register wires the KYC checks into a validator instance as the custom
// tags `nic`, `slphone` and `slpostal`.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("nic", func(fl validator.FieldLevel) bool {
		return IsValidNIC(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("slphone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("slpostal", func(fl validator.FieldLevel) bool {
		return IsValidPostalCode(fl.Field().String())
	})
}
