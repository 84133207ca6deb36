package auth

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once

	phoneDigits = regexp.MustCompile(`^[0-9]{10}$`)
)

// GetValidator returns the shared validator with the custom tags registered.
func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = RegisterValidations(validate)
	})
	return validate
}

// RegisterValidations adds the "phone10" tag (exactly ten digits) to v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phoneDigits.MatchString(fl.Field().String())
	})
}
