package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// eventDatePattern matches the MM_DD event date format used in artifact
// filenames, e.g. "11_19".
var eventDatePattern = regexp.MustCompile(`^\d{1,2}_\d{1,2}$`)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with domain validations
// registered.
func New() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("eventdate", func(fl validator.FieldLevel) bool {
		return eventDatePattern.MatchString(fl.Field().String())
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// ValidEventDate reports whether s is a well-formed MM_DD event date.
// Exposed for handlers that read the date from form fields instead of
// a bound struct.
func ValidEventDate(s string) bool {
	return eventDatePattern.MatchString(s)
}
