// Package validation runs struct-tag validation and folds the result into the
// domain error taxonomy: a failed "required" rule is ErrMissingFields, any
// other failed rule is ErrInvalidFormat.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/keshster98/cashfly-backend/internal/domain"
)

var iataPattern = regexp.MustCompile(`^[A-Z]{3}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("iata", func(fl validator.FieldLevel) bool {
		return IsIATACode(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// IsIATACode reports whether code is exactly three uppercase ASCII letters.
func IsIATACode(code string) bool {
	return iataPattern.MatchString(code)
}

// Struct validates v. Missing fields are reported before format problems.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var missing, invalid []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingFields, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidFormat, strings.Join(invalid, ", "))
}
