package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"roamly/pkg/logger"
	"roamly/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type PackageValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPackageValidator(log *logger.Logger) *PackageValidator {
	return &PackageValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// MissingCreateFields reports the required create fields that are absent or
// empty, named as they appear in request bodies.
func MissingCreateFields(pkg *model.Package) []string {
	var missing []string
	if strings.TrimSpace(pkg.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(pkg.Description) == "" {
		missing = append(missing, "description")
	}
	if pkg.Price == 0 {
		missing = append(missing, "price")
	}
	if strings.TrimSpace(pkg.Duration) == "" {
		missing = append(missing, "duration")
	}
	if len(pkg.Destinations) == 0 {
		missing = append(missing, "destinations")
	}
	return missing
}

func (v *PackageValidator) Validate(pkg *model.Package) error {
	if err := v.validate.Struct(pkg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *PackageValidator) ValidateUpdate(updates *model.PackageUpdate) error {
	if err := v.validate.Struct(updates); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *PackageValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must have at least %s items or characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must have at most %s items or characters", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
