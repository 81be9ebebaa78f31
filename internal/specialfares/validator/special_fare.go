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

type SpecialFareValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewSpecialFareValidator(log *logger.Logger) *SpecialFareValidator {
	return &SpecialFareValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// MissingCreateFields reports the required create fields that are absent or
// empty, named as they appear in request bodies.
func MissingCreateFields(fare *model.SpecialFare) []string {
	var missing []string
	if strings.TrimSpace(fare.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(fare.Description) == "" {
		missing = append(missing, "description")
	}
	if fare.Price == 0 {
		missing = append(missing, "price")
	}
	if fare.OriginalPrice == 0 {
		missing = append(missing, "originalPrice")
	}
	if fare.ValidFrom.IsZero() {
		missing = append(missing, "validFrom")
	}
	if fare.ValidTo.IsZero() {
		missing = append(missing, "validTo")
	}
	if len(fare.DepartureCities) == 0 {
		missing = append(missing, "departureCities")
	}
	if len(fare.ArrivalCities) == 0 {
		missing = append(missing, "arrivalCities")
	}
	return missing
}

func (v *SpecialFareValidator) Validate(fare *model.SpecialFare) error {
	if err := v.validate.Struct(fare); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if fare.ValidTo.Time.Before(fare.ValidFrom.Time) {
		return ValidationErrors{{
			Field:   "validTo",
			Message: "validTo must not be before validFrom",
		}}
	}
	return nil
}

func (v *SpecialFareValidator) ValidateUpdate(updates *model.SpecialFareUpdate) error {
	if err := v.validate.Struct(updates); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *SpecialFareValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "gtefield":
			message = fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
		case "len":
			message = fmt.Sprintf("%s must be exactly %s characters", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
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
