// Package validation checks card validation requests before the checksum
// runs. Rules are declared as struct tags on the request DTO.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	carderrors "github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/errors"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/dto"
	apperrors "github.com/dharshanac/ZeilCardValidatorApi/pkg/errors"
)

const tagCardDigits = "card_digits"

// RequestValidator validates card requests with go-playground/validator.
// It is safe for concurrent use.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator registers the custom rules and returns a validator
func NewRequestValidator() (*RequestValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("register notblank rule: %w", err)
	}
	if err := v.RegisterValidation(tagCardDigits, cardDigits); err != nil {
		return nil, fmt.Errorf("register %s rule: %w", tagCardDigits, err)
	}

	return &RequestValidator{validate: v}, nil
}

// ValidateRequest returns a *apperrors.ValidationError listing failed rules
// per field, or nil when the request is acceptable
func (rv *RequestValidator) ValidateRequest(req *dto.ValidateCardRequest) error {
	if req == nil {
		return apperrors.NewFieldValidationError(map[string][]string{
			"cardNumber": {carderrors.MsgCardNumberRequired},
		})
	}

	err := rv.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewInternalErrorf("validate request: %v", err)
	}

	fields := make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = append(fields[fe.Field()], message(fe))
	}

	return apperrors.NewFieldValidationError(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return carderrors.MsgCardNumberRequired
	case "min", "max":
		return carderrors.MsgCardNumberLength
	case tagCardDigits:
		return carderrors.MsgCardNumberDigits
	default:
		return fmt.Sprintf("%s failed the %s rule.", fe.Field(), fe.Tag())
	}
}

// cardDigits accepts strings made of ASCII digits once spaces are removed.
// Dashes are rejected here even though the checksum tolerates them.
func cardDigits(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r == ' ' {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
