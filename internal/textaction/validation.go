package textaction

import (
	"strings"

	"github.com/aleister1102/redline/internal/common/errorwrapper"
	"github.com/aleister1102/redline/internal/models"
	"github.com/go-playground/validator/v10"
)

// requestValidator enforces TextActionRequest field rules before any network
// call is attempted.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	validate := validator.New()

	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	_ = validate.RegisterValidation("actiontype", func(fl validator.FieldLevel) bool {
		return models.ActionType(fl.Field().String()).IsValid()
	})

	return &requestValidator{validate: validate}
}

// Validate returns a ValidationError describing the first violated field, or
// nil when the request is well-formed.
func (rv *requestValidator) Validate(req models.TextActionRequest) error {
	err := rv.validate.Struct(req)
	if err == nil {
		return nil
	}

	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errorwrapper.NewValidationError(fe.Field(), fe.Value(), describeViolation(fe))
	}
	return errorwrapper.WrapError(err, "text action request validation failed")
}

func describeViolation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be empty or whitespace-only"
	case "actiontype":
		return "is not a recognized action type"
	default:
		return "failed '" + fe.Tag() + "' validation"
	}
}
