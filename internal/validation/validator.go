package validation

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"todo-api/internal/config"
	"todo-api/internal/errors"
)

// ItemValidator checks item input before it reaches the store
type ItemValidator struct {
	validate      *validator.Validate
	maxNameLength int
}

// NewItemValidator creates a validator using the default limits (no name cap)
func NewItemValidator() *ItemValidator {
	return NewItemValidatorWithConfig(nil)
}

// NewItemValidatorWithConfig creates a validator using the configured limits
func NewItemValidatorWithConfig(cfg *config.Config) *ItemValidator {
	validate := validator.New()
	// notblank rejects whitespace-only strings, which "required" lets through.
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}

	maxLen := config.NewConfig().Validation.NameMaxLength
	if cfg != nil {
		maxLen = cfg.Validation.NameMaxLength
	}

	return &ItemValidator{
		validate:      validate,
		maxNameLength: maxLen,
	}
}

// ValidateName checks that name is not blank and, when a limit is
// configured, not too long. Failures are returned as validation AppErrors
// whose message is safe to show callers.
func (v *ItemValidator) ValidateName(name string) error {
	rules := "notblank"
	if v.maxNameLength > 0 {
		rules += ",max=" + strconv.Itoa(v.maxNameLength)
	}

	err := v.validate.Var(name, rules)
	if err == nil {
		return nil
	}

	ve := fromValidatorErrors("name", name, err)
	return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
}

// ValidateID checks that id can name a stored item
func (v *ItemValidator) ValidateID(id int64) error {
	if err := v.validate.Var(id, "gt=0"); err != nil {
		return errors.NewInvalidInputError("id", id, "must be a positive integer")
	}
	return nil
}

// fromValidatorErrors converts validator failures on a single field.
func fromValidatorErrors(field string, value interface{}, err error) *ValidationError {
	ve := NewValidationError()

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		ve.AddInvalidValueError(field, value, err.Error())
		return ve
	}

	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "notblank", "required":
			ve.AddRequiredError(field)
		case "max":
			maxLen, _ := strconv.Atoi(fe.Param())
			ve.AddInvalidLengthError(field, value, maxLen)
		default:
			ve.AddInvalidValueError(field, value, fmt.Sprintf("failed %s validation", fe.Tag()))
		}
	}
	return ve
}
