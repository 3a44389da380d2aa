package providers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RecordValidatorInterface checks produced target records against their
// struct tags before anything is written.
type RecordValidatorInterface interface {
	ValidateStruct(s interface{}) error
}

type RecordValidator struct {
	validate *validator.Validate
}

func NewRecordValidator() RecordValidatorInterface {
	return &RecordValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *RecordValidator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
