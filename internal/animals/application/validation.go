package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/shelterops/adoption-api/internal/animals/application/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// notblank rejects strings that are empty after trimming, matching the
	// "mandatory" semantics of the write contract.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("pastdate", notFutureDate); err != nil {
		panic(err)
	}
	return v
}

// notFutureDate accepts calendar dates up to and including today.
func notFutureDate(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	now := time.Now().In(value.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, value.Location())
	birth := time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
	return !birth.After(today)
}

// fieldMessages fixes the human-readable message per field and violated rule.
var fieldMessages = map[string]string{
	"Name.notblank":      "Name is mandatory",
	"Category.notblank":  "Category is mandatory",
	"BirthDate.required": "Birth Date is mandatory",
	"BirthDate.pastdate": "Birth Date can't be a future date",
	"Status.required":    "Status is mandatory",
}

// jsonNames maps struct fields to the names clients see in error payloads.
var jsonNames = map[string]string{
	"Name":        "name",
	"Description": "description",
	"ImageURL":    "imageUrl",
	"Category":    "category",
	"BirthDate":   "birthDate",
	"Status":      "status",
}

// ValidateMutation checks every field constraint on a write payload. All
// violations are collected rather than short-circuited so clients can fix a
// form in one round trip. A nil return means the payload is acceptable.
func ValidateMutation(input types.AnimalMutationInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return err
	}
	fields := make(FieldErrors, len(violations))
	for _, violation := range violations {
		field := violation.StructField()
		message, ok := fieldMessages[field+"."+violation.Tag()]
		if !ok {
			message = fmt.Sprintf("%s is invalid", field)
		}
		name := jsonNames[field]
		if name == "" {
			name = field
		}
		fields[name] = message
	}
	return &ValidationError{Fields: fields}
}
