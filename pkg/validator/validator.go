package validator

import (
	"fmt"
	"strings"

	"go-affiliate-ops/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string `json:"failed_field"`
	Tag         string `json:"tag"`
	Value       string `json:"value"`
}

var validate = validator.New()

func init() {
	// Register custom validation for UUID
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})

	// Shift number of a working day (1..3)
	validate.RegisterValidation("shift", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= model.FirstShift && n <= model.LastShift
	})

	validate.RegisterValidation("live_status", func(fl validator.FieldLevel) bool {
		switch model.LiveStatus(fl.Field().String()) {
		case model.LiveNormal, model.LiveOffline, model.LiveRelive:
			return true
		}
		return false
	})

	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return model.Role(fl.Field().String()).Valid()
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "body", Tag: "invalid", Value: err.Error()}}
		}
		for _, err := range validationErrors {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// Summary joins validation failures into one line, e.g. "Shift (shift), Amount (gt=0)".
func Summary(errs []*ErrorResponse) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		field := e.FailedField
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		tag := e.Tag
		if e.Value != "" {
			tag = tag + "=" + e.Value
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", field, tag))
	}
	return strings.Join(parts, ", ")
}
