package middleware

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/helpers"
	"github.com/edutech/studify/internal/pkg/validation"
)

// RegisterValidators installs the custom binding rules on gin's validator
// engine. Called once at startup.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("coursecode", func(fl validator.FieldLevel) bool {
		return validation.IsValidCourseCode(fl.Field().String())
	})
	v.RegisterValidation("departmentcode", func(fl validator.FieldLevel) bool {
		return validation.IsValidDepartmentCode(fl.Field().String())
	})
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return validation.CompiledPatterns.Phone.MatchString(fl.Field().String())
	})
	v.RegisterValidation("datestring", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(helpers.DateFormat, fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("lettergrade", func(fl validator.FieldLevel) bool {
		return models.IsValidLetterGrade(fl.Field().String())
	})
}

// BindError converts a binding failure into the validation branch of the
// error envelope, itemized per offending field.
func BindError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("malformed request body", nil)
	}

	fields := make(map[string]interface{}, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = describeRule(fieldError)
	}
	return apperrors.NewValidationError("validation failed", fields)
}

func describeRule(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short or too small (min " + fieldError.Param() + ")"
	case "max":
		return "is too long or too large (max " + fieldError.Param() + ")"
	case "oneof":
		return "must be one of: " + fieldError.Param()
	case "coursecode":
		return "must be 5-10 uppercase letters or digits"
	case "departmentcode":
		return "must be 2-10 uppercase letters or digits"
	case "phone":
		return "must be a valid phone number"
	case "datestring":
		return "must be a date in YYYY-MM-DD form"
	case "lettergrade":
		return "must be a valid letter grade"
	default:
		return "is invalid"
	}
}
