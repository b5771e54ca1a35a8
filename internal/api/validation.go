package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError is one failed field in a request body.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidateStruct runs `validate` tags over a bound request body and
// returns one entry per failed field.
func ValidateStruct(s interface{}) []ValidationError {
	var errs []ValidationError

	err := validate.Struct(s)
	if err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs = append(errs, ValidationError{
				Field:   fieldErr.Field(),
				Tag:     fieldErr.Tag(),
				Message: errorMessage(fieldErr),
			})
		}
	}

	return errs
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return err.Field() + " must be a valid email address"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "gte":
		return err.Field() + " must be greater than or equal to " + err.Param()
	case "lte":
		return err.Field() + " must be less than or equal to " + err.Param()
	default:
		return err.Field() + " is invalid"
	}
}

// RespondWithValidationErrors sends validation errors as a 400 payload.
func RespondWithValidationErrors(c *gin.Context, errs []ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation failed",
		"details": errs,
	})
}
