package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseValidationErrors converts validator errors to user-friendly format
func ParseValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return errors
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "e164":
		return "Phone number must be in international format, e.g. +15551234567"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	case "url":
		return "Invalid URL format"
	default:
		return fe.Field() + " is invalid"
	}
}

// respondBindError formats a request body binding failure. Validator errors
// come back per-field, everything else as a single message.
func respondBindError(c *gin.Context, err error) {
	if fieldErrors := ParseValidationErrors(err); len(fieldErrors) > 0 {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", gin.H{"errors": fieldErrors}, err)
		return
	}
	respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", gin.H{"message": err.Error()}, err)
}
