package handler

import (
	"errors"
	"net/http"
	"strings"

	"cloverpass/internal/model"
	"cloverpass/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondServiceError maps service-layer errors onto the HTTP taxonomy.
// Internal detail only ever travels in the debug field.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
	case errors.Is(err, service.ErrRoleNotPermitted):
		c.JSON(http.StatusForbidden, model.NewErrorResponse("Role not permitted", ""))
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNoBusiness):
		c.JSON(http.StatusForbidden, model.NewErrorResponse(err.Error(), ""))
	case errors.Is(err, service.ErrEmailExists):
		c.JSON(http.StatusConflict, model.NewErrorResponse(err.Error(), ""))
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse(err.Error(), ""))
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrDNINotFound):
		c.JSON(http.StatusNotFound, model.NewErrorResponse(err.Error(), ""))
	default:
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Internal error", err.Error()))
	}
}

// respondBindingError turns validator failures into itemized field errors.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]model.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, model.FieldError{
				Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
				Message: validationMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, model.NewValidationResponse("Validation failed", fields))
		return
	}
	c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid request body", err.Error()))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is below the minimum length of " + fe.Param()
	case "max":
		return "exceeds the maximum length of " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "dni":
		return "must be exactly 8 digits"
	case "objectid":
		return "must be a valid id"
	case "role":
		return "is not a recognized role"
	default:
		return "is invalid"
	}
}
