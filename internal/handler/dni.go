package handler

import (
	"errors"
	"net/http"

	"cloverpass/internal/model"
	"cloverpass/internal/service"

	"github.com/gin-gonic/gin"
)

// DNIHandler proxies national-id lookups to the configured registry.
type DNIHandler struct {
	dni *service.DNIService
}

func NewDNIHandler(dni *service.DNIService) *DNIHandler {
	return &DNIHandler{dni: dni}
}

// Lookup resolves an 8-digit document number to a combined full name.
// @Router /api/dni/{dni} [get]
func (h *DNIHandler) Lookup(c *gin.Context) {
	result, err := h.dni.Lookup(c.Request.Context(), c.Param("dni"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, model.NewValidationResponse("Validation failed", []model.FieldError{
				{Field: "dni", Message: "must be exactly 8 digits"},
			}))
		case errors.Is(err, service.ErrDNINotFound):
			c.JSON(http.StatusNotFound, model.NewErrorResponse("DNI not found", ""))
		case errors.Is(err, service.ErrDNINotConfigured):
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse("DNI lookup unavailable", ""))
		default:
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse("DNI lookup failed", err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
