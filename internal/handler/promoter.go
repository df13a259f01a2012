package handler

import (
	"net/http"

	"cloverpass/internal/middleware"
	"cloverpass/internal/model"
	"cloverpass/internal/service"

	"github.com/gin-gonic/gin"
)

// PromoterHandler handles promoter management.
type PromoterHandler struct {
	catalog *service.CatalogService
}

func NewPromoterHandler(catalog *service.CatalogService) *PromoterHandler {
	return &PromoterHandler{catalog: catalog}
}

// Create attaches a promoter to the caller's business.
// @Router /api/promoters [post]
func (h *PromoterHandler) Create(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	var req model.CreatePromoterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	promoter, err := h.catalog.CreatePromoter(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Promoter created", promoter))
}

// List returns the caller's promoters; superadmins pass ?businessId=.
// @Router /api/promoters [get]
func (h *PromoterHandler) List(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	promoters, err := h.catalog.ListPromoters(c.Request.Context(), caller, c.Query("businessId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, promoters)
}
