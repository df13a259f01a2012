package handler

import (
	"net/http"

	"cloverpass/internal/middleware"
	"cloverpass/internal/model"
	"cloverpass/internal/service"

	"github.com/gin-gonic/gin"
)

// BusinessHandler handles tenant CRUD.
type BusinessHandler struct {
	catalog *service.CatalogService
}

func NewBusinessHandler(catalog *service.CatalogService) *BusinessHandler {
	return &BusinessHandler{catalog: catalog}
}

// Create registers a new business tenant.
// @Router /api/businesses [post]
func (h *BusinessHandler) Create(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	var req model.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	business, err := h.catalog.CreateBusiness(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Business created", business))
}

// List returns the businesses visible to the caller: all of them for a
// superadmin, only their own for a business admin.
// @Router /api/businesses [get]
func (h *BusinessHandler) List(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	businesses, err := h.catalog.ListBusinesses(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, businesses)
}

// Get returns a single business the caller manages.
// @Router /api/businesses/{id} [get]
func (h *BusinessHandler) Get(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	business, err := h.catalog.GetBusiness(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}
