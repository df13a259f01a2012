package handler

import (
	"net/http"

	"cloverpass/internal/middleware"
	"cloverpass/internal/model"
	"cloverpass/internal/service"

	"github.com/gin-gonic/gin"
)

// PromotionHandler handles promotion CRUD and QR code issuance.
type PromotionHandler struct {
	catalog *service.CatalogService
}

func NewPromotionHandler(catalog *service.CatalogService) *PromotionHandler {
	return &PromotionHandler{catalog: catalog}
}

// Create creates a promotion with optional pre-generated codes.
// @Router /api/promotions [post]
func (h *PromotionHandler) Create(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	var req model.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	promotion, err := h.catalog.CreatePromotion(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Promotion created", promotion))
}

// List returns the caller's promotions; superadmins pass ?businessId=.
// @Router /api/promotions [get]
func (h *PromotionHandler) List(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	promotions, err := h.catalog.ListPromotions(c.Request.Context(), caller, c.Query("businessId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, promotions)
}

// GenerateCodes issues additional QR codes for an existing promotion.
// @Router /api/promotions/{id}/codes [post]
func (h *PromotionHandler) GenerateCodes(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	var req struct {
		Count int `json:"count" binding:"required,gte=1,lte=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	codes, err := h.catalog.GenerateCodes(c.Request.Context(), caller, c.Param("id"), req.Count)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Codes generated", codes))
}
