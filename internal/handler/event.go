package handler

import (
	"net/http"

	"cloverpass/internal/middleware"
	"cloverpass/internal/model"
	"cloverpass/internal/service"

	"github.com/gin-gonic/gin"
)

// EventHandler handles events plus their tickets and boxes.
type EventHandler struct {
	catalog *service.CatalogService
}

func NewEventHandler(catalog *service.CatalogService) *EventHandler {
	return &EventHandler{catalog: catalog}
}

// Create creates an event under the caller's business.
// @Router /api/events [post]
func (h *EventHandler) Create(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	var req model.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	event, err := h.catalog.CreateEvent(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Event created", event))
}

// List returns the caller's events; superadmins pass ?businessId=.
// @Router /api/events [get]
func (h *EventHandler) List(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	events, err := h.catalog.ListEvents(c.Request.Context(), caller, c.Query("businessId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// CreateTicket creates a ticket type for an event the caller manages.
// @Router /api/tickets [post]
func (h *EventHandler) CreateTicket(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	var req model.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ticket, err := h.catalog.CreateTicket(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Ticket created", ticket))
}

// CreateBox creates a box for an event the caller manages.
// @Router /api/boxes [post]
func (h *EventHandler) CreateBox(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	var req model.CreateBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	box, err := h.catalog.CreateBox(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Box created", box))
}
