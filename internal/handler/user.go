package handler

import (
	"net/http"

	"cloverpass/internal/middleware"
	"cloverpass/internal/model"
	"cloverpass/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes privileged user creation.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create provisions a platform user. Superadmin may set any roles and any
// business; business_admin is restricted to {staff, host} on their own
// business regardless of payload.
// @Router /api/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	var req model.CreatePlatformUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	created, err := h.users.CreatePlatformUser(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("User created", created))
}

// CreateStaff is the business-panel variant: caller needs business_admin or
// staff plus an associated business, and the new user always lands on the
// caller's business.
// @Router /api/staff [post]
func (h *UserHandler) CreateStaff(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	var req model.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	created, err := h.users.CreateStaff(c.Request.Context(), caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Staff member created", created))
}
