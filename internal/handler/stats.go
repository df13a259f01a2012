package handler

import (
	"net/http"

	"cloverpass/internal/model"
	"cloverpass/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the admin dashboard aggregates.
type StatsHandler struct {
	stats *service.StatsService
}

func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Dashboard returns platform-wide counts. Authorization is enforced by the
// route group like every other privileged endpoint.
// @Router /api/stats/dashboard [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to load statistics", err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", stats))
}
