package handler

import (
	"net/http"

	"cloverpass/internal/middleware"
	"cloverpass/internal/model"
	"cloverpass/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var feedUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// RedemptionHandler redeems QR codes and streams redemption events to
// validation-area panels.
type RedemptionHandler struct {
	redemptions *service.RedemptionService
}

func NewRedemptionHandler(redemptions *service.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{redemptions: redemptions}
}

// Redeem marks a promotion code as used.
// @Router /api/redemptions [post]
func (h *RedemptionHandler) Redeem(c *gin.Context) {
	caller, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	var req model.RedeemCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	event, err := h.redemptions.Redeem(c.Request.Context(), caller, req.PromotionID, req.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Code redeemed", event))
}

// Feed upgrades to a websocket and pushes redemption events until the client
// disconnects.
// @Router /api/redemptions/feed [get]
func (h *RedemptionHandler) Feed(c *gin.Context) {
	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.redemptions.Subscribe(conn)
	defer func() {
		h.redemptions.Unsubscribe(conn)
		conn.Close()
	}()

	// Reads are discarded; the loop exists to notice the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
