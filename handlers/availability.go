package handlers

import (
	"errors"
	"net/http"

	"checkfree/services/availability"
	"checkfree/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	AvailabilityService availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{AvailabilityService: svc}
}

// GetAvailabilityHandler handles GET /api/availability?sellerId=&date=.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	sellerID := c.Query("sellerId")
	date := c.Query("date")

	slots, err := h.AvailabilityService.GetSlots(c.Request.Context(), sellerID, date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrMissingParams):
			utils.JSONError(c, http.StatusBadRequest, "Missing sellerId or date")
		case errors.Is(err, availability.ErrSellerNotFound):
			utils.JSONError(c, http.StatusNotFound, "Seller not found")
		default:
			utils.InternalError(c, "Failed to compute availability", err,
				zap.String("sellerId", sellerID),
				zap.String("date", date),
			)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
