package handlers

import (
	"errors"
	"net/http"

	"checkfree/models"
	"checkfree/services/appointment"
	"checkfree/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	AppointmentService appointment.AppointmentService
}

func NewAppointmentHandler(svc appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{AppointmentService: svc}
}

// CreateAppointmentHandler handles POST /api/appointments.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	email := c.GetString(utils.EmailKey)
	event, err := h.AppointmentService.Book(c.Request.Context(), email, req)
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrMissingFields):
			utils.JSONError(c, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, appointment.ErrInvalidTimeRange):
			utils.JSONError(c, http.StatusBadRequest, "Invalid time range")
		case errors.Is(err, appointment.ErrUserNotFound):
			utils.JSONError(c, http.StatusNotFound, "User not found")
		default:
			utils.InternalError(c, "Failed to create appointment", err,
				zap.String("sellerId", req.SellerID),
				zap.String("email", email),
			)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment created successfully", "event": event})
}

// ListAppointmentsHandler handles GET /api/appointments.
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	email := c.GetString(utils.EmailKey)
	events, err := h.AppointmentService.Upcoming(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, appointment.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "User not found")
			return
		}
		utils.InternalError(c, "Failed to list appointments", err, zap.String("email", email))
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": events})
}

// AppointmentHistoryHandler handles GET /api/appointments/history.
func (h *AppointmentHandler) AppointmentHistoryHandler(c *gin.Context) {
	userID := c.GetString(utils.UserIDKey)
	appts, err := h.AppointmentService.History(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "Failed to load appointment history", err, zap.String("userId", userID))
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
