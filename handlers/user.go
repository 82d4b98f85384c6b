package handlers

import (
	"errors"
	"net/http"

	"checkfree/models"
	"checkfree/services/user"
	"checkfree/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(userService user.UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

// CheckUserHandler handles GET /api/user/check.
func (h *UserHandler) CheckUserHandler(c *gin.Context) {
	email := c.GetString(utils.EmailKey)
	status, err := h.UserService.CheckUser(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "User not found")
			return
		}
		utils.InternalError(c, "Failed to check user", err, zap.String("email", email))
		return
	}
	c.JSON(http.StatusOK, status)
}

// SetRoleHandler handles POST /api/user/role.
func (h *UserHandler) SetRoleHandler(c *gin.Context) {
	var req struct {
		Role models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid role")
		return
	}

	email := c.GetString(utils.EmailKey)
	if err := h.UserService.SetRole(c.Request.Context(), email, req.Role); err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidRole):
			utils.JSONError(c, http.StatusBadRequest, "Invalid role")
		case errors.Is(err, user.ErrUserNotFound):
			utils.JSONError(c, http.StatusNotFound, "User not found")
		default:
			utils.InternalError(c, "Failed to update role", err, zap.String("email", email))
		}
		return
	}

	getLogger(c).Info("Role updated", zap.String("email", email), zap.String("role", string(req.Role)))
	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully", "role": req.Role})
}

// ListSellersHandler handles GET /api/sellers.
func (h *UserHandler) ListSellersHandler(c *gin.Context) {
	sellers, err := h.UserService.ListSellers(c.Request.Context())
	if err != nil {
		utils.InternalError(c, "Failed to list sellers", err)
		return
	}
	c.JSON(http.StatusOK, sellers)
}
