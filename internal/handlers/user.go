package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/middleware"
	"github.com/udaan-app/udaan-backend/internal/services"
)

type UserHandler struct {
	log     *logger.Logger
	userSvc services.UserService
}

func NewUserHandler(log *logger.Logger, userSvc services.UserService) *UserHandler {
	return &UserHandler{
		log:     log.With("handler", "UserHandler"),
		userSvc: userSvc,
	}
}

// GET /api/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	profile, err := h.userSvc.GetProfile(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /api/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req services.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := middleware.CurrentUser(c)
	profile, err := h.userSvc.UpdateProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
