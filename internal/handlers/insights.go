package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/middleware"
	"github.com/udaan-app/udaan-backend/internal/services"
)

type InsightsHandler struct {
	log         *logger.Logger
	insightsSvc services.InsightsService
}

func NewInsightsHandler(log *logger.Logger, insightsSvc services.InsightsService) *InsightsHandler {
	return &InsightsHandler{
		log:         log.With("handler", "InsightsHandler"),
		insightsSvc: insightsSvc,
	}
}

// GET /api/insights
func (h *InsightsHandler) Generate(c *gin.Context) {
	user := middleware.CurrentUser(c)
	report, err := h.insightsSvc.Generate(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to generate insights", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate insights"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/insights/mood-trends?days=
func (h *InsightsHandler) Trends(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	user := middleware.CurrentUser(c)
	report, err := h.insightsSvc.MoodTrends(c.Request.Context(), user.ID, days)
	if err != nil {
		h.log.Error("Failed to load mood trends", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trends"})
		return
	}
	c.JSON(http.StatusOK, report)
}
