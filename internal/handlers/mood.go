package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/middleware"
	"github.com/udaan-app/udaan-backend/internal/services"
	"github.com/udaan-app/udaan-backend/internal/types"
)

type MoodHandler struct {
	log     *logger.Logger
	moodSvc services.MoodService
}

func NewMoodHandler(log *logger.Logger, moodSvc services.MoodService) *MoodHandler {
	return &MoodHandler{
		log:     log.With("handler", "MoodHandler"),
		moodSvc: moodSvc,
	}
}

// POST /api/mood
// Accepts either "value" or the legacy "mood" key for the rating.
func (h *MoodHandler) Record(c *gin.Context) {
	var req struct {
		Value *int       `json:"value"`
		Mood  *int       `json:"mood"`
		Note  string     `json:"note"`
		Date  *time.Time `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	value := req.Value
	if value == nil {
		value = req.Mood
	}
	if value == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mood value is required"})
		return
	}

	user := middleware.CurrentUser(c)
	mood, err := h.moodSvc.Record(c.Request.Context(), user.ID, *value, req.Note, types.MoodSourceTracker, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, mood)
}

// GET /api/mood?limit=&skip=
func (h *MoodHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	user := middleware.CurrentUser(c)
	moods, err := h.moodSvc.List(c.Request.Context(), user.ID, limit, skip)
	if err != nil {
		h.log.Error("Failed to list moods", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load mood history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"moods": moods})
}

// GET /api/mood/stats?days=
func (h *MoodHandler) Stats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	user := middleware.CurrentUser(c)
	stats, err := h.moodSvc.Stats(c.Request.Context(), user.ID, days)
	if err != nil {
		h.log.Error("Failed to compute mood stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load mood stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/mood/latest
func (h *MoodHandler) Latest(c *gin.Context) {
	user := middleware.CurrentUser(c)
	mood, err := h.moodSvc.Latest(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load latest mood", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load latest mood"})
		return
	}
	if mood == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no mood recorded yet"})
		return
	}
	c.JSON(http.StatusOK, mood)
}
