package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/middleware"
	"github.com/udaan-app/udaan-backend/internal/services"
)

type CareerHandler struct {
	log       *logger.Logger
	careerSvc services.CareerService
}

func NewCareerHandler(log *logger.Logger, careerSvc services.CareerService) *CareerHandler {
	return &CareerHandler{
		log:       log.With("handler", "CareerHandler"),
		careerSvc: careerSvc,
	}
}

// POST /api/career
// Works for anonymous callers too; identity only adds persistence linkage.
// The only caller-visible failure is a 400 on malformed input; every
// downstream failure degrades to a rule-based answer.
func (h *CareerHandler) Suggest(c *gin.Context) {
	var req struct {
		Interests string         `json:"interests"`
		Skills    string         `json:"skills"`
		Mindset   string         `json:"mindset"`
		Mood      *float64       `json:"mood"`
		MoodNote  string         `json:"moodNote"`
		Context   map[string]any `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	input := services.CareerInput{
		Interests: req.Interests,
		Skills:    req.Skills,
		Mindset:   req.Mindset,
		Mood:      req.Mood,
		MoodNote:  req.MoodNote,
		Context:   req.Context,
	}

	var userID *uuid.UUID
	if user := middleware.CurrentUser(c); user != nil {
		userID = &user.ID
	}

	result, err := h.careerSvc.Suggest(c.Request.Context(), userID, input)
	if err != nil {
		h.log.Error("Career suggestion failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate suggestions"})
		return
	}
	c.JSON(http.StatusOK, result)
}
