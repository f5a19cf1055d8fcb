package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/middleware"
	"github.com/udaan-app/udaan-backend/internal/services"
)

type JournalHandler struct {
	log        *logger.Logger
	journalSvc services.JournalService
}

func NewJournalHandler(log *logger.Logger, journalSvc services.JournalService) *JournalHandler {
	return &JournalHandler{
		log:        log.With("handler", "JournalHandler"),
		journalSvc: journalSvc,
	}
}

// POST /api/journal
func (h *JournalHandler) Create(c *gin.Context) {
	var req services.JournalEntryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := middleware.CurrentUser(c)
	entry, err := h.journalSvc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /api/journal?search=&limit=&skip=
func (h *JournalHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	user := middleware.CurrentUser(c)
	entries, err := h.journalSvc.List(c.Request.Context(), user.ID, c.Query("search"), limit, skip)
	if err != nil {
		h.log.Error("Failed to list journal entries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load journal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// GET /api/journal/:id
func (h *JournalHandler) Get(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	user := middleware.CurrentUser(c)
	entry, err := h.journalSvc.Get(c.Request.Context(), user.ID, entryID)
	if err != nil {
		h.log.Error("Failed to load journal entry", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load entry"})
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// PUT /api/journal/:id
func (h *JournalHandler) Update(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}
	var req services.JournalEntryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := middleware.CurrentUser(c)
	entry, err := h.journalSvc.Update(c.Request.Context(), user.ID, entryID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DELETE /api/journal/:id
func (h *JournalHandler) Delete(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	user := middleware.CurrentUser(c)
	deleted, err := h.journalSvc.Delete(c.Request.Context(), user.ID, entryID)
	if err != nil {
		h.log.Error("Failed to delete journal entry", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete entry"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
