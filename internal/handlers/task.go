package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/middleware"
	"github.com/udaan-app/udaan-backend/internal/repos"
	"github.com/udaan-app/udaan-backend/internal/services"
)

type TaskHandler struct {
	log     *logger.Logger
	taskSvc services.TaskService
}

func NewTaskHandler(log *logger.Logger, taskSvc services.TaskService) *TaskHandler {
	return &TaskHandler{
		log:     log.With("handler", "TaskHandler"),
		taskSvc: taskSvc,
	}
}

// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req services.TaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := middleware.CurrentUser(c)
	task, err := h.taskSvc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GET /api/tasks?status=&priority=&dueDate=
func (h *TaskHandler) List(c *gin.Context) {
	filter := repos.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	if raw := c.Query("dueDate"); raw != "" {
		due, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dueDate must be YYYY-MM-DD"})
			return
		}
		filter.DueDate = &due
	}

	user := middleware.CurrentUser(c)
	tasks, err := h.taskSvc.List(c.Request.Context(), user.ID, filter)
	if err != nil {
		h.log.Error("Failed to list tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// PATCH /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	var req services.TaskUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := middleware.CurrentUser(c)
	task, err := h.taskSvc.Update(c.Request.Context(), user.ID, taskID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	user := middleware.CurrentUser(c)
	deleted, err := h.taskSvc.Delete(c.Request.Context(), user.ID, taskID)
	if err != nil {
		h.log.Error("Failed to delete task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
