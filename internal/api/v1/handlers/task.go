package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/middleware"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/api/v1/services"
)

// TaskHandler handles task-related API endpoints
type TaskHandler struct {
	service services.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /api/v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)

	task, err := h.service.Create(c.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// Update handles PUT /api/v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid task ID"))
		return
	}

	var req dto.UpdateTaskRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)

	task, err := h.service.Update(c.Request.Context(), user, id, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListForPatient handles GET /api/v1/tasks/patient/:id
func (h *TaskHandler) ListForPatient(c *gin.Context) {
	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid patient ID"))
		return
	}

	user, _ := middleware.CurrentUser(c)

	tasks, err := h.service.ListForPatient(c.Request.Context(), user, patientID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}
