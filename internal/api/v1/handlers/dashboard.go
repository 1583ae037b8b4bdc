package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/willyyyaj/medical-system/internal/api/middleware"
	"github.com/willyyyaj/medical-system/internal/api/v1/services"
)

// DashboardHandler handles the patient home view
type DashboardHandler struct {
	service services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get handles GET /api/v1/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	data, err := h.service.Dashboard(c.Request.Context(), user)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}
