package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/middleware"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/api/v1/services"
)

// AuthHandler handles login
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/v1/token
// Accepts OAuth2-style form credentials or a JSON body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	contentType := c.GetHeader("Content-Type")
	if strings.Contains(contentType, "application/json") {
		if err := middleware.ValidateRequest(c, &req); err != nil {
			middleware.HandleError(c, err)
			return
		}
	} else {
		if err := c.ShouldBind(&req); err != nil {
			middleware.HandleError(c, errors.NewBadRequestError("Username and password are required"))
			return
		}
	}

	response, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
