package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/middleware"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/api/v1/services"
)

// AIHandler handles summary generation and speech-to-text endpoints
type AIHandler struct {
	service services.AIService
}

// NewAIHandler creates a new AI handler
func NewAIHandler(service services.AIService) *AIHandler {
	return &AIHandler{service: service}
}

// Summarize handles POST /api/v1/summarize
// Turns a consultation transcript into a patient-facing Markdown summary.
func (h *AIHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)

	summary, err := h.service.Summarize(c.Request.Context(), user, req.Text)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{Summary: summary})
}

// SOAPSummary handles POST /api/v1/soap-summary
func (h *AIHandler) SOAPSummary(c *gin.Context) {
	var req dto.SOAPRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)

	soap, err := h.service.GenerateSOAP(c.Request.Context(), user, req.Transcript)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, soap)
}

// Transcribe handles POST /api/v1/transcribe
// Accepts a multipart audio upload and returns the transcript. The upload is
// spooled to a temp file for ffmpeg and the speech API.
func (h *AIHandler) Transcribe(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("No file uploaded"))
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".webm"
	}
	tmp, err := os.CreateTemp("", "recording-*"+ext)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("Failed to store upload"))
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		middleware.HandleError(c, errors.NewInternalError("Failed to store upload"))
		return
	}
	tmp.Close()

	transcript, err := h.service.Transcribe(c.Request.Context(), tmpPath, header.Filename)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TranscribeResponse{Transcript: transcript})
}
