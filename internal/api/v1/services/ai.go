package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/ai"
	"github.com/willyyyaj/medical-system/internal/app/audio"
	"github.com/willyyyaj/medical-system/internal/app/model"
)

// AIServiceImpl implements AIService
type AIServiceImpl struct {
	assistant   *ai.Assistant
	transcriber ai.Transcriber
	archive     AudioArchive
}

// NewAIService creates a new AI service. assistant and transcriber may be
// nil when the corresponding API key is not configured; archive may be nil
// to skip recording retention.
func NewAIService(assistant *ai.Assistant, transcriber ai.Transcriber, archive AudioArchive) AIService {
	return &AIServiceImpl{assistant: assistant, transcriber: transcriber, archive: archive}
}

// Summarize turns a consultation transcript into the patient-facing Markdown
// summary.
func (s *AIServiceImpl) Summarize(ctx context.Context, user model.User, text string) (string, error) {
	if user.Role != model.RoleDoctor {
		return "", errors.NewForbiddenError("Doctors only")
	}
	if s.assistant == nil {
		return "", errors.NewInternalError("Summary model is not configured")
	}

	summary, err := s.assistant.SummarizeVisit(ctx, text)
	if err != nil {
		if stderrors.Is(err, ai.ErrQuotaExhausted) {
			return "", errors.NewServiceUnavailableError("AI quota exhausted, try again later")
		}
		return "", errors.NewInternalError("Failed to generate summary")
	}
	return summary, nil
}

// GenerateSOAP converts a transcript into a structured SOAP record.
func (s *AIServiceImpl) GenerateSOAP(ctx context.Context, user model.User, transcript string) (*dto.SOAPResponse, error) {
	if user.Role != model.RoleDoctor {
		return nil, errors.NewForbiddenError("Doctors only")
	}
	if s.assistant == nil {
		return nil, errors.NewInternalError("Summary model is not configured")
	}

	soap, err := s.assistant.GenerateSOAP(ctx, transcript)
	if err != nil {
		if stderrors.Is(err, ai.ErrQuotaExhausted) {
			return nil, errors.NewServiceUnavailableError("AI quota exhausted, try again later")
		}
		return nil, errors.NewInternalError("Failed to generate SOAP summary")
	}
	return soap, nil
}

// Transcribe runs speech-to-text on an uploaded recording. Formats the
// speech API does not accept are converted to MP3 first. The original
// recording is archived when an archive is configured.
func (s *AIServiceImpl) Transcribe(ctx context.Context, audioPath, originalName string) (string, error) {
	if s.transcriber == nil {
		return "", errors.NewInternalError("Transcription is not configured")
	}

	inputPath := audioPath
	if audio.NeedsConversion(audioPath) {
		converted, err := audio.ConvertToMP3(ctx, audioPath)
		if err != nil {
			return "", errors.NewInternalError("Failed to convert recording")
		}
		defer os.Remove(converted)
		inputPath = converted
	}

	transcript, err := s.transcriber.Transcribe(ctx, inputPath)
	if err != nil {
		return "", errors.NewInternalError("Speech-to-text failed")
	}

	if s.archive != nil {
		if key, err := s.archive.Archive(ctx, audioPath, originalName); err != nil {
			slog.Warn("failed to archive recording", "error", err)
		} else {
			slog.Info("recording archived", "key", key)
		}
	}
	return transcript, nil
}
