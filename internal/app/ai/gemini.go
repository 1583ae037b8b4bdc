// Package ai wraps the generative model and speech-to-text providers used
// to produce visit summaries, SOAP records, and education tags.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrQuotaExhausted is returned when the model keeps rejecting requests for
// quota reasons after all retries.
var ErrQuotaExhausted = errors.New("ai service quota exhausted")

// TextGenerator produces a text completion for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls Google's Gemini API with retry on quota errors.
type GeminiClient struct {
	apiKey     string
	modelName  string
	maxRetries int
	backoff    time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewGeminiClient creates a Gemini-backed TextGenerator. maxRetries counts
// total attempts; backoff grows linearly per attempt.
func NewGeminiClient(apiKey, modelName string, maxRetries int, backoff time.Duration) *GeminiClient {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if backoff <= 0 {
		backoff = 10 * time.Second
	}

	return &GeminiClient{
		apiKey:     apiKey,
		modelName:  modelName,
		maxRetries: maxRetries,
		backoff:    backoff,
		sleep:      sleepContext,
	}
}

// GenerateText sends the prompt and returns the concatenated text parts of
// the first candidate. Quota failures are retried with growing backoff.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("gemini API key is not configured")
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		text, err := c.generateOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !isQuotaError(err) {
			return "", err
		}
		if attempt == c.maxRetries-1 {
			break
		}

		wait := time.Duration(attempt+1) * c.backoff
		slog.Warn("model quota limit hit, backing off",
			"wait", wait.String(),
			"attempt", attempt+1,
			"max_attempts", c.maxRetries)
		if err := c.sleep(ctx, wait); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("%w: %v", ErrQuotaExhausted, lastErr)
}

func (c *GeminiClient) generateOnce(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	resp, err := client.GenerativeModel(c.modelName).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

func isQuotaError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "429")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
