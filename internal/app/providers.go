package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/willyyyaj/medical-system/internal/api/v1/services"
	"github.com/willyyyaj/medical-system/internal/app/ai"
	"github.com/willyyyaj/medical-system/internal/app/ai/validator"
	"github.com/willyyyaj/medical-system/internal/app/auth"
	"github.com/willyyyaj/medical-system/internal/app/medinfo"
	"github.com/willyyyaj/medical-system/internal/app/repository"
	"github.com/willyyyaj/medical-system/internal/app/repository/pg"
	"github.com/willyyyaj/medical-system/internal/app/repository/sqlite"
	"github.com/willyyyaj/medical-system/internal/config"
)

// provideLogger builds the process-wide structured logger. Request logging
// and service-level warnings all go through slog with a JSON handler.
func provideLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	return logger
}

func provideSecrets() (*config.Secrets, error) {
	return config.InitializeSecrets()
}

func provideServerConfig() (*config.ServerConfig, error) {
	return config.LoadServerConfig(config.GetDefaultConfigPath())
}

// provideStore opens PostgreSQL when DATABASE_URL is set and falls back to
// the local SQLite file otherwise. An unreachable PostgreSQL also falls back,
// so a developer machine without the container stack still starts.
func provideStore(secrets *config.Secrets, logger *slog.Logger) (*repository.Store, error) {
	ctx := context.Background()

	if secrets.DatabaseURL != "" {
		db, err := pg.Open(ctx, secrets.DatabaseURL)
		if err == nil {
			logger.Info("Connected to PostgreSQL")
			return repository.NewStore(db, "postgres"), nil
		}
		logger.Warn("PostgreSQL unavailable, falling back to SQLite", "error", err)
	}

	dbPath := os.Getenv("MEDSYS_DB_PATH")
	db, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	return repository.NewStore(db, "sqlite3"), nil
}

func provideTokenIssuer(secrets *config.Secrets) *auth.TokenIssuer {
	return auth.NewTokenIssuer(secrets.JWTSigningKey)
}

// provideGeminiClient returns nil when no Gemini key is configured. The
// summary, tagging, and validation features then report themselves as
// unconfigured instead of failing at startup.
func provideGeminiClient(secrets *config.Secrets, cfg *config.ServerConfig) *ai.GeminiClient {
	if secrets.GeminiAPIKey == "" {
		return nil
	}
	return ai.NewGeminiClient(
		secrets.GeminiAPIKey,
		cfg.AI.GeminiModel,
		cfg.AI.QuotaRetries,
		time.Duration(cfg.AI.QuotaBackoffSec)*time.Second,
	)
}

func provideAssistant(client *ai.GeminiClient) *ai.Assistant {
	if client == nil {
		return nil
	}
	return ai.NewAssistant(client)
}

func provideValidator(client *ai.GeminiClient) *validator.Validator {
	if client == nil {
		return nil
	}
	return validator.New(client)
}

// provideTranscriber returns nil when no OpenAI key is configured.
func provideTranscriber(secrets *config.Secrets, cfg *config.ServerConfig, logger *slog.Logger) ai.Transcriber {
	if secrets.OpenAIAPIKey == "" {
		return nil
	}
	transcriber, err := ai.NewWhisperTranscriber(secrets.OpenAIAPIKey, cfg.AI.WhisperModel)
	if err != nil {
		logger.Warn("Speech-to-text disabled", "error", err)
		return nil
	}
	return transcriber
}

// provideAudioArchive connects to MinIO when configured. Archiving is
// best-effort; a broken object store only disables retention.
func provideAudioArchive(secrets *config.Secrets, logger *slog.Logger) services.AudioArchive {
	archive, err := services.NewMinioAudioArchive(secrets)
	if err != nil {
		logger.Warn("Recording archive disabled", "error", err)
		return nil
	}
	if archive == nil {
		return nil
	}
	return archive
}

// provideRedis returns nil when REDIS_ADDR is unset; medication lookups then
// hit the upstream registry on every request.
func provideRedis(secrets *config.Secrets) *redis.Client {
	if secrets.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: secrets.RedisAddr})
}

func provideMedicationSource() *medinfo.Source {
	return medinfo.NewSource(medinfo.NewScraper())
}
