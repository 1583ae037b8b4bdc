package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Secrets holds credentials loaded from the environment.
type Secrets struct {
	JWTSigningKey string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	DatabaseURL   string
	RedisAddr     string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
}

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not an error; variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GetSecrets reads credentials from the environment. The JWT signing key is
// mandatory; the service refuses to start without it.
func GetSecrets() (*Secrets, error) {
	s := &Secrets{
		JWTSigningKey: strings.TrimSpace(os.Getenv("MEDSYS_SECRET_KEY")),
		GeminiAPIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),

		MinIOEndpoint:  strings.TrimSpace(os.Getenv("MINIO_ENDPOINT")),
		MinIOAccessKey: strings.TrimSpace(os.Getenv("MINIO_ACCESS_KEY")),
		MinIOSecretKey: strings.TrimSpace(os.Getenv("MINIO_SECRET_KEY")),
		MinIOBucket:    strings.TrimSpace(os.Getenv("MINIO_BUCKET")),
		MinIOUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}

	if s.MinIOBucket == "" {
		s.MinIOBucket = "medsys-audio"
	}

	if s.GeminiAPIKey == "" {
		// Older deployments exported the key under the Google SDK name.
		s.GeminiAPIKey = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	}

	if s.JWTSigningKey == "" {
		return nil, fmt.Errorf("MEDSYS_SECRET_KEY environment variable must be set")
	}

	if s.OpenAIAPIKey != "" && !strings.HasPrefix(s.OpenAIAPIKey, "sk-") {
		return nil, fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
	}
	if s.GeminiAPIKey != "" && !strings.HasPrefix(s.GeminiAPIKey, "AIza") {
		return nil, fmt.Errorf("invalid GEMINI_API_KEY format: must start with 'AIza'")
	}

	return s, nil
}

// InitializeSecrets loads the environment and reads credentials. This is the
// main entry point for configuration loading.
func InitializeSecrets() (*Secrets, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	return GetSecrets()
}
