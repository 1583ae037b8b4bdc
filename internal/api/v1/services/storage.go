package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/willyyyaj/medical-system/internal/config"
)

// AudioArchive stores consultation recordings after transcription.
type AudioArchive interface {
	Archive(ctx context.Context, localPath, originalName string) (string, error)
}

// MinioAudioArchive implements AudioArchive on a MinIO bucket.
type MinioAudioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinioAudioArchive connects to MinIO and ensures the bucket exists.
// Returns nil without error when no endpoint is configured; archiving is
// then disabled.
func NewMinioAudioArchive(secrets *config.Secrets) (*MinioAudioArchive, error) {
	if secrets.MinIOEndpoint == "" {
		return nil, nil
	}

	client, err := minio.New(secrets.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(secrets.MinIOAccessKey, secrets.MinIOSecretKey, ""),
		Secure: secrets.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, secrets.MinIOBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, secrets.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioAudioArchive{client: client, bucket: secrets.MinIOBucket}, nil
}

// Archive uploads the recording under a date-partitioned key and returns the
// object key.
func (a *MinioAudioArchive) Archive(ctx context.Context, localPath, originalName string) (string, error) {
	now := time.Now().UTC()
	key := fmt.Sprintf("recordings/%s/%d-%s%s",
		now.Format("2006/01/02"),
		now.Unix(),
		uuid.New().String()[:8],
		filepath.Ext(localPath),
	)

	_, err := a.client.FPutObject(ctx, a.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
		UserMetadata: map[string]string{
			"original-name": originalName,
			"uploaded-at":   now.Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload recording: %w", err)
	}
	return key, nil
}
