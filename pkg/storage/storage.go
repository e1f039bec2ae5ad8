package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
	"github.com/mentorhub/mentorhub-web/pkg/metrics"
	"go.uber.org/zap"
)

// AvatarStore uploads profile avatars to an S3-compatible object store.
type AvatarStore struct {
	s3Client   *s3.Client
	bucketName string
	endpoint   string
}

// NewAvatarStore creates a client for an S3-compatible object store.
func NewAvatarStore(accessKeyID, secretAccessKey, bucketName, endpoint, region string) (*AvatarStore, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if region == "" {
		region = "us-east-1"
	}

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"", // session token not needed
		),
	})

	logger.Info("Avatar storage client initialized",
		zap.String("bucket", bucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &AvatarStore{
		s3Client:   s3Client,
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

// UploadAvatar uploads a base64-encoded avatar image and returns its
// public URL. Accepts either bare base64 or a data URI.
func (s *AvatarStore) UploadAvatar(ctx context.Context, imageData, key, contentType string) (string, error) {
	start := time.Now()
	operation := "uploadAvatar"

	imageBytes, err := decodeBase64Image(imageData)
	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(metrics.MeasureDuration(start))
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		return "", fmt.Errorf("failed to decode base64 image: %w", err)
	}

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageBytes),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.Error("Avatar upload failed",
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.Info("Avatar uploaded",
		zap.String("key", key),
		zap.Int("size_bytes", len(imageBytes)),
	)

	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucketName, key), nil
}

// ValidateImageType validates the avatar content type
func (s *AvatarStore) ValidateImageType(contentType string) error {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}

	if !validTypes[strings.ToLower(contentType)] {
		return fmt.Errorf("invalid file type: %s. Allowed types: jpeg, jpg, png, webp", contentType)
	}

	return nil
}

// ValidateImageSize validates the avatar size (max 5MB)
func (s *AvatarStore) ValidateImageSize(imageData string) error {
	const maxSize = 5 * 1024 * 1024

	imageBytes, err := decodeBase64Image(imageData)
	if err != nil {
		return fmt.Errorf("failed to decode image for size validation: %w", err)
	}

	if len(imageBytes) > maxSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", len(imageBytes), maxSize)
	}

	return nil
}

// decodeBase64Image handles both bare base64 payloads and data URIs
// (data:image/png;base64,...).
func decodeBase64Image(imageData string) ([]byte, error) {
	if strings.HasPrefix(imageData, "data:") {
		parts := strings.SplitN(imageData, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid data URI format")
		}
		return base64.StdEncoding.DecodeString(parts[1])
	}
	return base64.StdEncoding.DecodeString(imageData)
}
