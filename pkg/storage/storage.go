package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	"go.uber.org/zap"
)

// ClientInterface is the object storage surface consumed by services.
type ClientInterface interface {
	UploadImage(ctx context.Context, imageData, key, contentType string) (string, error)
	GenerateFileName(mentorID string, originalFileName string) string
	ValidateImageType(contentType string) error
	ValidateImageSize(imageData string) error
}

// Client wraps an S3-compatible object storage bucket used for mentor
// profile images. Uploaded objects are publicly readable; the bucket policy
// is managed outside this service.
type Client struct {
	s3Client   *s3.Client
	bucketName string
	endpoint   string
}

// NewClient creates an object storage client against an S3-compatible endpoint.
func NewClient(accessKeyID, secretAccessKey, bucketName, endpoint, region string) (*Client, error) {
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

	logger.Info("Object storage client initialized",
		zap.String("bucket", bucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &Client{
		s3Client:   s3Client,
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

// UploadImage uploads a base64-encoded image (raw or data-URI form) and
// returns the public URL of the stored object.
func (s *Client) UploadImage(ctx context.Context, imageData, key, contentType string) (string, error) {
	start := time.Now()
	operation := "uploadImage"

	imageBytes, err := decodeBase64Image(imageData)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return "", err
	}

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageBytes),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("object_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(imageBytes)),
	)

	// Public URL format: {endpoint}/{bucket}/{key}
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucketName, key), nil
}

// GenerateFileName builds a collision-resistant object key for a mentor's
// profile image, preserving the original extension.
func (s *Client) GenerateFileName(mentorID string, originalFileName string) string {
	ext := strings.ToLower(filepath.Ext(originalFileName))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("profiles/%s/%d%s", mentorID, time.Now().UnixNano(), ext)
}

// ValidateImageType validates the image content type
func (s *Client) ValidateImageType(contentType string) error {
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

// ValidateImageSize validates the image size (max 10MB)
func (s *Client) ValidateImageSize(imageData string) error {
	const maxSize = 10 * 1024 * 1024 // 10MB

	imageBytes, err := decodeBase64Image(imageData)
	if err != nil {
		return fmt.Errorf("failed to decode image for size validation: %w", err)
	}

	if len(imageBytes) > maxSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", len(imageBytes), maxSize)
	}

	return nil
}

// decodeBase64Image decodes raw base64 or a data URI (data:image/png;base64,...)
func decodeBase64Image(imageData string) ([]byte, error) {
	payload := imageData
	if strings.HasPrefix(imageData, "data:") {
		parts := strings.SplitN(imageData, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid data URI format")
		}
		payload = parts[1]
	}

	imageBytes, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}
	return imageBytes, nil
}

func recordMetrics(operation, status string, duration float64) {
	metrics.StorageRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, status).Inc()
}
