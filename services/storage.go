package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	appconfig "dolanlur/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Storage uploads marketplace images (vehicles, brands, banners, payment
// proofs, profile pictures) to an S3-compatible bucket.
type Storage struct {
	client *s3.Client
	bucket string
	folder string
	base   string
}

func NewStorage(ctx context.Context, cfg appconfig.S3) (*Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.Endpoint != ""
	})

	base := cfg.Endpoint
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	} else {
		base = fmt.Sprintf("%s/%s", base, cfg.Bucket)
	}

	return &Storage{client: client, bucket: cfg.Bucket, folder: cfg.Folder, base: base}, nil
}

func (s *Storage) objectKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%d/%d/%s-%s", s.folder, d.Year(), d.Month(), d.Day(), uuid.New(), filename)
}

// Upload stores the file and returns the public and secure URLs recorded on
// the owning row. Octet-stream uploads from mobile clients are treated as
// JPEG, matching the behavior the apps rely on.
func (s *Storage) Upload(ctx context.Context, data []byte, filename, contentType string) (publicURL, secureURL string, err error) {
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = "image/jpeg"
	}

	key := s.objectKey(filename)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("put object: %w", err)
	}

	url := fmt.Sprintf("%s/%s", s.base, key)
	return url, url, nil
}
