// Package storage issues presigned S3 URLs for profile pictures and company
// logos. The API never proxies image bytes; clients upload straight to the
// bucket and the stored key goes into the user/company record.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/farhan/hrmtrack/pkg/config"
	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

type Store struct {
	bucket  string
	presign *s3.PresignClient
}

func New(ctx context.Context, cfg *config.StorageConfig) (*Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// S3-compatible stores like MinIO need path-style addressing.
			o.UsePathStyle = true
		}
	})

	return &Store{
		bucket:  cfg.Bucket,
		presign: s3.NewPresignClient(client),
	}, nil
}

// AvatarKey builds the object key for a user's profile picture.
func AvatarKey(userID uuid.UUID) string {
	return fmt.Sprintf("avatars/%s/%s", userID, uuid.New())
}

// LogoKey builds the object key for a company logo.
func LogoKey(companyID uuid.UUID) string {
	return fmt.Sprintf("logos/%s/%s", companyID, uuid.New())
}

// PresignUpload returns a URL the client can PUT the object to.
func (s *Store) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("presigning upload for %s: %w", key, err)
	}
	return req.URL, nil
}

// PresignDownload returns a time-limited GET URL for a stored object.
func (s *Store) PresignDownload(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("presigning download for %s: %w", key, err)
	}
	return req.URL, nil
}
