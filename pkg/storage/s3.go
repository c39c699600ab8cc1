// Package storage issues presigned upload URLs for candidate CV files.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config holds configuration for S3-compatible storage
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// Endpoint overrides the AWS endpoint for S3-compatible providers
	// (Wasabi, MinIO). Path-style addressing is used when set.
	Endpoint string
	URLTTL   time.Duration
}

// AllowedCVTypes maps accepted CV extensions to their content type.
var AllowedCVTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// PresignedUpload is a one-shot PUT target for the client.
type PresignedUpload struct {
	URL         string    `json:"url"`
	Key         string    `json:"key"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type CVStorage struct {
	presigner presigner
	bucket    string
	ttl       time.Duration
	now       func() time.Time
}

// NewS3Client creates an S3 client, switching to path-style addressing
// when a custom endpoint is configured.
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Endpoint == "" {
		return s3.NewFromConfig(awsCfg), nil
	}
	endpoint := cfg.Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}

func NewCVStorage(client *s3.Client, cfg Config) *CVStorage {
	return newCVStorage(s3.NewPresignClient(client), cfg)
}

func newCVStorage(p presigner, cfg Config) *CVStorage {
	ttl := cfg.URLTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CVStorage{presigner: p, bucket: cfg.Bucket, ttl: ttl, now: time.Now}
}

// ContentTypeFor returns the content type for an allowed CV file name.
func ContentTypeFor(fileName string) (string, bool) {
	ct, ok := AllowedCVTypes[strings.ToLower(path.Ext(fileName))]
	return ct, ok
}

// PresignCVUpload returns a PUT URL under cvs/<candidateID>/.
func (s *CVStorage) PresignCVUpload(ctx context.Context, candidateID int64, fileName string) (*PresignedUpload, error) {
	contentType, ok := ContentTypeFor(fileName)
	if !ok {
		return nil, fmt.Errorf("unsupported CV file type %q", path.Ext(fileName))
	}
	key := fmt.Sprintf("cvs/%d/%s%s", candidateID, uuid.NewString(), strings.ToLower(path.Ext(fileName)))

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return nil, fmt.Errorf("presign cv upload: %w", err)
	}

	return &PresignedUpload{
		URL:         req.URL,
		Key:         key,
		ContentType: contentType,
		ExpiresAt:   s.now().Add(s.ttl).UTC(),
	}, nil
}
