package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"gamecatalog/internal/config"
)

// PresignedUpload is a short-lived URL the client PUTs the picture to.
type PresignedUpload struct {
	Key       string    `json:"key"`
	URL       string    `json:"upload_url"`
	Method    string    `json:"method"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PictureStore issues presigned uploads for profile pictures on an
// S3-compatible bucket.
type PictureStore struct {
	client    *s3.Client
	presign   *s3.PresignClient
	bucket    string
	publicURL string
	ttl       time.Duration
}

// NewPictureStore builds the S3 client with static credentials.
func NewPictureStore(ctx context.Context, cfg config.S3Config) (*PictureStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &PictureStore{
		client:    client,
		presign:   s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		ttl:       ttl,
	}, nil
}

// KeyPrefix is the object prefix every picture of userID lives under.
func KeyPrefix(userID string) string {
	return "pictures/" + userID + "/"
}

// PresignUpload returns a presigned PUT for a fresh object key under userID.
func (s *PictureStore) PresignUpload(ctx context.Context, userID, contentType string) (*PresignedUpload, error) {
	key := KeyPrefix(userID) + uuid.NewString()
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	req, err := s.presign.PresignPutObject(ctx, in, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}
	return &PresignedUpload{
		Key:       key,
		URL:       req.URL,
		Method:    req.Method,
		PublicURL: s.PublicURL(key),
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

// Exists reports whether the object behind key has been uploaded.
func (s *PictureStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return false, nil
	}
	return false, fmt.Errorf("head object: %w", err)
}

// Delete removes an uploaded picture.
func (s *PictureStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// PublicURL is the address the picture is served from once uploaded.
func (s *PictureStore) PublicURL(key string) string {
	return s.publicURL + "/" + key
}
