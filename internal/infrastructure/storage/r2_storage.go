package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	domainrepos "rimmarsa.backend/internal/domain/repositories"
)

// R2Config describes a Cloudflare R2 bucket or any S3 compatible endpoint
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
	// Endpoint overrides the R2 account endpoint, e.g. "http://localhost:9000"
	Endpoint string
}

// R2Storage stores objects in an S3 compatible bucket
type R2Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

var _ domainrepos.ObjectStorage = (*R2Storage)(nil)

// NewR2Storage creates an S3 client for the configured bucket
func NewR2Storage(cfg R2Config) (*R2Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	endpoint, secure := resolveEndpoint(cfg)
	if endpoint == "" {
		return nil, fmt.Errorf("storage endpoint or account id is required")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: secure,
		Region: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "https"
		if !secure {
			scheme = "http"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, endpoint, cfg.Bucket)
	}

	return &R2Storage{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

func (s *R2Storage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}

func (s *R2Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

func resolveEndpoint(cfg R2Config) (string, bool) {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	switch {
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), false
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), true
	case endpoint != "":
		return endpoint, true
	case cfg.AccountID != "":
		return cfg.AccountID + ".r2.cloudflarestorage.com", true
	default:
		return "", true
	}
}
