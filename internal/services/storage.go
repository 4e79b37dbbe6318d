package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/chachabrian/covoit-backend/internal/config"
)

// Storage archives generated documents and returns where they live.
type Storage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// InitStorage picks S3 when credentials and a bucket are configured and
// falls back to a local directory otherwise.
func InitStorage(cfg config.Config) (Storage, error) {
	if cfg.S3Enabled() {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.AWSRegion),
			Credentials: credentials.NewStaticCredentials(
				cfg.AWSAccessKeyID,
				cfg.AWSSecretAccessKey,
				"",
			),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %v", err)
		}
		log.Println("AWS S3 receipt storage initialized")
		return &S3Storage{
			Uploader: s3manager.NewUploader(sess),
			Bucket:   cfg.AWSS3Bucket,
			Region:   cfg.AWSRegion,
		}, nil
	}

	log.Printf("Warning: AWS S3 not configured. Receipts are stored under %s", cfg.ReceiptDir)
	return NewLocalStorage(cfg.ReceiptDir)
}

// S3Storage uploads objects to a bucket.
type S3Storage struct {
	Uploader *s3manager.Uploader
	Bucket   string
	Region   string
}

func (s *S3Storage) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := s.Uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Bucket, s.Region, key), nil
}

// LocalStorage writes objects under a base directory.
type LocalStorage struct {
	Dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %v", err)
	}
	return &LocalStorage{Dir: dir}, nil
}

func (s *LocalStorage) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	clean := filepath.Clean("/" + key)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	path := filepath.Join(s.Dir, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder directory: %v", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file: %v", err)
	}
	return path, nil
}
