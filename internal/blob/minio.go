package blob

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/draftforge/draftforge/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store writes generated asset bytes to a MinIO bucket and hands back
// presigned GET URLs for the recorded fileUrl field.
type Store struct {
	client *minio.Client
	bucket string
}

func New(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &Store{client: client, bucket: bucket}, nil
}

// Upload stores the object under assets/<session>/<uuid><ext> and
// returns the object name and a presigned URL.
func (s *Store) Upload(ctx context.Context, sessionID int64, fileName string, r io.Reader, size int64) (string, string, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return "", "", fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", "", fmt.Errorf("create bucket: %w", err)
		}
	}

	ext := filepath.Ext(fileName)
	objectName := fmt.Sprintf("assets/%d/%s%s", sessionID, uuid.NewString(), ext)

	_, err = s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentTypeFor(ext),
	})
	if err != nil {
		return "", "", fmt.Errorf("upload object: %w", err)
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, config.AssetURLExpiry, nil)
	if err != nil {
		return "", "", fmt.Errorf("presign object url: %w", err)
	}
	return objectName, presigned.String(), nil
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}
