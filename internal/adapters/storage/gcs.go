package storage

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	gcs "cloud.google.com/go/storage"
	portssvc "github.com/mandibooks/billing_backend/internal/core/ports/services"
	"google.golang.org/api/option"
)

// allowedMimeTypes are the document types accepted for upload.
var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// GCSDocumentStore uploads transaction documents to a Google Cloud Storage
// bucket and returns their public URLs.
type GCSDocumentStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSDocumentStore creates the store. Explicit JSON credentials win when
// provided; otherwise application default credentials are used.
func NewGCSDocumentStore(ctx context.Context, bucket string, credentialsJSON string) (*GCSDocumentStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket name is required")
	}

	var client *gcs.Client
	var err error
	if strings.TrimSpace(credentialsJSON) != "" {
		client, err = gcs.NewClient(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	} else {
		client, err = gcs.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSDocumentStore{client: client, bucket: bucket}, nil
}

var _ portssvc.DocumentStore = (*GCSDocumentStore)(nil)

// UploadPDF stores the document bytes under fileName and returns the public
// object URL. The content type is sniffed and must be one of the allowed
// document types.
func (s *GCSDocumentStore) UploadPDF(ctx context.Context, fileName string, data []byte) (string, error) {
	mimeType := http.DetectContentType(data)
	if !allowedMimeTypes[mimeType] {
		return "", fmt.Errorf("unsupported file type: %s", mimeType)
	}

	wc := s.client.Bucket(s.bucket).Object(fileName).NewWriter(ctx)
	wc.ContentType = mimeType
	wc.Metadata = map[string]string{
		"x-goog-acl": "public-read",
	}

	if _, err := wc.Write(data); err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize document upload: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, fileName), nil
}

// Close releases the underlying storage client.
func (s *GCSDocumentStore) Close() error {
	return s.client.Close()
}
