// Package medicalfiles manages patient document uploads attached to
// bookings. Files go straight to S3 via presigned PUT URLs; the backend
// never proxies upload bodies.
package medicalfiles

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

// Presigner is the subset of the S3 presign client the store uses.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Store hands out presigned upload URLs under a per-upload object key.
type Store struct {
	presigner Presigner
	bucket    string
	ttl       time.Duration
	logger    *logging.Logger
}

// NewStore creates the store. If bucket is empty, uploads are disabled.
func NewStore(presigner Presigner, bucket string, ttl time.Duration, logger *logging.Logger) *Store {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{presigner: presigner, bucket: bucket, ttl: ttl, logger: logger}
}

// Enabled reports whether upload storage is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.bucket != "" && s.presigner != nil
}

// UploadURL generates a presigned PUT URL for a new medical file. The
// returned object path is what gets attached to the booking.
func (s *Store) UploadURL(ctx context.Context) (uploadURL, objectPath string, err error) {
	if !s.Enabled() {
		return "", "", fmt.Errorf("medicalfiles: storage not configured")
	}

	objectPath = fmt.Sprintf("medical-files/%s", uuid.NewString())
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectPath),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.ttl
	})
	if err != nil {
		return "", "", fmt.Errorf("medicalfiles: presign put %s: %w", objectPath, err)
	}

	s.logger.Info("medicalfiles: upload url issued", "object_path", objectPath, "ttl", s.ttl.String())
	return req.URL, objectPath, nil
}

// NormalizePath maps a raw uploaded URL or path back to the canonical
// object path stored with the booking.
func NormalizePath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if idx := strings.Index(raw, "medical-files/"); idx >= 0 {
		// Strip any query string left over from the presigned URL.
		path := raw[idx:]
		if q := strings.IndexByte(path, '?'); q >= 0 {
			path = path[:q]
		}
		return path
	}
	return raw
}
