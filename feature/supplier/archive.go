package supplier

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"marketsync/core/storage"

	"github.com/minio/minio-go/v7"
)

// Archiver uploads raw feed archives to object storage for audit.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewArchiver creates a feed archiver writing under prefix in bucket.
func NewArchiver(client storage.Client, bucket, prefix string) *Archiver {
	if prefix == "" {
		prefix = "feeds"
	}
	return &Archiver{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// Store uploads one feed snapshot, keyed by fetch time.
func (a *Archiver) Store(ctx context.Context, data []byte) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create archive bucket: %w", err)
		}
	}

	objectName := fmt.Sprintf("%s/%s.zip", a.prefix, a.now().UTC().Format("20060102T150405Z"))
	_, err = a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/zip",
	})
	if err != nil {
		return fmt.Errorf("failed to upload feed archive %s: %w", objectName, err)
	}
	return nil
}
