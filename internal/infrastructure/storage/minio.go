package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MatheusBP09/sales-insight-buddy/pkg/config"
)

// PayloadArchive stores raw webhook payloads in object storage so an ingest
// can be replayed or inspected after the fact
type PayloadArchive struct {
	client *minio.Client
	bucket string
}

// NewPayloadArchive creates the archive client and ensures its bucket exists
func NewPayloadArchive(cfg *config.StorageConfig) (*PayloadArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	archive := &PayloadArchive{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := archive.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return archive, nil
}

func (a *PayloadArchive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Archive writes one payload under payloads/<external id>/<timestamp>.json
func (a *PayloadArchive) Archive(ctx context.Context, externalMeetingID string, payload []byte) error {
	objectName := fmt.Sprintf("payloads/%s/%s.json",
		externalMeetingID, time.Now().UTC().Format("20060102T150405.000"))

	_, err := a.client.PutObject(ctx, a.bucket, objectName,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload payload: %w", err)
	}
	return nil
}
