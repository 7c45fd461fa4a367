package maintenance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"timeclock-sync/config"
	"timeclock-sync/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PutObjectAPI is the part of *s3.Client the archiver uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver writes each batch as one JSON document under sync-logs/YYYY/MM/DD/<uuid>.json.
type S3Archiver struct {
	client PutObjectAPI
	bucket string
	now    func() time.Time
}

func NewS3Archiver(client PutObjectAPI, bucket string) *S3Archiver {
	return &S3Archiver{client: client, bucket: bucket, now: time.Now}
}

// NewS3Client builds an S3 client from the archive settings. A custom endpoint
// (MinIO and friends) switches to path-style addressing.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.ArchiveRegion)}
	if cfg.ArchiveAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.ArchiveAccessKey,
			cfg.ArchiveSecretKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.ArchiveEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.ArchiveEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

type archiveDocument struct {
	ArchivedAt time.Time       `json:"archived_at"`
	Count      int             `json:"count"`
	Entries    []model.SyncLog `json:"entries"`
}

func (a *S3Archiver) Archive(ctx context.Context, entries []model.SyncLog) (string, error) {
	now := a.now()
	body, err := json.Marshal(archiveDocument{ArchivedAt: now, Count: len(entries), Entries: entries})
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("sync-logs/%04d/%02d/%02d/%s.json", now.Year(), now.Month(), now.Day(), uuid.New())
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", a.bucket, key, err)
	}
	return "s3://" + a.bucket + "/" + key, nil
}
