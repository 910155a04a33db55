package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/config"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/domain/payment"
)

// WebhookArchive stores raw verified webhook payloads in an S3 bucket.
type WebhookArchive struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

func NewWebhookArchive(cfg config.ArchiveConfig) *WebhookArchive {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		// S3-compatible stores (MinIO, LocalStack) want path-style addressing
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &WebhookArchive{
		client: s3.New(opts),
		bucket: cfg.Bucket,
		now:    time.Now,
	}
}

// ArchiveKey lays payloads out by UTC day: webhook-events/YYYY/MM/DD/<id>.json.
func ArchiveKey(eventID string, at time.Time) string {
	return fmt.Sprintf("webhook-events/%s/%s.json", at.UTC().Format("2006/01/02"), eventID)
}

func (a *WebhookArchive) Archive(ctx context.Context, ev payment.Event) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(ArchiveKey(ev.ID, a.now())),
		Body:        bytes.NewReader(ev.Raw),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"event-type": ev.Kind,
		},
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", ev.ID, err)
	}
	return nil
}
