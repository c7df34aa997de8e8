package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"warungpos/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of the S3 API the archive needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// R2Client archives printed receipts in an R2 (S3-compatible) bucket.
type R2Client struct {
	client  ObjectPutter
	bucket  string
	baseURL string
}

func NewR2Client(ctx context.Context, cfg *config.Config) (*R2Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.R2AccessKey,
				cfg.R2SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2Endpoint)
		o.UsePathStyle = true
	})

	return NewR2ClientWith(client, cfg.R2Bucket, cfg.R2PublicBaseURL), nil
}

// NewR2ClientWith wraps an existing S3 client.
func NewR2ClientWith(client ObjectPutter, bucket, baseURL string) *R2Client {
	return &R2Client{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ReceiptKey is the object key a receipt is stored under, grouped by day.
func ReceiptKey(orderID int, createdAt time.Time) string {
	return fmt.Sprintf("receipts/%s/order-%04d.txt", createdAt.UTC().Format("2006/01/02"), orderID)
}

// PutReceipt uploads a rendered receipt and returns where it can be fetched.
func (r *R2Client) PutReceipt(ctx context.Context, orderID int, createdAt time.Time, body string) (string, error) {
	key := ReceiptKey(orderID, createdAt)

	if err := UploadText(ctx, r.client, r.bucket, key, body); err != nil {
		return "", fmt.Errorf("archive receipt %d: %w", orderID, err)
	}

	if r.baseURL == "" {
		return fmt.Sprintf("r2://%s/%s", r.bucket, key), nil
	}
	return fmt.Sprintf("%s/%s", r.baseURL, key), nil
}
