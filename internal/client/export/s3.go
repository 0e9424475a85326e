package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config selects the bucket and credentials of an S3-compatible store.
type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// ErrS3NotConfigured is returned when no bucket is set.
var ErrS3NotConfigured = errors.New("s3 export is not configured")

// objectPutter is the part of *s3.Client used by the exporter.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Test seams over the SDK constructors.
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// S3Exporter uploads documents under history/<yyyy>/<mm>/<dd>/<uuid>.json.
type S3Exporter struct {
	bucket string
	client objectPutter
	now    func() time.Time
	newID  func() string
}

// NewS3Exporter builds an exporter with static credentials and an optional
// custom endpoint (MinIO and similar).
func NewS3Exporter(ctx context.Context, cfg S3Config) (*S3Exporter, error) {
	if cfg.Bucket == "" {
		return nil, ErrS3NotConfigured
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Exporter(cfg.Bucket, client), nil
}

func newS3Exporter(bucket string, client objectPutter) *S3Exporter {
	return &S3Exporter{bucket: bucket, client: client, now: time.Now, newID: uuid.NewString}
}

// ObjectKey returns the key for an export made at t.
func ObjectKey(t time.Time, id string) string {
	t = t.UTC()
	return fmt.Sprintf("history/%04d/%02d/%02d/%s.json", t.Year(), t.Month(), t.Day(), id)
}

// Export uploads data. The name is kept as object metadata; the key is
// generated.
func (e *S3Exporter) Export(ctx context.Context, name string, data []byte) (string, error) {
	key := ObjectKey(e.now(), e.newID())

	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(e.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
		Metadata:      map[string]string{"export-name": name},
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", e.bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", e.bucket, key), nil
}
