package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExporter_WritesIntoDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	e := NewFileExporter(dir)

	loc, err := e.Export(context.Background(), "history.json", []byte(`{"count":0}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "history.json"), loc)

	got, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, `{"count":0}`, string(got))
}

func TestFileExporter_RejectsPathNames(t *testing.T) {
	e := NewFileExporter(t.TempDir())

	for _, name := range []string{"", "../escape.json", "a/b.json"} {
		_, err := e.Export(context.Background(), name, []byte("x"))
		assert.Error(t, err, name)
	}
}

func TestFileExporter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileExporter(t.TempDir()).Export(ctx, "h.json", nil)
	require.ErrorIs(t, err, context.Canceled)
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestObjectKey(t *testing.T) {
	at := time.Date(2025, 3, 7, 23, 30, 0, 0, time.FixedZone("X", -2*3600))
	assert.Equal(t, "history/2025/03/08/abc.json", ObjectKey(at, "abc"))
}

func TestS3Exporter_Export(t *testing.T) {
	fp := &fakePutter{}
	e := newS3Exporter("bucket", fp)
	e.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	e.newID = func() string { return "id-1" }

	loc, err := e.Export(context.Background(), "history-x.json", []byte("[]"))
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/history/2025/01/02/id-1.json", loc)

	assert.Equal(t, "bucket", aws.ToString(fp.input.Bucket))
	assert.Equal(t, "history/2025/01/02/id-1.json", aws.ToString(fp.input.Key))
	assert.Equal(t, "application/json", aws.ToString(fp.input.ContentType))
	assert.Equal(t, int64(2), aws.ToInt64(fp.input.ContentLength))
	assert.Equal(t, "history-x.json", fp.input.Metadata["export-name"])
	assert.Equal(t, []byte("[]"), fp.body)
}

func TestS3Exporter_ExportError(t *testing.T) {
	boom := errors.New("denied")
	e := newS3Exporter("bucket", &fakePutter{err: boom})

	_, err := e.Export(context.Background(), "h.json", []byte("{}"))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "s3://bucket/history/")
}

func TestNewS3Exporter_RequiresBucket(t *testing.T) {
	_, err := NewS3Exporter(context.Background(), S3Config{})
	require.ErrorIs(t, err, ErrS3NotConfigured)
}

func TestNewS3Exporter_AppliesConfig(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-central-1", lo.Region)
		require.NotNil(t, lo.Credentials)

		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "minio", creds.AccessKeyID)
		assert.Equal(t, "minio-secret", creds.SecretAccessKey)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	e, err := NewS3Exporter(context.Background(), S3Config{
		Bucket:       "exports",
		Region:       "eu-central-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minio",
		SecretKey:    "minio-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "exports", e.bucket)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Exporter_LoadError(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })

	boom := errors.New("no config")
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, boom
	}

	_, err := NewS3Exporter(context.Background(), S3Config{Bucket: "b"})
	require.ErrorIs(t, err, boom)
}
