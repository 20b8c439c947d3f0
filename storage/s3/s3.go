package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/cliapi/storage"
)

type Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// Prefix for all object keys, e.g. "devices/esp-01"
	Prefix string
}

// S3Backend stores files as objects in a bucket.
type S3Backend struct {
	mu sync.RWMutex

	client *minio.Client
	config Config
}

func New(config Config) (*S3Backend, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket cannot be empty", storage.ErrInvalid)
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	config.Prefix = strings.Trim(config.Prefix, "/")
	return &S3Backend{
		client: client,
		config: config,
	}, nil
}

func (*S3Backend) Name() string {
	return "s3"
}

// Open fails when the bucket does not exist.
func (sb *S3Backend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	exists, err := sb.client.BucketExists(ctx, sb.config.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: bucket %s does not exist", storage.ErrMountFailed, sb.config.Bucket)
	}

	return nil
}

func (sb *S3Backend) Close(ctx context.Context) error {
	return nil
}

func (sb *S3Backend) Read(ctx context.Context, key string) ([]byte, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	object, err := sb.client.GetObject(ctx, sb.config.Bucket, sb.buildKey(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, sb.mapError(err, key)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, sb.mapError(err, key)
	}
	return data, nil
}

func (sb *S3Backend) Write(ctx context.Context, key string, data []byte) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	_, err := sb.client.PutObject(ctx, sb.config.Bucket, sb.buildKey(key), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	return err
}

func (sb *S3Backend) Delete(ctx context.Context, key string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	objectKey := sb.buildKey(key)
	if _, err := sb.client.StatObject(ctx, sb.config.Bucket, objectKey, minio.StatObjectOptions{}); err != nil {
		return sb.mapError(err, key)
	}

	return sb.client.RemoveObject(ctx, sb.config.Bucket, objectKey, minio.RemoveObjectOptions{})
}

func (sb *S3Backend) List(ctx context.Context, prefix string) ([]string, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	var keys []string
	for obj := range sb.client.ListObjects(ctx, sb.config.Bucket, minio.ListObjectsOptions{
		Prefix:    sb.buildKey(prefix),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, sb.stripKey(obj.Key))
	}

	return keys, nil
}

func (sb *S3Backend) buildKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	if sb.config.Prefix == "" {
		return key
	}
	return sb.config.Prefix + "/" + key
}

func (sb *S3Backend) stripKey(objectKey string) string {
	if sb.config.Prefix == "" {
		return objectKey
	}
	return strings.TrimPrefix(objectKey, sb.config.Prefix+"/")
}

func (sb *S3Backend) mapError(err error, key string) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", storage.ErrNotExist, key)
	}
	return err
}
