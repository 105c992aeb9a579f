package output

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// objectStore is the part of *minio.Client the sink uses.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// S3Sink stores each output as one object. Objects cannot be appended to,
// so the accumulated content is kept in memory and re-put on every Append.
type S3Sink struct {
	client     objectStore
	bucketName string
	region     string
	prefix     string

	initOnce sync.Once
	initErr  error

	mu   sync.Mutex
	bufs map[string]*bytes.Buffer
}

func NewS3Sink(cfg S3Config) (*S3Sink, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return newS3Sink(client, bucket, region, cfg.Prefix), nil
}

func newS3Sink(client objectStore, bucket, region, prefix string) *S3Sink {
	return &S3Sink{
		client:     client,
		bucketName: bucket,
		region:     region,
		prefix:     strings.Trim(strings.TrimSpace(prefix), "/"),
		bufs:       make(map[string]*bytes.Buffer),
	}
}

func (s *S3Sink) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucketName)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

func (s *S3Sink) objectKey(name string) string {
	return objectKey(s.prefix, name)
}

func objectKey(prefix, name string) string {
	base := filepath.Base(name)
	if prefix == "" {
		return base
	}
	return path.Join(prefix, base)
}

func (s *S3Sink) Location(name string) string {
	return "s3://" + s.bucketName + "/" + s.objectKey(name)
}

func (s *S3Sink) Clear(ctx context.Context, name string) error {
	s.mu.Lock()
	s.bufs[s.objectKey(name)] = &bytes.Buffer{}
	s.mu.Unlock()
	return s.put(ctx, name, nil)
}

func (s *S3Sink) Append(ctx context.Context, name, content string) error {
	key := s.objectKey(name)
	s.mu.Lock()
	buf, ok := s.bufs[key]
	if !ok {
		buf = &bytes.Buffer{}
		s.bufs[key] = buf
	}
	buf.WriteString(content)
	snapshot := append([]byte(nil), buf.Bytes()...)
	s.mu.Unlock()
	return s.put(ctx, name, snapshot)
}

func (s *S3Sink) put(ctx context.Context, name string, content []byte) error {
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	if content == nil {
		content = []byte{}
	}
	_, err := s.client.PutObject(ctx, s.bucketName, s.objectKey(name), bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", s.Location(name), err)
	}
	return nil
}
