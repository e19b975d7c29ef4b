// Package storage archives generated files outside the process.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Archiver stores a copy of a generated file and returns its key.
type Archiver interface {
	Archive(ctx context.Context, name, contentType string, data []byte) (string, error)
}

type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string
	Prefix   string
}

// putObjectAPI is the slice of the S3 client the archiver needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archiver struct {
	client putObjectAPI
	bucket string
	prefix string
}

// NewS3Archiver loads the default AWS credential chain. Region and Endpoint
// override what the environment provides; the endpoint is addressed
// path-style so MinIO and LocalStack work.
func NewS3Archiver(ctx context.Context, cfg S3Config) (*S3Archiver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("export archive bucket is required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	opts := s3.Options{
		Region:       awsCfg.Region,
		Credentials:  awsCfg.Credentials,
		HTTPClient:   awsCfg.HTTPClient,
		BaseEndpoint: awsCfg.BaseEndpoint,
		UsePathStyle: true,
	}
	if cfg.Region != "" {
		opts.Region = cfg.Region
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	return newS3Archiver(s3.New(opts), cfg), nil
}

func newS3Archiver(client putObjectAPI, cfg S3Config) *S3Archiver {
	return &S3Archiver{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}
}

func (a *S3Archiver) Archive(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := path.Join(a.prefix, name)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

// MemoryArchiver keeps archived files in memory. Tests and the memory
// storage driver use it.
type MemoryArchiver struct {
	mu    sync.Mutex
	Files map[string][]byte
}

func NewMemoryArchiver() *MemoryArchiver {
	return &MemoryArchiver{Files: make(map[string][]byte)}
}

func (a *MemoryArchiver) Archive(_ context.Context, name, _ string, data []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Files[name] = append([]byte(nil), data...)
	return name, nil
}

func (a *MemoryArchiver) Get(name string) ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	data, ok := a.Files[name]
	return data, ok
}
