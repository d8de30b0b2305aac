package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FileSource abstracts where the raw exports live. Fingerprint must change
// whenever the file content changes; it is the cache key for the parsed
// datasets.
type FileSource interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Fingerprint(ctx context.Context, name string) (string, error)
}

// LocalSource reads exports from a directory on disk.
type LocalSource struct {
	dir string
}

// NewLocalSource creates a file source rooted at dir.
func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{dir: dir}
}

func (s *LocalSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return f, nil
}

// Fingerprint derives the cache key from name, size and mtime. Good enough
// for exports that are replaced wholesale, which is how the feeds arrive.
func (s *LocalSource) Fingerprint(_ context.Context, name string) (string, error) {
	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return fmt.Sprintf("%s:%d:%d", name, info.Size(), info.ModTime().UnixNano()), nil
}

// S3Source reads exports from an S3 bucket (or LocalStack when an endpoint
// override is set).
type S3Source struct {
	s3Client *s3.Client
	bucket   string
	prefix   string
}

// NewS3Source creates an S3-backed file source.
// For LocalStack: endpoint should be "http://localhost:4566".
// For production AWS: endpoint should be "".
func NewS3Source(bucket, region, prefix, endpoint string) (*S3Source, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket cannot be empty")
	}
	if region == "" {
		return nil, fmt.Errorf("region cannot be empty")
	}

	ctx := context.Background()

	if endpoint != "" {
		// LocalStack accepts any static credentials
		cfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				"test", "test", "",
			)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client := s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // Required for LocalStack
		})

		return &S3Source{s3Client: client, bucket: bucket, prefix: prefix}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Source{s3Client: s3.NewFromConfig(cfg), bucket: bucket, prefix: prefix}, nil
}

func (s *S3Source) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *S3Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if s.s3Client == nil {
		return nil, fmt.Errorf("s3 client is not initialized")
	}

	result, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s from S3: %w", name, err)
	}
	return result.Body, nil
}

// Fingerprint uses the object ETag, which S3 recomputes on every upload.
func (s *S3Source) Fingerprint(ctx context.Context, name string) (string, error) {
	if s.s3Client == nil {
		return "", fmt.Errorf("s3 client is not initialized")
	}

	result, err := s.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to head %s on S3: %w", name, err)
	}
	return fmt.Sprintf("%s:%s", name, aws.ToString(result.ETag)), nil
}
