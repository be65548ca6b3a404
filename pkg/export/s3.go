package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the part of the S3 client the uploader needs
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures NewS3Uploader. Credentials fall back to the default
// AWS chain when AccessKeyID is empty.
type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string // S3-compatible endpoint, e.g. MinIO
	AccessKeyID     string
	SecretAccessKey string
}

var ErrNoBucket = errors.New("s3 bucket not set")

// S3Uploader copies exported documents to a bucket
type S3Uploader struct {
	client PutObjectAPI
	bucket string
}

// NewS3Uploader builds an uploader from the shared AWS configuration
func NewS3Uploader(ctx context.Context, opts S3Options) (*S3Uploader, error) {
	if opts.Bucket == "" {
		return nil, ErrNoBucket
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3UploaderWithClient(client, opts.Bucket), nil
}

// NewS3UploaderWithClient wraps an existing client
func NewS3UploaderWithClient(client PutObjectAPI, bucket string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket}
}

// Upload stores body under key
func (u *S3Uploader) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", u.bucket, key, err)
	}
	return nil
}

// UploadFile uploads a file written by Write under key
func (u *S3Uploader) UploadFile(ctx context.Context, key, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	if err := u.Upload(ctx, key, data, ContentType(path)); err != nil {
		return 0, err
	}
	return len(data), nil
}

// ContentType returns the MIME type for an exported file name
func ContentType(path string) string {
	format, compressed := FormatFromPath(path)
	switch {
	case compressed:
		return "application/x-snappy-framed"
	case format == FormatYAML:
		return "application/yaml"
	default:
		return "application/json"
	}
}
