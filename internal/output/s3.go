package output

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/iam-policy-generator/internal/config"
)

// PutObjectAPI is the subset of the S3 client used by S3Sink
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client creates an S3 client from the AWS settings
func NewS3Client(ctx context.Context, cfg *config.AWSConfig) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Opts := []func(*s3.Options){}

	// LocalStack and other S3-compatible endpoints
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	return s3.NewFromConfig(awsCfg, s3Opts...), nil
}

// S3Sink uploads documents as S3 objects
type S3Sink struct {
	client      PutObjectAPI
	bucket      string
	key         string
	contentType string
}

// NewS3Sink creates a sink uploading to bucket/key
func NewS3Sink(client PutObjectAPI, bucket, key, contentType string) *S3Sink {
	return &S3Sink{
		client:      client,
		bucket:      bucket,
		key:         key,
		contentType: contentType,
	}
}

func (s *S3Sink) Write(ctx context.Context, name string, body []byte) error {
	key := s.key
	if name != "" {
		key = name
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if s.contentType != "" {
		input.ContentType = aws.String(s.contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}
