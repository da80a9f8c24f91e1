package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iam-policy-generator/internal/config"
)

// Sink receives rendered policy documents
type Sink interface {
	// Write stores body. A non-empty name overrides the sink's configured
	// path or object key.
	Write(ctx context.Context, name string, body []byte) error
}

// StdoutSink writes documents to a writer, normally os.Stdout
type StdoutSink struct {
	w io.Writer
}

// NewStdoutSink creates a sink writing to w
func NewStdoutSink(w io.Writer) *StdoutSink {
	return &StdoutSink{w: w}
}

func (s *StdoutSink) Write(_ context.Context, _ string, body []byte) error {
	if _, err := s.w.Write(body); err != nil {
		return fmt.Errorf("failed to write policy: %w", err)
	}
	return nil
}

// FileSink writes documents to a local file
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to path
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Write(_ context.Context, name string, body []byte) error {
	path := s.path
	if name != "" {
		path = name
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("failed to write policy file: %w", err)
	}
	return nil
}

// ApplyDestination points cfg at out, which is "-" for stdout,
// s3://bucket/key for S3, or a local file path. An empty out keeps cfg.
func ApplyDestination(cfg *config.OutputConfig, out string) error {
	switch {
	case out == "":
		return nil
	case out == "-":
		cfg.Destination = "stdout"
	case strings.HasPrefix(out, "s3://"):
		bucket, key, _ := strings.Cut(strings.TrimPrefix(out, "s3://"), "/")
		if bucket == "" || key == "" {
			return fmt.Errorf("invalid s3 destination %q: want s3://bucket/key", out)
		}
		cfg.Destination = "s3"
		cfg.Bucket = bucket
		cfg.Key = key
	default:
		cfg.Destination = "file"
		cfg.FilePath = out
	}
	return nil
}

// NewSink builds the sink selected by cfg.Output.Destination
func NewSink(ctx context.Context, cfg *config.GeneratorConfig) (Sink, error) {
	switch cfg.Output.Destination {
	case "", "stdout":
		return NewStdoutSink(os.Stdout), nil
	case "file":
		if cfg.Output.FilePath == "" {
			return nil, fmt.Errorf("file destination requires output.filePath")
		}
		return NewFileSink(cfg.Output.FilePath), nil
	case "s3":
		if cfg.Output.Bucket == "" || cfg.Output.Key == "" {
			return nil, fmt.Errorf("s3 destination requires output.bucket and output.key")
		}
		client, err := NewS3Client(ctx, &cfg.AWS)
		if err != nil {
			return nil, err
		}
		return NewS3Sink(client, cfg.Output.Bucket, cfg.Output.Key, ContentType(cfg.Output.Format)), nil
	default:
		return nil, fmt.Errorf("unsupported output destination: %s", cfg.Output.Destination)
	}
}
