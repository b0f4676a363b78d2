// Package storage uploads exported résumé files to S3-compatible object storage
// (Supabase Storage, Cloudflare R2, MinIO, AWS S3) and hands out presigned download URLs.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrDisabled is returned when storage is used without being configured.
var ErrDisabled = errors.New("storage is not configured")

// Error represents a storage operation failure.
type Error struct {
	Op      string
	Key     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage %s %s: %s: %v", e.Op, e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("storage %s %s: %s", e.Op, e.Key, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Config holds object storage settings.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PresignTTL is the lifetime of download URLs.
	PresignTTL time.Duration
}

// LoadConfig reads storage settings from STORAGE_* environment variables.
func LoadConfig() *Config {
	cfg := &Config{
		Endpoint:   os.Getenv("STORAGE_ENDPOINT"),
		Region:     os.Getenv("STORAGE_REGION"),
		Bucket:     os.Getenv("STORAGE_BUCKET"),
		AccessKey:  os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey:  os.Getenv("STORAGE_SECRET_KEY"),
		PresignTTL: 15 * time.Minute,
	}
	if cfg.Region == "" {
		cfg.Region = "auto"
	}
	if v := os.Getenv("STORAGE_PRESIGN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.PresignTTL = d
		}
	}
	return cfg
}

// Enabled reports whether enough settings are present to talk to a bucket.
func (c *Config) Enabled() bool {
	return c != nil && c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// Store is an S3 bucket holding exported files.
type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
}

// New creates a Store. It returns ErrDisabled when cfg is not Enabled.
func New(ctx context.Context, cfg *Config) (*Store, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// S3-compatible stores reject or mangle the default flexible checksums
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		ttl:     ttl,
	}, nil
}

// Put uploads data under key.
func (s *Store) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return &Error{Op: "put", Key: key, Message: "failed to upload object", Cause: err}
	}
	return nil
}

// Get downloads the object stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &Error{Op: "get", Key: key, Message: "failed to get object", Cause: err}
	}
	defer func() { _ = out.Body.Close() }()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, &Error{Op: "get", Key: key, Message: "failed to read object body", Cause: err}
	}
	return buf.Bytes(), nil
}

// PresignGet returns a time-limited download URL for key. A zero ttl uses the configured default.
func (s *Store) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", &Error{Op: "presign", Key: key, Message: "failed to presign download", Cause: err}
	}
	return req.URL, nil
}

// ExportKey builds the object key for an exported résumé file:
// exports/<user>/<resume>/<template>-<unix seconds><ext>.
func ExportKey(userID, resumeID, template, ext string, at time.Time) string {
	clean := func(s string) string {
		s = strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
				return r
			}
			return '-'
		}, s)
		if s == "" {
			return "unknown"
		}
		return s
	}
	name := fmt.Sprintf("%s-%d%s", clean(template), at.Unix(), ext)
	return path.Join("exports", clean(userID), clean(resumeID), name)
}
