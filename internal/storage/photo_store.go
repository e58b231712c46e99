// Package storage persists uploaded profile photos in an S3-compatible
// object store (AWS S3 or MinIO).
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const photoPrefix = "profile_pic"

// Config carries the object-store connection settings. Endpoint is optional
// and points the client at a MinIO deployment when set. PublicBaseURL is the
// address photos are served from and forms the stored profile_photo URL.
type Config struct {
	Region        string
	Endpoint      string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// PhotoStore uploads profile photos and derives their public URLs.
type PhotoStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	now           func() time.Time
}

func NewPhotoStore(ctx context.Context, cfg Config) (*PhotoStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &PhotoStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		now:           time.Now,
	}, nil
}

// Store uploads the photo under a timestamped copy of its original name and
// returns the public URL. A later upload with the same second-resolution
// timestamp and name silently overwrites the earlier object.
func (s *PhotoStore) Store(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error) {
	key := s.photoKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}

func (s *PhotoStore) photoKey(filename string) string {
	return fmt.Sprintf("%s/%s - %s", photoPrefix, s.now().Format("20060102150405"), filename)
}
