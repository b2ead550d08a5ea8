package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/domain/generation"
	"moodcanvas-server/internal/utils/imageid"
)

// S3Storage writes generated images to an S3-compatible bucket under the
// same key prefix the local backend uses on disk.
type S3Storage struct {
	bucket  string
	baseURL string
	client  *s3.Client
	log     zerolog.Logger
}

func NewS3Storage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*S3Storage, error) {
	logger := log.With().Str("component", "s3-storage").Logger()
	sc := cfg.Storage

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(sc.S3Region)}
	if strings.TrimSpace(sc.S3AccessKey) != "" && strings.TrimSpace(sc.S3SecretKey) != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(sc.S3AccessKey, sc.S3SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = sc.S3UsePathStyle
		if sc.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(sc.S3Endpoint)
		}
	})

	baseURL := strings.TrimRight(strings.TrimSpace(sc.PublicBaseURL), "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", sc.S3Bucket, sc.S3Region)
	}

	logger.Info().Str("bucket", sc.S3Bucket).Str("endpoint", sc.S3Endpoint).Msg("s3 storage initialized")
	return &S3Storage{bucket: sc.S3Bucket, baseURL: baseURL, client: client, log: logger}, nil
}

func (s *S3Storage) Save(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	if !imageid.IsGenerated(filename) {
		return "", errInvalidFilename
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey(filename)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.URL(filename), nil
}

func (s *S3Storage) Delete(ctx context.Context, filename string) error {
	if !imageid.IsGenerated(filename) {
		return errInvalidFilename
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(filename)),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// List pages through every generated image under the key prefix.
func (s *S3Storage) List(ctx context.Context) ([]string, error) {
	var names []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(generation.GeneratedImagesDir + "/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			name := path.Base(aws.ToString(obj.Key))
			if imageid.IsGenerated(name) {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

func (s *S3Storage) URL(filename string) string {
	return s.baseURL + "/" + objectKey(filename)
}

// Health performs a HeadBucket request.
func (s *S3Storage) Health(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

func objectKey(filename string) string {
	return generation.GeneratedImagesDir + "/" + filename
}
