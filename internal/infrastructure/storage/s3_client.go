package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	storageport "github.com/marcos-nsantos/imgpipe/internal/adapter/storage"
	"github.com/marcos-nsantos/imgpipe/internal/domain"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/config"
)

// s3API is the subset of *s3.Client used here.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	s3.ListObjectsV2APIClient
}

type S3Storage struct {
	client       s3API
	presigner    *s3.PresignClient
	bucket       string
	region       string
	endpoint     string
	publicURL    string
	acl          string
	cacheControl string
}

func NewS3Storage(cfg config.S3Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	client := s3.New(s3.Options{}, opts...)

	s := newS3Storage(client, cfg)
	s.presigner = s3.NewPresignClient(client)
	return s, nil
}

func newS3Storage(client s3API, cfg config.S3Config) *S3Storage {
	return &S3Storage{
		client:       client,
		bucket:       cfg.Bucket,
		region:       cfg.Region,
		endpoint:     strings.TrimSuffix(cfg.Endpoint, "/"),
		publicURL:    strings.TrimSuffix(cfg.PublicURL, "/"),
		acl:          cfg.ObjectACL,
		cacheControl: cfg.CacheControl,
	}
}

// Upload puts the file at localPath under key and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, key, localPath, contentType string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("opening upload file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("reading upload file: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(info.Size()),
	}
	if s.cacheControl != "" {
		input.CacheControl = aws.String(s.cacheControl)
	}
	if s.acl != "" {
		input.ACL = types.ObjectCannedACL(s.acl)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", &domain.StorageError{Op: "put", Key: key, Err: err}
	}

	return s.GetURL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return &domain.StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// List returns every object under prefix, following continuation tokens.
func (s *S3Storage) List(ctx context.Context, prefix string) ([]storageport.ObjectInfo, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	objects := make([]storageport.ObjectInfo, 0)
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &domain.StorageError{Op: "list", Key: prefix, Err: err}
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			objects = append(objects, storageport.ObjectInfo{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				ETag:         strings.Trim(aws.ToString(obj.ETag), `"`),
				LastModified: aws.ToTime(obj.LastModified),
				URL:          s.GetURL(key),
			})
		}
	}

	return objects, nil
}

func (s *S3Storage) GetURL(key string) string {
	key = escapeKey(key)
	switch {
	case s.publicURL != "":
		return fmt.Sprintf("%s/%s", s.publicURL, key)
	case s.endpoint != "":
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	case s.region != "" && s.region != "us-east-1":
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	default:
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	}
}

// escapeKey percent-encodes each segment of key, keeping the separators.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func (s *S3Storage) GetSignedURL(key string, expiry time.Duration) (string, error) {
	if s.presigner == nil {
		return "", fmt.Errorf("presigning not configured")
	}

	presignResult, err := s.presigner.PresignGetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return "", &domain.StorageError{Op: "presign", Key: key, Err: err}
	}
	return presignResult.URL, nil
}
