package blobprovider

import (
	"context"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"io"
	"net/http"
	"oamanager/providers"
)

// S3 stores blobs in a single bucket of an S3-compatible service.
type S3 struct {
	client *s3.Client
	bucket string
}

func NewS3(ctx context.Context, cfg providers.S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return newS3FromConfig(awsCfg, cfg), nil
}

func newS3FromConfig(awsCfg aws.Config, cfg providers.S3Config, optFns ...func(*s3.Options)) *S3 {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		for _, fn := range optFns {
			fn(o)
		}
	})
	return &S3{client: client, bucket: cfg.Bucket}
}

func (s *S3) Driver() string { return DriverS3 }

func (s *S3) Put(ctx context.Context, key string, r io.Reader, contentType string) (providers.BlobInfo, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return providers.BlobInfo{}, err
	}
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &k}); err == nil {
		return providers.BlobInfo{}, fmt.Errorf("blob %s already exists", key)
	}
	input := &s3.PutObjectInput{Bucket: &s.bucket, Key: &k, Body: r}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	out, err := s.client.PutObject(ctx, input)
	if err != nil {
		return providers.BlobInfo{}, fmt.Errorf("failed to put %s: %w", key, err)
	}
	return providers.BlobInfo{Key: k, ContentType: contentType, ETag: aws.ToString(out.ETag)}, nil
}

func (s *S3) Get(ctx context.Context, key string) (providers.BlobInfo, io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if isNotFound(err) {
		return providers.BlobInfo{}, nil, fmt.Errorf("%s: %w", key, providers.ErrBlobNotFound)
	}
	if err != nil {
		return providers.BlobInfo{}, nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return providers.BlobInfo{
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		ETag:         aws.ToString(out.ETag),
		LastModified: aws.ToTime(out.LastModified),
	}, out.Body, nil
}

func (s *S3) Delete(ctx context.Context, key string) (bool, error) {
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return true, nil
}

func isNotFound(err error) bool {
	var status interface{ HTTPStatusCode() int }
	return err != nil && errors.As(err, &status) && status.HTTPStatusCode() == http.StatusNotFound
}
