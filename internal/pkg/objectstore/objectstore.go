// Package objectstore archives uploaded media in an S3-compatible bucket.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appcfg "github.com/moodify/core/internal/config"
)

// Store puts objects and returns the key they were stored under.
type Store interface {
	Put(ctx context.Context, key string, payload []byte, contentType string) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores objects with the AWS SDK. Works with MinIO and R2 through a custom endpoint.
type S3 struct {
	api    putObjectAPI
	bucket string
	prefix string
}

func NewS3(opts appcfg.S3Options) (*S3, error) {
	if opts.Bucket == "" || opts.AccessKeyID == "" || opts.SecretAccessKey == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket/access_key_id/secret_access_key are required")
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}

	endpoint := opts.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	// Custom endpoints are almost always MinIO-style and need path addressing.
	pathStyle := opts.PathStyleAccess || endpoint != ""

	cfg := aws.Config{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = pathStyle
	})

	return &S3{api: client, bucket: opts.Bucket, prefix: opts.Prefix}, nil
}

func (s *S3) Put(ctx context.Context, key string, payload []byte, contentType string) (string, error) {
	objectKey := s.objectKey(key)
	if objectKey == "" {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(payload),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(payload))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", objectKey, err)
	}
	return objectKey, nil
}

func (s *S3) objectKey(key string) string {
	cleaned := strings.TrimLeft(path.Clean("/"+strings.TrimSpace(key)), "/")
	if cleaned == "" || cleaned == "." {
		return ""
	}
	if s.prefix == "" {
		return cleaned
	}
	return s.prefix + "/" + cleaned
}
