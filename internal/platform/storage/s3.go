// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage provides the object store behind /documentos.

Files never pass through the API: clients upload and download directly
against presigned URLs, and the API only keeps the object key.

Any S3-compatible service works (AWS, R2, MinIO). A custom endpoint switches
the client to path-style addressing.
*/
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	// UploadURLTTL bounds how long a presigned PUT stays valid.
	UploadURLTTL = 15 * time.Minute

	// DownloadURLTTL bounds how long a presigned GET stays valid.
	DownloadURLTTL = 5 * time.Minute
)

// Options configures [NewS3].
type Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// S3 issues presigned URLs and deletes objects in a single bucket.
type S3 struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	logger    *slog.Logger
}

// NewS3 loads AWS configuration and builds the client.
//
// Static credentials are used when both keys are set; otherwise the default
// chain applies (environment, shared config, instance role).
func NewS3(ctx context.Context, opts Options, logger *slog.Logger) (*S3, error) {
	if opts.Bucket == "" {
		return nil, errors.New("storage: bucket is required")
	}

	loaders := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("object_storage_configured",
		slog.String("bucket", opts.Bucket),
		slog.String("region", opts.Region),
		slog.Bool("custom_endpoint", opts.Endpoint != ""),
	)

	return &S3{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    opts.Bucket,
		logger:    logger,
	}, nil
}

// PresignPut returns a URL the client can PUT the object body to.
func (store *S3) PresignPut(ctx context.Context, key, contentType string, size int64) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	request, err := store.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(UploadURLTTL))
	if err != nil {
		return "", fmt.Errorf("storage: presign put %s: %w", key, err)
	}
	return request.URL, nil
}

// PresignGet returns a URL that downloads the object as an attachment named filename.
func (store *S3) PresignGet(ctx context.Context, key, filename string) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	}
	if filename != "" {
		input.ResponseContentDisposition = aws.String(
			mime.FormatMediaType("attachment", map[string]string{"filename": filename}),
		)
	}

	request, err := store.presigner.PresignGetObject(ctx, input, s3.WithPresignExpires(DownloadURLTTL))
	if err != nil {
		return "", fmt.Errorf("storage: presign get %s: %w", key, err)
	}
	return request.URL, nil
}

// Delete removes the object. A missing object is not an error.
func (store *S3) Delete(ctx context.Context, key string) error {
	_, err := store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}

// Ping checks that the bucket is reachable with the configured credentials.
func (store *S3) Ping(ctx context.Context) error {
	_, err := store.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(store.bucket),
	})
	if err != nil {
		return fmt.Errorf("storage: head bucket: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
