// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage_test

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gravadora/internal/platform/storage"
)

func newStore(t *testing.T) *storage.S3 {
	t.Helper()

	store, err := storage.NewS3(context.Background(), storage.Options{
		Bucket:          "docs",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return store
}

/*
TestPresign signs URLs locally without contacting the endpoint.
*/
func TestPresign(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	// 1. Upload URL is path-style against the custom endpoint
	putURL, err := store.PresignPut(ctx, "documentos/contrato.pdf", "application/pdf", 1024)
	require.NoError(t, err)

	parsed, err := url.Parse(putURL)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", parsed.Host)
	assert.Equal(t, "/docs/documentos/contrato.pdf", parsed.Path)
	assert.NotEmpty(t, parsed.Query().Get("X-Amz-Signature"))

	// 2. Download URL carries the attachment filename
	getURL, err := store.PresignGet(ctx, "documentos/contrato.pdf", "Contrato.pdf")
	require.NoError(t, err)

	parsed, err = url.Parse(getURL)
	require.NoError(t, err)
	assert.Contains(t, parsed.Query().Get("response-content-disposition"), "Contrato.pdf")
}

/*
TestNewS3_RequiresBucket rejects an empty bucket.
*/
func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := storage.NewS3(context.Background(), storage.Options{Region: "auto"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
