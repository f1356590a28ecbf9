package assetstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // local filesystem driver
	_ "gocloud.dev/blob/gcsblob"  // GCS driver
	_ "gocloud.dev/blob/memblob"  // in-memory driver, used by tests
	_ "gocloud.dev/blob/s3blob"   // S3 driver
)

// StoredObject describes the outcome of a Put.
type StoredObject struct {
	Key       string
	SizeBytes int64
	MimeType  string
	Checksum  string
}

// Assetstore stores raw file bytes under opaque keys. Which backend
// serves it is decided by the bucket URL (s3://, gs://, file://,
// mem://).
//
//go:generate mockgen -source=assetstore.go -destination=../mocks/assetstore.go -package=mocks -mock_names=Assetstore=MockAssetstore
type Assetstore interface {
	// Put stores data under key, returning detected mime type,
	// size and SHA-256 checksum
	Put(ctx context.Context, key string, data []byte) (*StoredObject, error)
	// Fetch reads the full object stored under key
	Fetch(ctx context.Context, key string) ([]byte, error)
	// Delete removes the object stored under key
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is stored under key
	Exists(ctx context.Context, key string) (bool, error)
	// Close releases the bucket connection
	Close() error
}

type blobStore struct {
	bucket *blob.Bucket
	url    string
}

// Open opens a bucket-backed assetstore from a gocloud bucket URL.
func Open(ctx context.Context, bucketURL string) (Assetstore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", bucketURL, err)
	}
	return &blobStore{bucket: bucket, url: bucketURL}, nil
}

func (s *blobStore) Put(ctx context.Context, key string, data []byte) (*StoredObject, error) {
	mime := mimetype.Detect(data)
	sum := sha256.Sum256(data)

	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: mime.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("create writer for %s: %w", key, err)
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("write data to %s: %w", key, err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close writer for %s: %w", key, err)
	}

	return &StoredObject{
		Key:       key,
		SizeBytes: int64(len(data)),
		MimeType:  mime.String(),
		Checksum:  hex.EncodeToString(sum[:]),
	}, nil
}

func (s *blobStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("create reader for %s: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read data from %s: %w", key, err)
	}
	return data, nil
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *blobStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.bucket.Exists(ctx, key)
}

func (s *blobStore) Close() error {
	if s.bucket != nil {
		return s.bucket.Close()
	}
	return nil
}
