package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/inkpress/inkpress/internal/post"
)

// Uploader stores image binaries and hands back an opaque asset reference for
// embedding in a post document. One new asset per call; assets are never
// mutated or reused, only replaced by uploading a fresh one.
type Uploader interface {
	UploadImage(ctx context.Context, r io.Reader, size int64, filenameHint string) (*post.ImageRef, error)
}

// MinIOUploader keeps asset binaries in a MinIO bucket under images/<uuid>.
type MinIOUploader struct {
	client *minio.Client
	bucket string
}

// NewMinIOUploader creates the uploader and ensures the bucket exists.
func NewMinIOUploader(cfg *Config) (*MinIOUploader, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	u := &MinIOUploader{client: mc, bucket: cfg.Bucket}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
		exist, xerr := mc.BucketExists(ctx, u.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return u, nil
}

// UploadImage sniffs the content type from the leading bytes, writes the
// object and returns a reference naming the new asset id.
func (u *MinIOUploader) UploadImage(ctx context.Context, r io.Reader, size int64, filenameHint string) (*post.ImageRef, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read image: %w", err)
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	body := io.MultiReader(bytes.NewReader(head), r)

	id := uuid.NewString()
	key := "images/" + id + path.Ext(filenameHint)
	if _, err := u.client.PutObject(ctx, u.bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return nil, fmt.Errorf("minio put: %w", err)
	}
	return post.NewImageRef("image-" + id), nil
}

// GetPresignedURL returns a time-limited GET URL for a stored asset key.
func (u *MinIOUploader) GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	presigned, err := u.client.PresignedGetObject(ctx, u.bucket, key, expires, nil)
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}
