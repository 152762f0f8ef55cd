package storage

import (
	"bytes"
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apperrors "github.com/innovators-table/followup-assistant/errors"
	"github.com/innovators-table/followup-assistant/pkg/config"
)

// MinIOArchive stores finished booklet artifacts in object storage so
// they stay downloadable after the run record itself expires.
type MinIOArchive struct {
	client *minio.Client
	bucket string
}

// NewMinIOArchive creates the archive client and ensures the bucket
// exists. Booklet artifacts hold attendee contact details, so the
// bucket keeps its default private policy and downloads go through
// presigned URLs.
func NewMinIOArchive(cfg *config.StorageConfig) (*MinIOArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.ErrStorageFailed("create client", err)
	}

	archive := &MinIOArchive{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	if err := archive.ensureBucket(context.Background()); err != nil {
		return nil, err
	}

	return archive, nil
}

func (m *MinIOArchive) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return apperrors.ErrStorageFailed("check bucket", err)
	}

	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return apperrors.ErrStorageFailed("create bucket", err)
		}
	}

	return nil
}

// ArchiveText uploads a text artifact under the given object name.
func (m *MinIOArchive) ArchiveText(ctx context.Context, objectName string, content string) error {
	reader := bytes.NewReader([]byte(content))
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	if err != nil {
		return apperrors.ErrStorageFailed("upload artifact", err)
	}

	return nil
}

// ArtifactURL returns a presigned download URL for an archived artifact.
func (m *MinIOArchive) ArtifactURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", apperrors.ErrStorageFailed("presign artifact", err)
	}

	return url.String(), nil
}

// ListArtifacts lists archived artifacts under a prefix.
func (m *MinIOArchive) ListArtifacts(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, apperrors.ErrStorageFailed("list artifacts", object.Err)
		}
		names = append(names, object.Key)
	}

	return names, nil
}
