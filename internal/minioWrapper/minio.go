package minioWrapper

import (
	"bytes"
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioClientWrapper struct {
	DefaultBucket string
	Client        *minio.Client
}

// NewMinioConnection Set up minio and initialize client
func NewMinioConnection(port int, address, secretKey, accessKey string, region string, ssl bool, defaultBucket string) (MinioClientWrapper, error) {

	var endpoint string
	if port == 0 {
		endpoint = address
	} else {
		endpoint = fmt.Sprintf("%s:%d", address, port)
	}

	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: ssl,
	}
	if region == "" {
		log.Debug("no region set")
	} else {
		opts.Region = region
	}

	minioClient, err := minio.New(endpoint, opts)
	return MinioClientWrapper{Client: minioClient, DefaultBucket: defaultBucket}, err
}

// SetupBucket creates the default bucket when it does not exist yet
func (m *MinioClientWrapper) SetupBucket(ctx context.Context) error {
	if exists, err := m.Client.BucketExists(ctx, m.DefaultBucket); err != nil {
		return err
	} else if !exists {
		log.Debug("bucket ", m.DefaultBucket, " not found, creating it")
		if err := m.Client.MakeBucket(ctx, m.DefaultBucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	return m.ValidateBucket(ctx)
}

// ValidateBucket checks that the default bucket is reachable
func (m *MinioClientWrapper) ValidateBucket(ctx context.Context) error {
	if m.DefaultBucket == "" {
		return fmt.Errorf("no bucket configured")
	}
	if exists, err := m.Client.BucketExists(ctx, m.DefaultBucket); err != nil {
		return err
	} else if !exists {
		return fmt.Errorf("bucket %s does not exist, run with --setup to create it", m.DefaultBucket)
	}
	return nil
}

// PutBlob stores data under objectName in the default bucket
func (m *MinioClientWrapper) PutBlob(ctx context.Context, objectName, contentType string, data []byte) error {
	_, err := m.Client.PutObject(ctx, m.DefaultBucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", objectName, err)
	}
	log.Info("uploaded ", objectName, " to bucket ", m.DefaultBucket)
	return nil
}
