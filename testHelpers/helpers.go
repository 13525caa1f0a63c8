package testHelpers

import (
	"context"
	"fmt"
	"io"
	"testing"

	minioClient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go/modules/minio"
)

// MinioHandle is a running minio container plus a client connected to it
type MinioHandle struct {
	Container *minio.MinioContainer
	Client    *minioClient.Client
}

// NewMinioHandle starts a minio container from img
func NewMinioHandle(img string) (MinioHandle, error) {
	ctx := context.Background()
	container, err := minio.Run(ctx, img)
	if err != nil {
		return MinioHandle{}, fmt.Errorf("failed to start container: %w", err)
	}
	url, err := container.ConnectionString(ctx)
	if err != nil {
		return MinioHandle{Container: container}, err
	}
	mc, err := minioClient.New(url, &minioClient.Options{
		Creds:  credentials.NewStaticV4(container.Username, container.Password, ""),
		Secure: false,
	})
	return MinioHandle{Container: container, Client: mc}, err
}

// ConnectionStrings returns host:port of the S3 API
func (m MinioHandle) ConnectionStrings() (string, error) {
	return m.Container.ConnectionString(context.Background())
}

// GetBucketObjects lists and reads every object under subDir in bucket
func GetBucketObjects(mc *minioClient.Client, bucket, subDir string) ([]minioClient.ObjectInfo, [][]byte, error) {
	var metadata []minioClient.ObjectInfo
	var objects [][]byte
	objectCh := mc.ListObjects(context.Background(), bucket, minioClient.ListObjectsOptions{Recursive: true, Prefix: subDir})

	for object := range objectCh {
		if object.Err != nil {
			return nil, nil, object.Err
		}
		metadata = append(metadata, object)
		obj, err := mc.GetObject(context.Background(), bucket, object.Key, minioClient.GetObjectOptions{})
		if err != nil {
			return nil, nil, err
		}
		data, err := io.ReadAll(obj)
		obj.Close()
		if err != nil {
			return nil, nil, err
		}
		objects = append(objects, data)
	}

	return metadata, objects, nil
}

func AssertObjectCount(t *testing.T, mc *minioClient.Client, bucket, subDir string, expected int) {
	_, objects, err := GetBucketObjects(mc, bucket, subDir)
	assert.NoError(t, err)
	assert.Equal(t, expected, len(objects))
}
