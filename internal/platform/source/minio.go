package source

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"thesis-gallery/internal/config"
)

// MinIOSource fetches the catalog document from an S3-compatible object
// store.
type MinIOSource struct {
	client     *minio.Client
	bucketName string
	objectName string
}

// NewMinIOSource creates an object-store catalog source with the provided
// configuration.
func NewMinIOSource(cfg config.StorageConfig) (*MinIOSource, error) {
	var creds *credentials.Credentials

	// Use the AWS credentials chain when no static credentials are provided.
	// This supports pod identity, IAM roles, and the AWS credentials file.
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
			&credentials.IAM{},
		})
	} else {
		creds = credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &MinIOSource{
		client:     client,
		bucketName: cfg.BucketName,
		objectName: cfg.ObjectName,
	}, nil
}

func (s *MinIOSource) Fetch(ctx context.Context) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucketName, s.objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: get %s/%s: %v", ErrLoad, s.bucketName, s.objectName, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s/%s: %v", ErrLoad, s.bucketName, s.objectName, err)
	}
	return data, nil
}
