// Package testutils provides fixtures and container-backed environments for
// integration tests.
package testutils

import (
	"bytes"
	"context"
	"fmt"
	"time"

	minioClient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/minio"
	redisModule "github.com/testcontainers/testcontainers-go/modules/redis"

	"thesis-gallery/internal/config"
	"thesis-gallery/internal/platform/keystore"
	"thesis-gallery/internal/platform/source"
)

const (
	testBucket        = "test-gallery"
	testCatalogObject = "images.json"
)

// TestContainers manages the MinIO and Valkey containers integration tests
// run against.
type TestContainers struct {
	MinioContainer testcontainers.Container
	RedisContainer testcontainers.Container

	MinioEndpoint string
	MinioUsername string
	MinioPassword string
	RedisEndpoint string

	KeyStore *keystore.Redis
}

// SetupTestContainers starts both containers and connects clients.
func SetupTestContainers(ctx context.Context) (*TestContainers, error) {
	containers := &TestContainers{
		MinioUsername: "testuser",
		MinioPassword: "testpass123",
	}

	if err := containers.setupMinio(ctx); err != nil {
		return nil, fmt.Errorf("failed to setup minio container: %w", err)
	}

	if err := containers.setupRedis(ctx); err != nil {
		containers.Cleanup(ctx)
		return nil, fmt.Errorf("failed to setup redis container: %w", err)
	}

	return containers, nil
}

func (tc *TestContainers) setupMinio(ctx context.Context) error {
	minioContainer, err := minio.Run(ctx,
		"minio/minio:latest",
		minio.WithUsername(tc.MinioUsername),
		minio.WithPassword(tc.MinioPassword),
	)
	if err != nil {
		return fmt.Errorf("failed to start minio container: %w", err)
	}
	tc.MinioContainer = minioContainer

	endpoint, err := minioContainer.ConnectionString(ctx)
	if err != nil {
		return fmt.Errorf("failed to get minio endpoint: %w", err)
	}
	tc.MinioEndpoint = endpoint

	client, err := minioClient.New(endpoint, &minioClient.Options{
		Creds:  credentials.NewStaticV4(tc.MinioUsername, tc.MinioPassword, ""),
		Secure: false,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, testBucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, testBucket, minioClient.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create test bucket: %w", err)
		}
	}
	return nil
}

// setupRedis starts a Valkey container (Redis-compatible) and connects the
// keystore client.
func (tc *TestContainers) setupRedis(ctx context.Context) error {
	redisContainer, err := redisModule.Run(ctx,
		"valkey/valkey:7-alpine",
		redisModule.WithSnapshotting(10, 1),
	)
	if err != nil {
		return fmt.Errorf("failed to start valkey container: %w", err)
	}
	tc.RedisContainer = redisContainer

	endpoint, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		return fmt.Errorf("failed to get valkey endpoint: %w", err)
	}
	tc.RedisEndpoint = endpoint

	store, err := keystore.NewRedis(config.CacheConfig{
		Enabled:     true,
		Address:     endpoint,
		DialTimeout: 5 * time.Second,
		DefaultTTL:  time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to create keystore client: %w", err)
	}
	tc.KeyStore = store

	if err := store.Health(ctx); err != nil {
		return fmt.Errorf("failed to connect to valkey: %w", err)
	}
	return nil
}

// SeedCatalog uploads a catalog document into the test bucket and returns a
// Source reading it back, mirroring the production MinIO catalog path.
func (tc *TestContainers) SeedCatalog(ctx context.Context, payload []byte) (source.Source, error) {
	client, err := minioClient.New(tc.MinioEndpoint, &minioClient.Options{
		Creds:  credentials.NewStaticV4(tc.MinioUsername, tc.MinioPassword, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	_, err = client.PutObject(ctx, testBucket, testCatalogObject,
		bytes.NewReader(payload), int64(len(payload)),
		minioClient.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return nil, fmt.Errorf("failed to upload catalog object: %w", err)
	}

	return source.NewMinIOSource(config.StorageConfig{
		Endpoint:        tc.MinioEndpoint,
		AccessKeyID:     tc.MinioUsername,
		SecretAccessKey: tc.MinioPassword,
		BucketName:      testBucket,
		ObjectName:      testCatalogObject,
		UseSSL:          false,
		Region:          "us-east-1",
	})
}

// Cleanup terminates both containers and closes connections.
func (tc *TestContainers) Cleanup(ctx context.Context) error {
	var errs []error

	if tc.KeyStore != nil {
		if err := tc.KeyStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close keystore client: %w", err))
		}
	}
	if tc.RedisContainer != nil {
		if err := tc.RedisContainer.Terminate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to terminate valkey container: %w", err))
		}
	}
	if tc.MinioContainer != nil {
		if err := tc.MinioContainer.Terminate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to terminate minio container: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}
