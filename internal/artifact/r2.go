package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"smartcart/internal/recommend"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Store keeps artifact bundles in S3-compatible object storage, one
// object per snapshot.
type R2Store struct {
	client *s3.Client
	bucket string
}

func NewR2Store(ctx context.Context) (*R2Store, error) {
	endpoint := os.Getenv("R2_ENDPOINT")
	accessKey := os.Getenv("R2_ACCESS_KEY")
	secretKey := os.Getenv("R2_SECRET_KEY")
	bucket := os.Getenv("R2_BUCKET_NAME")

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				accessKey,
				secretKey,
				"",
			),
		),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					if service == s3.ServiceID {
						return aws.Endpoint{
							URL:           endpoint,
							SigningRegion: "auto",
						}, nil
					}
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				},
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &R2Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

// BundleKey is the object key for a snapshot's bundle.
func BundleKey(snapshotID string) string {
	return fmt.Sprintf("bundles/%s.json", snapshotID)
}

// SaveBundle serializes the snapshot and uploads it. Implements
// recommend.BundleStore.
func (r *R2Store) SaveBundle(ctx context.Context, m *recommend.Model) (string, error) {
	data, err := FromModel(m).Encode()
	if err != nil {
		return "", err
	}

	key := BundleKey(m.SnapshotID)
	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &r.bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("upload bundle: %w", err)
	}
	return key, nil
}

// LoadBundle downloads and decodes the bundle for a snapshot.
func (r *R2Store) LoadBundle(ctx context.Context, snapshotID string) (*Bundle, error) {
	key := BundleKey(snapshotID)
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &r.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("download bundle: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	return Decode(data)
}
