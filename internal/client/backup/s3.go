// Package backup copies the encrypted vault file to and from an S3-compatible
// object store (MinIO in development). The vault is uploaded as-is: entries
// are already ciphertext and the salt is not secret, so the backup is exactly
// as safe as the local file.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/natefinch/atomic"

	"passkeeper/internal/client/config"
)

// api is the subset of the S3 client the backup needs. Tests substitute a
// stub through newObjectAPI.
type api interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// newObjectAPI is a test seam for S3 client construction.
var newObjectAPI = func(ctx context.Context, cfg *config.Config) (api, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

type Client struct {
	config *config.Config
}

func NewClient(cfg *config.Config) *Client {
	return &Client{config: cfg}
}

// objectKey is the vault's name within the bucket.
func (c *Client) objectKey() string {
	return filepath.Base(c.config.VaultPath)
}

// Upload sends the current vault file to the configured bucket. A vault that
// does not exist yet is an error; there is nothing to back up.
func (c *Client) Upload(ctx context.Context) error {
	f, err := os.Open(c.config.VaultPath)
	if err != nil {
		return fmt.Errorf("opening vault file: %w", err)
	}
	defer f.Close()

	client, err := newObjectAPI(ctx, c.config)
	if err != nil {
		return err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.config.S3Bucket),
		Key:    aws.String(c.objectKey()),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("uploading vault: %w", err)
	}
	return nil
}

// Download fetches the backed-up vault and replaces the local file with a
// single atomic rename, so an interrupted restore never truncates the vault.
func (c *Client) Download(ctx context.Context) error {
	client, err := newObjectAPI(ctx, c.config)
	if err != nil {
		return err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.config.S3Bucket),
		Key:    aws.String(c.objectKey()),
	})
	if err != nil {
		return fmt.Errorf("downloading vault: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return fmt.Errorf("reading vault backup: %w", err)
	}

	if err := atomic.WriteFile(c.config.VaultPath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing vault file: %w", err)
	}
	return nil
}
