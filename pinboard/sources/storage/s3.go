package storage

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"

	"pinboard/pinboard/config"
	"pinboard/pinboard/utils/logging"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// S3Client uploads to any S3-compatible endpoint (AWS, Cloudflare R2, ...).
type S3Client struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Client(ctx context.Context, cfg config.Config) (*S3Client, error) {
	httpClient := &http.Client{Transport: &http.Transport{
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	}}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithHTTPClient(httpClient),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")),
		awsconfig.WithRegion(cfg.S3Region),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})
	return &S3Client{client: client, bucket: cfg.S3Bucket, publicURL: cfg.PublicURL}, nil
}

func (c *S3Client) Upload(ctx context.Context, ownerID uuid.UUID, filename, contentType string, body io.Reader, size int64) (string, error) {
	key := ObjectKey(ownerID, filename)
	obj, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", err
	}
	logging.AppLogger.Info("image uploaded",
		zap.String("driver", "s3"),
		zap.String("key", key),
		zap.String("etag", aws.ToString(obj.ETag)),
	)
	return PublicURL(c.publicURL, key), nil
}
