// File: /storage/r2.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2UploaderConfig carries the Cloudflare R2 account settings. PublicBaseURL
// is the custom domain or CDN host the bucket is served from.
type R2UploaderConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

func (c R2UploaderConfig) validate() error {
	switch {
	case c.AccountID == "":
		return errors.New("r2: account id is required")
	case c.AccessKeyID == "" || c.SecretAccessKey == "":
		return errors.New("r2: access credentials are required")
	case c.BucketName == "":
		return errors.New("r2: bucket name is required")
	case c.PublicBaseURL == "":
		return errors.New("r2: public base URL is required")
	}
	return nil
}

func (c R2UploaderConfig) endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
}

type r2Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL *url.URL
}

// NewR2Uploader builds a FileUploader over R2's S3-compatible API.
func NewR2Uploader(cfg R2UploaderConfig) (FileUploader, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(cfg.PublicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("r2: invalid public base URL %q: %w", cfg.PublicBaseURL, err)
	}

	sdkCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("r2: failed to load client config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.endpoint())
	})

	return &r2Uploader{client: client, bucket: cfg.BucketName, baseURL: base}, nil
}

func (u *r2Uploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	out, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("r2: upload of %q failed: %w", key, err)
	}

	return &UploadResult{
		Key:      key,
		Location: u.GetPublicURL(key),
		// S3-compatible APIs quote the ETag
		ETag: strings.Trim(aws.ToString(out.ETag), `"`),
	}, nil
}

func (u *r2Uploader) Delete(ctx context.Context, key string) error {
	if _, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("r2: delete of %q failed: %w", key, err)
	}
	return nil
}

func (u *r2Uploader) GetPublicURL(key string) string {
	if key == "" {
		return ""
	}
	ref, err := url.Parse(strings.TrimPrefix(key, "/"))
	if err != nil {
		return ""
	}
	return u.baseURL.ResolveReference(ref).String()
}
