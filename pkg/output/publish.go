package output

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 30 * time.Second

// Destination is a parsed bucket URL such as s3://renders/frame.ppm
type Destination struct {
	Scheme string // "s3" or "gs"
	Bucket string
	Key    string
}

func (d Destination) String() string {
	return d.Scheme + "://" + d.Bucket + "/" + d.Key
}

// ParseDestination parses an s3:// or gs:// object URL
func ParseDestination(dest string) (Destination, error) {
	scheme, rest, ok := strings.Cut(dest, "://")
	if !ok {
		return Destination{}, fmt.Errorf("invalid upload destination %q: missing scheme", dest)
	}
	if scheme != "s3" && scheme != "gs" {
		return Destination{}, fmt.Errorf("invalid upload destination %q: unsupported scheme %q", dest, scheme)
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return Destination{}, fmt.Errorf("invalid upload destination %q: expected %s://bucket/key", dest, scheme)
	}
	return Destination{Scheme: scheme, Bucket: bucket, Key: key}, nil
}

// S3Config holds the connection settings for S3-compatible storage. Empty
// credentials fall back to the SDK's default chain.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Publisher uploads encoded renders to object storage
type Publisher struct {
	s3Config S3Config
	logger   core.Logger
}

// NewPublisher creates a publisher
func NewPublisher(s3Config S3Config, logger core.Logger) *Publisher {
	if logger == nil {
		logger = renderer.NewDefaultLogger()
	}
	return &Publisher{s3Config: s3Config, logger: logger}
}

// Publish uploads data to dest, an s3:// or gs:// URL
func (p *Publisher) Publish(ctx context.Context, dest string, data []byte, contentType string) error {
	d, err := ParseDestination(dest)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	switch d.Scheme {
	case "s3":
		err = p.uploadToS3(ctx, d, data, contentType)
	default:
		err = p.uploadToGCS(ctx, d, data, contentType)
	}
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", d, err)
	}

	p.logger.Printf("Uploaded %s (%d bytes)\n", d, len(data))
	return nil
}

func (p *Publisher) uploadToS3(ctx context.Context, d Destination, data []byte, contentType string) error {
	awsConfig := &aws.Config{S3ForcePathStyle: aws.Bool(true)}
	if p.s3Config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(p.s3Config.AccessKey, p.s3Config.SecretKey, "")
	}
	if p.s3Config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(p.s3Config.Endpoint)
	}
	if p.s3Config.Region != "" {
		awsConfig.Region = aws.String(p.s3Config.Region)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return fmt.Errorf("failed to create S3 session: %w", err)
	}

	_, err = s3.New(sess).PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(d.Bucket),
		Key:           aws.String(d.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	return err
}

func (p *Publisher) uploadToGCS(ctx context.Context, d Destination, data []byte, contentType string) error {
	creds, err := google.FindDefaultCredentials(ctx, storage.ScopeReadWrite)
	if err != nil {
		return err
	}
	client, err := storage.NewClient(ctx, option.WithCredentials(creds))
	if err != nil {
		return err
	}
	defer client.Close()

	wc := client.Bucket(d.Bucket).Object(d.Key).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := io.Copy(wc, bytes.NewReader(data)); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
