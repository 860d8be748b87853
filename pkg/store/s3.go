package store

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the subset of *s3.Client the store calls.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ClientOptions configures NewS3Client.
type S3ClientOptions struct {
	Region string

	// Endpoint overrides the AWS endpoint, e.g. a MinIO server.
	Endpoint string

	// PathStyle uses http://host/bucket/key addressing.
	PathStyle bool

	// Static credentials. Empty AccessKey means anonymous requests.
	AccessKey string
	SecretKey string
	Session   string
}

// NewS3Client builds an S3 client from explicit options.
func NewS3Client(opts S3ClientOptions) *s3.Client {
	o := s3.Options{
		Region:       opts.Region,
		UsePathStyle: opts.PathStyle,
	}
	if opts.Endpoint != "" {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	}
	if opts.AccessKey != "" {
		creds := aws.Credentials{
			AccessKeyID:     opts.AccessKey,
			SecretAccessKey: opts.SecretKey,
			SessionToken:    opts.Session,
			Source:          "mdom",
		}
		o.Credentials = aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return creds, nil
		})
	} else {
		o.Credentials = aws.AnonymousCredentials{}
	}
	return s3.New(o)
}

// S3Store stores documents as objects under a bucket prefix.
//
// Example usage:
//
//	client := store.NewS3Client(store.S3ClientOptions{Region: "eu-west-1"})
//	docs := store.NewS3Store(client, "my-bucket", "pages/")
//	data, err := docs.Load(ctx, "index.html")
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store creates a new S3 document store.
func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key for a document name.
func (s *S3Store) Key(name string) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	return s.prefix + clean, nil
}

// Load implements Store.
func (s *S3Store) Load(ctx context.Context, name string) ([]byte, error) {
	key, err := s.Key(name)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, notFound(name)
		}
		return nil, ioFailed("get "+s.bucket+"/"+key, name, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, ioFailed("read "+s.bucket+"/"+key, name, err)
	}
	return data, nil
}

// Save implements Store.
func (s *S3Store) Save(ctx context.Context, name string, data []byte) error {
	key, err := s.Key(name)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"document": name,
			"saved-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return ioFailed("put "+s.bucket+"/"+key, name, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if stderrors.As(err, &nsk) {
		return true
	}
	var api smithy.APIError
	if stderrors.As(err, &api) {
		switch api.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
