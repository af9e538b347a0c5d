package store

import (
	"bytes"
	"context"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Uploader struct {
	cl     S3API
	bucket string
	prefix string
}

func NewUploader(cl S3API, bucket, prefix string) *Uploader {
	return &Uploader{cl: cl, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Key joins the configured prefix and name.
func (u *Uploader) Key(name string) string {
	if u.prefix == "" {
		return name
	}
	return path.Join(u.prefix, name)
}

// Put uploads body under prefix/name and returns the full object key.
func (u *Uploader) Put(ctx context.Context, name, contentType string, body []byte) (string, error) {
	key := u.Key(name)
	in := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := u.cl.PutObject(ctx, in); err != nil {
		return "", errors.Wrapf(err, "put s3://%s/%s", u.bucket, key)
	}
	log.Info().Str("bucket", u.bucket).Str("key", key).Int("bytes", len(body)).Msg("artifact uploaded")
	return key, nil
}
