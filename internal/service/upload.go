package service

import (
	"context"
	"fmt"
	"io"
	"time"

	a "bilelaskri123/shop-api/aws"
	"bilelaskri123/shop-api/pkg/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const minMultipartSize = 12 << 20

type Uploader struct {
	S3 *a.S3Client
}

func NewUploader(s *a.S3Client) *Uploader {
	return &Uploader{
		S3: s,
	}
}

// Do pushes a validated image to S3 under a fresh random key and
// returns that key
func (u *Uploader) Do(f io.Reader, size int64, contentType string) (string, error) {
	key := util.RandStr(16)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(time.Minute))
	defer cancel()

	objectInput := &s3.PutObjectInput{
		Bucket:        u.S3.Bucket,
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	}

	var err error
	if size > minMultipartSize {
		uploader := manager.NewUploader(u.S3.C, func(u *manager.Uploader) {
			u.Concurrency = 5
			u.PartSize = 6 << 20
		})

		_, err = uploader.Upload(ctx, objectInput)
	} else {
		_, err = u.S3.C.PutObject(ctx, objectInput)
	}
	if err != nil {
		return "", fmt.Errorf("failed to upload image to s3, %w", err)
	}

	return key, nil
}

// Fetch streams an object back. The caller owns the body
func (u *Uploader) Fetch(ctx context.Context, key string) (*s3.GetObjectOutput, error) {
	return u.S3.C.GetObject(ctx, &s3.GetObjectInput{
		Bucket: u.S3.Bucket,
		Key:    aws.String(key),
	})
}

func (u *Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.S3.C.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: u.S3.Bucket,
		Key:    aws.String(key),
	})

	return err
}
