// Package archive stores the raw place detail payloads fetched during
// ingestion in an S3 bucket.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/7lsnyc/notaryfindernow2/internal/places"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archive writes one JSON object per place detail.
type S3Archive struct {
	client putObjectAPI
	bucket string
	prefix string
}

// NewS3Archive loads the default AWS configuration and targets bucket.
func NewS3Archive(ctx context.Context, bucket, prefix string) (*S3Archive, error) {
	if bucket == "" {
		return nil, fmt.Errorf("archive bucket must not be empty")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		Credentials:  cfg.Credentials,
		HTTPClient:   cfg.HTTPClient,
		BaseEndpoint: cfg.BaseEndpoint,
		UsePathStyle: true,
	})
	return newS3Archive(client, bucket, prefix), nil
}

func newS3Archive(client putObjectAPI, bucket, prefix string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Put uploads the raw payload of detail under ObjectKey.
func (a *S3Archive) Put(ctx context.Context, city string, detail *places.PlaceDetail) error {
	if len(detail.Raw) == 0 {
		return fmt.Errorf("place %s has no raw payload", detail.ID)
	}

	key := ObjectKey(a.prefix, city, detail.ID)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(detail.Raw),
		ContentType: aws.String("application/json"),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// ObjectKey builds "<prefix>/<city-slug>/<place id>.json".
func ObjectKey(prefix, city, placeID string) string {
	slug := strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(city), "-"), "-")
	if slug == "" {
		slug = "unknown"
	}
	return path.Join(prefix, slug, placeID+".json")
}
