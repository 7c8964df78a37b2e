package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri %q must name a bucket and key", uri)
	}
	return bucket, key, nil
}

func openS3(ctx context.Context, bucket, key string, cfg *OpenConfig) (*Stream, error) {
	cli := cfg.S3Client
	if cli == nil {
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		cli = s3.NewFromConfig(awsCfg)
	}

	out, err := cli.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}

	s := &Stream{
		ReadCloser: out.Body,
		Name:       "s3://" + bucket + "/" + key,
		Size:       aws.ToInt64(out.ContentLength),
	}
	if out.ContentLength == nil {
		s.Size = -1
	}
	if cfg.Compression == nil && CompressionForName(key) == CompressNone &&
		out.ContentEncoding != nil && strings.EqualFold(*out.ContentEncoding, "gzip") {
		gz := CompressGzip
		cfg.Compression = &gz
	}
	return finish(s, cfg)
}
