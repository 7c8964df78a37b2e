package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultStreamSuffixes are the object name endings S3ListStreams accepts when none are given.
var DefaultStreamSuffixes = []string{".hex", ".txt", ".hex.gz", ".hex.zst", ".hex.lz4", ".hex.br", ".hex.sz", ".hex.snappy"}

// S3ListStreams expands s3://bucket/prefix into the s3:// URIs of every matching
// object, in listing order.
func S3ListStreams(ctx context.Context, cli *s3.Client, uri string, suffixes ...string) ([]string, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return nil, fmt.Errorf("not an s3 uri: %q", uri)
	}
	bucket, prefix, _ := strings.Cut(rest, "/")
	if len(suffixes) == 0 {
		suffixes = DefaultStreamSuffixes
	}
	keys, err := S3ListKeys(ctx, cli, bucket, prefix, suffixes...)
	if err != nil {
		return nil, err
	}
	uris := make([]string, len(keys))
	for i, k := range keys {
		uris[i] = "s3://" + bucket + "/" + k
	}
	return uris, nil
}

// S3ListKeys returns object keys for a bucket/prefix, optionally filtered by suffix.
func S3ListKeys(ctx context.Context, cli *s3.Client, bucket, prefix string, suffixes ...string) ([]string, error) {
	if cli == nil {
		return nil, fmt.Errorf("s3 client is required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	var keys []string
	p := s3.NewListObjectsV2Paginator(cli, &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(1000),
	})
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", bucket, prefix, err)
		}
		for _, o := range out.Contents {
			k := aws.ToString(o.Key)
			if len(suffixes) == 0 || hasSuffixFold(k, suffixes) {
				keys = append(keys, k)
			}
		}
	}
	return keys, nil
}

func hasSuffixFold(key string, suffixes []string) bool {
	lower := strings.ToLower(key)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
