package main

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeydtaylor/framefit/pkg/builder"
)

// Uploads a gzip compressed capture to LocalStack and decodes it back through
// the s3:// source.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bucket := builder.EnvOr("S3_BUCKET", "framefit-captures")
	cli, err := builder.NewS3ClientStatic(ctx, "us-east-1", "test", "test", builder.EnvOr("S3_ENDPOINT", "http://localhost:4566"), true)
	if err != nil {
		fmt.Printf("s3 client: %v\n", err)
		return
	}
	if _, err := cli.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
		fmt.Printf("create bucket (may already exist): %v\n", err)
	}

	var body bytes.Buffer
	zw, err := builder.NewCompressedWriter(&body, builder.CompressGzip)
	if err != nil {
		fmt.Printf("compressor: %v\n", err)
		return
	}
	for f := 0; f < 100; f++ {
		samples := make([]builder.SampleRecord, builder.SamplesPerFrame)
		for i := range samples {
			for c := 0; c < builder.ChannelsPerGroup; c++ {
				samples[i].Raw[builder.GroupC][c] = uint16(2500 + 3*c + (f+2*i)%13)
			}
		}
		_, _ = zw.Write(builder.EncodeFrame(uint16(f), samples))
	}
	_ = zw.Close()

	key := time.Now().UTC().Format("runs/20060102T150405Z/capture.hex.gz")
	if _, err := cli.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body.Bytes()),
	}); err != nil {
		fmt.Printf("put object: %v\n", err)
		return
	}

	uris, err := builder.S3ListStreams(ctx, cli, "s3://"+bucket+"/runs/")
	if err != nil {
		fmt.Printf("list: %v\n", err)
		return
	}
	fmt.Printf("found %d captures\n", len(uris))

	stream, err := builder.OpenStream(ctx, "s3://"+bucket+"/"+key, builder.OpenWithS3Client(cli))
	if err != nil {
		fmt.Printf("open: %v\n", err)
		return
	}
	defer stream.Close()

	records, err := builder.NewDecoder().DecodeAll(ctx, stream)
	if err != nil {
		fmt.Printf("decode: %v\n", err)
		return
	}
	means := builder.ChannelMeans(records, builder.GroupC)
	fmt.Printf("%d records from %s, group C means %.2f\n", len(records), stream.Name, means)
}
