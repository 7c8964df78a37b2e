package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// S3ClientConfig describes how to reach the bucket holding recorded streams.
// Credentials are resolved in this order: web identity token, assume role,
// static keys, then the SDK default chain.
type S3ClientConfig struct {
	Region         string
	Endpoint       string // LocalStack/MinIO override; applied to STS too
	ForcePathStyle bool

	AccessKey    string
	SecretKey    string
	SessionToken string

	RoleARN     string
	SessionName string
	ExternalID  string
	Duration    time.Duration

	WebIdentityTokenFile string
}

// S3ClientConfigFromEnv reads FRAMEFIT_S3_* variables. Unset values stay empty.
func S3ClientConfigFromEnv() S3ClientConfig {
	return S3ClientConfig{
		Region:               EnvOr("FRAMEFIT_S3_REGION", EnvOr("AWS_REGION", "")),
		Endpoint:             EnvOr("FRAMEFIT_S3_ENDPOINT", ""),
		ForcePathStyle:       EnvBoolOr("FRAMEFIT_S3_PATH_STYLE", false),
		AccessKey:            EnvOr("FRAMEFIT_S3_ACCESS_KEY", ""),
		SecretKey:            EnvOr("FRAMEFIT_S3_SECRET_KEY", ""),
		SessionToken:         EnvOr("FRAMEFIT_S3_SESSION_TOKEN", ""),
		RoleARN:              EnvOr("FRAMEFIT_S3_ROLE_ARN", ""),
		SessionName:          EnvOr("FRAMEFIT_S3_SESSION_NAME", "framefit"),
		ExternalID:           EnvOr("FRAMEFIT_S3_EXTERNAL_ID", ""),
		Duration:             time.Duration(EnvIntOr("FRAMEFIT_S3_SESSION_SECONDS", 0)) * time.Second,
		WebIdentityTokenFile: EnvOr("FRAMEFIT_S3_WEB_IDENTITY_TOKEN_FILE", ""),
	}
}

// NewS3Client builds an *s3.Client for source.Open from cfg.
func NewS3Client(ctx context.Context, cfg S3ClientConfig) (*s3.Client, error) {
	var sourceCreds aws.CredentialsProvider
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		if cfg.AccessKey == "" || cfg.SecretKey == "" {
			return nil, fmt.Errorf("s3 client: access key and secret key must be set together")
		}
		sourceCreds = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)
	}

	base, err := loadS3BaseConfig(ctx, cfg.Region, cfg.Endpoint, sourceCreds)
	if err != nil {
		return nil, fmt.Errorf("s3 client: load aws config: %w", err)
	}

	switch {
	case cfg.WebIdentityTokenFile != "":
		if cfg.RoleARN == "" {
			return nil, fmt.Errorf("s3 client: web identity requires a role ARN")
		}
		provider := stscreds.NewWebIdentityRoleProvider(
			sts.NewFromConfig(base),
			cfg.RoleARN,
			stscreds.IdentityTokenFile(cfg.WebIdentityTokenFile),
			func(o *stscreds.WebIdentityRoleOptions) {
				if cfg.SessionName != "" {
					o.RoleSessionName = cfg.SessionName
				}
				if cfg.Duration > 0 {
					o.Duration = cfg.Duration
				}
			},
		)
		base.Credentials = aws.NewCredentialsCache(provider)
	case cfg.RoleARN != "":
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(base), cfg.RoleARN, func(o *stscreds.AssumeRoleOptions) {
			if cfg.SessionName != "" {
				o.RoleSessionName = cfg.SessionName
			}
			if cfg.Duration > 0 {
				o.Duration = cfg.Duration
			}
			if cfg.ExternalID != "" {
				o.ExternalID = aws.String(cfg.ExternalID)
			}
		})
		base.Credentials = aws.NewCredentialsCache(provider)
	}

	return s3.NewFromConfig(base, func(o *s3.Options) { o.UsePathStyle = cfg.ForcePathStyle }), nil
}

// NewS3ClientStatic creates an S3 client from static keys. Pass an endpoint and
// forcePathStyle=true for emulators.
func NewS3ClientStatic(ctx context.Context, region, accessKey, secretKey, endpoint string, forcePathStyle bool) (*s3.Client, error) {
	return NewS3Client(ctx, S3ClientConfig{
		Region:         region,
		Endpoint:       endpoint,
		ForcePathStyle: forcePathStyle,
		AccessKey:      accessKey,
		SecretKey:      secretKey,
	})
}

func loadS3BaseConfig(ctx context.Context, region, endpoint string, creds aws.CredentialsProvider) (aws.Config, error) {
	var loaders []func(*config.LoadOptions) error
	if region != "" {
		loaders = append(loaders, config.WithRegion(region))
	}
	if creds != nil {
		loaders = append(loaders, config.WithCredentialsProvider(aws.NewCredentialsCache(creds)))
	}
	if endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(sharedResolver(endpoint)))
	}
	return config.LoadDefaultConfig(ctx, loaders...)
}

// sharedResolver points both S3 and STS at the same override so emulators see the whole flow.
func sharedResolver(endpoint string) aws.EndpointResolverWithOptionsFunc {
	return aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
		switch service {
		case s3.ServiceID, sts.ServiceID:
			return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
		default:
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}
	})
}
