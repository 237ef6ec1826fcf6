// Package awsgateway deploys specifications to AWS API Gateway. Each import
// also archives the specification document to a throwaway S3 bucket so the
// deployed contract can be inspected later; undeploy removes both.
package awsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	gwtypes "github.com/aws/aws-sdk-go-v2/service/apigateway/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	log "github.com/sirupsen/logrus"

	"api-dispatcher-service/internal/core/domain"
	ports "api-dispatcher-service/internal/core/ports/output"
)

// GatewayAPI is the slice of the API Gateway client the deployer uses.
type GatewayAPI interface {
	ImportRestApi(ctx context.Context, in *apigateway.ImportRestApiInput, optFns ...func(*apigateway.Options)) (*apigateway.ImportRestApiOutput, error)
	CreateDeployment(ctx context.Context, in *apigateway.CreateDeploymentInput, optFns ...func(*apigateway.Options)) (*apigateway.CreateDeploymentOutput, error)
	DeleteRestApi(ctx context.Context, in *apigateway.DeleteRestApiInput, optFns ...func(*apigateway.Options)) (*apigateway.DeleteRestApiOutput, error)
}

// BucketAPI is the slice of the S3 client used for spec archives.
type BucketAPI interface {
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	DeleteBucket(ctx context.Context, in *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error)
}

type Deployer struct {
	gateway GatewayAPI
	buckets BucketAPI
}

func New(cfg aws.Config) *Deployer {
	return &Deployer{
		gateway: apigateway.NewFromConfig(cfg),
		buckets: s3.NewFromConfig(cfg),
	}
}

// NewWithClients wires explicit clients, for tests.
func NewWithClients(gateway GatewayAPI, buckets BucketAPI) *Deployer {
	return &Deployer{gateway: gateway, buckets: buckets}
}

func (d *Deployer) DeploySpec(ctx context.Context, doc *domain.Document, stage string) (*domain.Release, error) {
	body, err := json.Marshal(doc.Raw)
	if err != nil {
		return nil, fmt.Errorf("encode spec: %w", err)
	}

	imported, err := d.gateway.ImportRestApi(ctx, &apigateway.ImportRestApiInput{Body: body})
	if err != nil {
		return nil, fmt.Errorf("import rest api: %w", err)
	}
	rel := &domain.Release{GatewayID: aws.ToString(imported.Id)}

	// Archive is best effort; a failed upload never fails the deploy.
	if bucket, err := d.archiveSpec(ctx, body, stage); err != nil {
		log.Warnf("spec archive skipped: %v", err)
	} else {
		rel.Artifact = bucket
	}

	_, err = d.gateway.CreateDeployment(ctx, &apigateway.CreateDeploymentInput{
		RestApiId: imported.Id,
		StageName: aws.String(stage),
	})
	if err != nil {
		var badRequest *gwtypes.BadRequestException
		if errors.As(err, &badRequest) {
			return rel, fmt.Errorf("%w: %v", domain.ErrImportRejected, err)
		}
		return rel, fmt.Errorf("create deployment: %w", err)
	}
	return rel, nil
}

func (d *Deployer) UndeploySpec(ctx context.Context, rel *domain.Release) error {
	if rel.GatewayID != "" {
		_, err := d.gateway.DeleteRestApi(ctx, &apigateway.DeleteRestApiInput{
			RestApiId: aws.String(rel.GatewayID),
		})
		if err != nil {
			return fmt.Errorf("delete rest api %s: %w", rel.GatewayID, err)
		}
	}
	if rel.Artifact != "" {
		if err := d.deleteBucket(ctx, rel.Artifact); err != nil {
			return err
		}
	}
	return nil
}

// DeployApp is not available on AWS: the original packaging flow is tied to
// a Python toolchain and has no SDK equivalent here.
func (d *Deployer) DeployApp(ctx context.Context, app ports.AppDeployment) (*domain.Release, error) {
	return nil, fmt.Errorf("%w: aws", domain.ErrAppDeployUnsupported)
}

func (d *Deployer) UndeployApp(ctx context.Context, rel *domain.Release) error {
	return fmt.Errorf("%w: aws", domain.ErrAppDeployUnsupported)
}

func (d *Deployer) archiveSpec(ctx context.Context, body []byte, stage string) (string, error) {
	bucket := artifactBucketName()
	if _, err := d.buckets.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return "", fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	_, err := d.buckets.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(stage + "/openapi.json"),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return "", fmt.Errorf("upload spec to %s: %w", bucket, err)
	}
	return bucket, nil
}

func (d *Deployer) deleteBucket(ctx context.Context, bucket string) error {
	listed, err := d.buckets.ListObjectsV2(ctx, &s3.ListObjectsV2Input{Bucket: aws.String(bucket)})
	if err != nil {
		var missing *s3types.NoSuchBucket
		if errors.As(err, &missing) {
			return nil
		}
		return fmt.Errorf("list bucket %s: %w", bucket, err)
	}
	if len(listed.Contents) > 0 {
		objects := make([]s3types.ObjectIdentifier, 0, len(listed.Contents))
		for _, obj := range listed.Contents {
			objects = append(objects, s3types.ObjectIdentifier{Key: obj.Key})
		}
		_, err = d.buckets.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &s3types.Delete{Objects: objects},
		})
		if err != nil {
			return fmt.Errorf("empty bucket %s: %w", bucket, err)
		}
	}
	if _, err := d.buckets.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return fmt.Errorf("delete bucket %s: %w", bucket, err)
	}
	return nil
}

const bucketAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func artifactBucketName() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = bucketAlphabet[rand.Intn(len(bucketAlphabet))]
	}
	return "app-" + string(suffix)
}
