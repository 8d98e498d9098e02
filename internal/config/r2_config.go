package config

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2 object key holding the JWT secret backup
const r2SecretKey = "config/jwt_secret.txt"

// fetchJWTSecretFromR2 fetches the JWT secret from an R2 bucket for
// disaster recovery. The bucket credentials come from R2_* environment
// variables; without them the fallback is skipped.
func fetchJWTSecretFromR2() string {
	endpoint := os.Getenv("R2_ENDPOINT")
	accessKey := os.Getenv("R2_ACCESS_KEY")
	secretKey := os.Getenv("R2_SECRET_KEY")
	bucket := os.Getenv("R2_BUCKET")
	if endpoint == "" || accessKey == "" || secretKey == "" || bucket == "" {
		log.Printf("[Config] R2 credentials not configured, skipping fallback")
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		log.Printf("[Config] Failed to configure R2 client: %v", err)
		return ""
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(r2SecretKey),
	})
	if err != nil {
		log.Printf("[Config] Failed to fetch JWT secret from R2: %v", err)
		return ""
	}
	defer result.Body.Close()

	secret, err := io.ReadAll(result.Body)
	if err != nil {
		log.Printf("[Config] Failed to read JWT secret: %v", err)
		return ""
	}

	return strings.TrimSpace(string(secret))
}
