package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// defaultPresignTTL is used when S3_URL_TTL_MINUTES is unset or invalid
const defaultPresignTTL = 5 * time.Minute

var (
	s3Client     *s3.Client
	s3ClientOnce sync.Once
)

func getS3Client() *s3.Client {
	s3ClientOnce.Do(func() {
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
		if err != nil {
			panic(err)
		}
		s3Client = s3.NewFromConfig(cfg)
	})
	return s3Client
}

// photoKey builds the object key for one itinerary's photo. Keys are scoped
// under the itinerary id so an itinerary's photos list and clean-up stay a
// single prefix operation.
func photoKey(itineraryID, fileName string, now time.Time) string {
	return fmt.Sprintf("itinerary-photos/%s/%s-%s", itineraryID, now.Format("20060102150405"), fileName)
}

// presignTTL reads the presigned URL lifetime from S3_URL_TTL_MINUTES
func presignTTL() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("S3_URL_TTL_MINUTES"))
	if err != nil || minutes <= 0 {
		return defaultPresignTTL
	}
	return time.Duration(minutes) * time.Minute
}

// GenerateUploadURL returns a presigned PUT URL for a photo of the given
// itinerary, along with the object key the photo will land under
func GenerateUploadURL(itineraryID, fileName, fileType string) (string, string, error) {
	key := photoKey(itineraryID, fileName, time.Now())
	params := &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET_NAME")),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(getS3Client())
	presignedURL, err := presigner.PresignPutObject(context.TODO(), params, s3.WithPresignExpires(presignTTL()))
	if err != nil {
		return "", "", err
	}
	return presignedURL.URL, key, nil
}

// GenerateReadURL returns a presigned GET URL for a stored itinerary photo
func GenerateReadURL(key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(os.Getenv("S3_BUCKET_NAME")),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(getS3Client())
	presignedURL, err := presigner.PresignGetObject(context.TODO(), params, s3.WithPresignExpires(presignTTL()))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}
