package storage

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const textContentType = "text/plain; charset=utf-8"

// UploadText stores body under key as a UTF-8 text object.
func UploadText(
	ctx context.Context,
	client ObjectPutter,
	bucket string,
	key string,
	body string,
) error {

	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          strings.NewReader(body),
		ContentType:   aws.String(textContentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	return err
}
