package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"

	cfg "github.com/mentetech/blog-api/configs"
)

const maxUploadSize = 10 * 1024 * 1024 // 10 MB

var ErrUnsupportedMedia = errors.New("unsupported media type")

// MediaService stores cover images on Cloudflare R2 and hands back the
// public URL the post form persists in imagem_url.
type MediaService struct {
	config cfg.Config
}

func NewMediaService(cfg cfg.Config) *MediaService {
	return &MediaService{config: cfg}
}

func (m *MediaService) r2Client() (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(m.config.R2.AccessKey, m.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", m.config.R2.AccountID))
	}), nil
}

// UploadImage validates that the payload really is an image (sniffed, not
// trusted from the filename) and uploads it under a generated key.
func (m *MediaService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > maxUploadSize {
		return "", fmt.Errorf("file exceeds the %d byte limit", maxUploadSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	kind, err := filetype.Match(data)
	if err != nil || !filetype.IsImage(data) {
		return "", ErrUnsupportedMedia
	}

	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate object key: %w", err)
	}
	key := fmt.Sprintf("uploads/%s.%s", suffix, kind.Extension)

	client, err := m.r2Client()
	if err != nil {
		return "", err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(kind.MIME.Value),
	})
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return strings.TrimRight(m.config.R2.PublicURL, "/") + "/" + key, nil
}
