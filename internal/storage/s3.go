package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"toolshare/internal/pkg"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
}

// uploadAPI 抽象 manager.Uploader，测试用假实现
type uploadAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Uploader 进程级单例，启动时构建一次
type Uploader struct {
	api    uploadAPI
	bucket string
}

// New 四项配置缺一不可，任何网络调用之前就失败
func New(ctx context.Context, cfg Config) (*Uploader, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Region == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 access key, secret, region and bucket are all required", pkg.ErrConfiguration)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg)
	return &Uploader{
		api:    manager.NewUploader(client),
		bucket: cfg.Bucket,
	}, nil
}

// UploadToolImage 把图片流式上传到 s3，返回公开地址。
// 没有流或文件名时返回空串（没有要上传的内容，不算错误）。
func (u *Uploader) UploadToolImage(ctx context.Context, stream io.Reader, filename, mimetype string, userID uint64) (string, error) {
	if stream == nil || filename == "" {
		return "", nil
	}

	key := fmt.Sprintf("toolImages/%d_%s_%s", userID, uuid.NewString(), filename)

	out, err := u.api.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        stream,
		ContentType: aws.String(mimetype),
	})
	if err != nil {
		slog.Error("tool image upload failed", "key", key, "error", err)
		return "", pkg.ErrImageUpload
	}
	if out == nil || out.Location == "" {
		return "", pkg.ErrImageUpload
	}
	return out.Location, nil
}
