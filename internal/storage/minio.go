package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	// UploadResumeFile 上传原始简历文件，返回对象键
	UploadResumeFile(ctx context.Context, submissionUUID, fileExt string, reader io.Reader, fileSize int64) (string, error)

	// GetResumeFile 下载原始简历文件
	GetResumeFile(ctx context.Context, objectKey string) ([]byte, error)

	// UploadParsedText 存档提取出的纯文本，返回对象键
	UploadParsedText(ctx context.Context, submissionUUID, text string) (string, error)

	// DeleteFile 删除对象
	DeleteFile(ctx context.Context, objectKey string) error
}

// 确保MinIO实现了ObjectStorage接口
var _ ObjectStorage = (*MinIO)(nil)

// MinIO 提供对象存储功能
type MinIO struct {
	client          *minio.Client
	originalsBucket string
	parsedBucket    string
	logger          zerolog.Logger
}

// NewMinIO 创建MinIO客户端并确保存储桶存在
func NewMinIO(ctx context.Context, cfg *config.MinIOConfig, logger zerolog.Logger) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{
		client:          client,
		originalsBucket: cfg.OriginalsBucket,
		parsedBucket:    cfg.ParsedBucket,
		logger:          logger,
	}
	for _, bucket := range []string{m.originalsBucket, m.parsedBucket} {
		if err := m.ensureBucket(ctx, bucket); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *MinIO) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 失败: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("创建存储桶 %s 失败: %w", bucket, err)
	}
	m.logger.Info().Str("bucket", bucket).Msg("存储桶已创建")
	return nil
}

// UploadResumeFile 实现ObjectStorage接口
func (m *MinIO) UploadResumeFile(ctx context.Context, submissionUUID, fileExt string, reader io.Reader, fileSize int64) (string, error) {
	objectKey := fmt.Sprintf(constants.OriginalObjectFmt, submissionUUID, fileExt)
	_, err := m.client.PutObject(ctx, m.originalsBucket, objectKey, reader, fileSize,
		minio.PutObjectOptions{ContentType: contentTypeByExt(fileExt)})
	if err != nil {
		return "", fmt.Errorf("上传简历文件 %s 失败: %w", objectKey, err)
	}
	return objectKey, nil
}

// GetResumeFile 实现ObjectStorage接口
func (m *MinIO) GetResumeFile(ctx context.Context, objectKey string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.originalsBucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s 失败: %w", objectKey, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象 %s 失败: %w", objectKey, err)
	}
	return data, nil
}

// UploadParsedText 实现ObjectStorage接口
func (m *MinIO) UploadParsedText(ctx context.Context, submissionUUID, text string) (string, error) {
	objectKey := fmt.Sprintf(constants.ParsedTextFmt, submissionUUID)
	reader := bytes.NewReader([]byte(text))
	_, err := m.client.PutObject(ctx, m.parsedBucket, objectKey, reader, int64(reader.Len()),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		return "", fmt.Errorf("上传解析文本 %s 失败: %w", objectKey, err)
	}
	return objectKey, nil
}

// DeleteFile 实现ObjectStorage接口
func (m *MinIO) DeleteFile(ctx context.Context, objectKey string) error {
	return m.client.RemoveObject(ctx, m.originalsBucket, objectKey, minio.RemoveObjectOptions{})
}

// contentTypeByExt 按扩展名推断Content-Type
func contentTypeByExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
