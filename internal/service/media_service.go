package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// MediaService 上传媒体服务,对象存储可缺省
type MediaService struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMediaService 创建媒体服务
func NewMediaService(client *minio.Client, bucket, baseURL string) *MediaService {
	return &MediaService{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// Enabled 对象存储是否可用
func (s *MediaService) Enabled() bool {
	return s.client != nil
}

// Upload 上传对象,返回对象键
func (s *MediaService) Upload(ctx context.Context, prefix, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	objectName := fmt.Sprintf("%s%s/%s%s",
		prefix, time.Now().Format("2006/01/02"), uuid.New().String()[:8], filepath.Ext(fileName))

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return objectName, nil
}

// Remove 删除对象,尽力而为
func (s *MediaService) Remove(ctx context.Context, objectName string) {
	if s.client == nil || objectName == "" {
		return
	}
	_ = s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

// URL 对象的对外访问地址
func (s *MediaService) URL(objectName string) string {
	if objectName == "" {
		return ""
	}
	base := s.baseURL
	if base == "" {
		base = "/media/"
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(objectName, "/")
}

// BaseURL 媒体基础地址
func (s *MediaService) BaseURL() string {
	if s.baseURL == "" {
		return "/media/"
	}
	return s.baseURL
}
