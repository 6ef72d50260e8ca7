package service

import (
	"github.com/Saikrishivgar/zoho-directory/internal/config"
	"github.com/Saikrishivgar/zoho-directory/internal/repository"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// Services 服务集合
type Services struct {
	Directory   *DirectoryService
	ClientEntry *ClientEntryService
	Catalog     *CatalogService
	Media       *MediaService
	Notify      *NotifyService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	// 初始化MinIO客户端
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			// 对象存储不可用时继续运行,上传接口会报错
			minioClient = nil
		}
	}

	media := NewMediaService(minioClient, cfg.MinIO.Bucket, cfg.Media.BaseURL)

	return &Services{
		Directory:   NewDirectoryService(repos.Person, repos.Location, repos.Department),
		ClientEntry: NewClientEntryService(repos.ClientEntry, repos.Location, repos.Department),
		Catalog:     NewCatalogService(repos.App, rdb, media, cfg.Static.BaseURL),
		Media:       media,
		Notify:      NewNotifyService(cfg.Cliq),
	}
}
