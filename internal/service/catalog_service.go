package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Saikrishivgar/zoho-directory/internal/model/entity"
	"github.com/Saikrishivgar/zoho-directory/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// 错误定义
var (
	ErrSlugTaken = errors.New("slug already exists")
)

const (
	appListCacheKey = "apps:list:all"
	appListCacheTTL = 60 * time.Second
)

// CatalogService 应用目录服务
type CatalogService struct {
	appRepo    *repository.AppRepository
	rdb        *redis.Client
	media      *MediaService
	staticBase string
}

// NewCatalogService 创建应用目录服务
func NewCatalogService(appRepo *repository.AppRepository, rdb *redis.Client, media *MediaService, staticBase string) *CatalogService {
	if !strings.HasSuffix(staticBase, "/") {
		staticBase += "/"
	}
	return &CatalogService{
		appRepo:    appRepo,
		rdb:        rdb,
		media:      media,
		staticBase: staticBase,
	}
}

// AppDisplay 目录展示记录,字段显式归一化
type AppDisplay struct {
	Name            string       `json:"name"`
	Slug            string       `json:"slug"`
	Tagline         string       `json:"tagline"`
	Description     string       `json:"description"`
	Doc             string       `json:"doc"`
	CliqChannel     string       `json:"cliq_channel"`
	InternalRunbook string       `json:"internal_runbook"`
	HelpContact     entity.JSONB `json:"help_contact"`
	Rating          float64      `json:"rating"`
	Popularity      int          `json:"popularity"`
	IconURL         *string      `json:"icon_url"`
	TagsList        []string     `json:"tags_list"`
	UseCases        []string     `json:"use_cases"`
	Who             string       `json:"who"`
	Access          string       `json:"access"`
	GuideSource     string       `json:"guide_source"`
	GuideYouTubeID  *string      `json:"guide_youtube_id"`
}

// AppListResult 目录列表结果
type AppListResult struct {
	Apps  []AppDisplay `json:"apps"`
	Query string       `json:"q"`
}

// ListApps 目录列表,可选关键字,按名称升序
func (s *CatalogService) ListApps(ctx context.Context, q string) (*AppListResult, error) {
	q = strings.TrimSpace(q)

	// 只缓存无查询词的全量列表
	if q == "" {
		if cached := s.cachedList(ctx); cached != nil {
			return cached, nil
		}
	}

	apps, err := s.appRepo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search apps: %w", err)
	}

	displays := make([]AppDisplay, 0, len(apps))
	for i := range apps {
		displays = append(displays, s.buildDisplay(&apps[i]))
	}

	result := &AppListResult{Apps: displays, Query: q}

	if q == "" {
		s.storeList(ctx, result)
	}

	return result, nil
}

func (s *CatalogService) buildDisplay(app *entity.ZohoApp) AppDisplay {
	// 外链指南尝试解析视频ID,供前端内嵌播放;上传文件直接播放
	var youtubeID *string
	if app.GuideFile == "" {
		if id, ok := entity.ExtractYouTubeID(app.GuideURL); ok {
			youtubeID = &id
		}
	}

	return AppDisplay{
		Name:            app.Name,
		Slug:            app.Slug,
		Tagline:         app.Tagline,
		Description:     app.Description,
		Doc:             app.Doc,
		CliqChannel:     app.CliqChannel,
		InternalRunbook: app.InternalRunbook,
		HelpContact:     app.HelpContact,
		Rating:          app.Rating,
		Popularity:      app.Popularity,
		IconURL:         s.iconURL(app),
		TagsList:        NormalizeTags(app.Tags),
		UseCases:        app.UseCases,
		Who:             app.Who,
		Access:          app.Access,
		GuideSource:     app.GuideSource(s.media.BaseURL()),
		GuideYouTubeID:  youtubeID,
	}
}

// NormalizeTags 逗号分隔的标签串拆成列表:去空白、丢空段、保持顺序
func NormalizeTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// iconURL 图标地址:上传媒体走媒体地址,字符串路径走静态前缀,都没有则无图标
func (s *CatalogService) iconURL(app *entity.ZohoApp) *string {
	if app.Icon == "" {
		return nil
	}
	var url string
	if app.HasUploadedIcon() {
		url = s.media.URL(app.Icon)
	} else {
		url = s.staticBase + strings.TrimPrefix(app.Icon, "/")
	}
	if url == "" {
		return nil
	}
	return &url
}

func (s *CatalogService) cachedList(ctx context.Context) *AppListResult {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, appListCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var result AppListResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

func (s *CatalogService) storeList(ctx context.Context, result *AppListResult) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	s.rdb.Set(ctx, appListCacheKey, data, appListCacheTTL)
}

// clearCache 清除目录缓存
func (s *CatalogService) clearCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, appListCacheKey)
}

// ============================================================
// 管理端操作
// ============================================================

// AppRequest 应用创建/更新请求
type AppRequest struct {
	Slug            string                 `json:"slug" binding:"required"`
	Name            string                 `json:"name" binding:"required"`
	Tagline         string                 `json:"tagline"`
	Description     string                 `json:"description"`
	UseCases        []string               `json:"use_cases"`
	Who             string                 `json:"who"`
	Doc             string                 `json:"doc"`
	InternalRunbook string                 `json:"internal_runbook"`
	CliqChannel     string                 `json:"cliq_channel"`
	Access          string                 `json:"access"`
	Icon            string                 `json:"icon"`
	Tags            string                 `json:"tags"`
	HelpContact     map[string]interface{} `json:"help_contact"`
	Popularity      int                    `json:"popularity"`
	Rating          float64                `json:"rating"`
	GuideURL        string                 `json:"guide_url"`
}

// ListAppsAdmin 管理端应用列表,检索字段为名称/标语/标签
func (s *CatalogService) ListAppsAdmin(ctx context.Context, q string) ([]entity.ZohoApp, error) {
	return s.appRepo.SearchAdmin(ctx, strings.TrimSpace(q))
}

// CreateApp 创建应用,slug唯一
func (s *CatalogService) CreateApp(ctx context.Context, req *AppRequest) (*entity.ZohoApp, error) {
	if _, err := s.appRepo.FindBySlug(ctx, req.Slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check slug: %w", err)
	}

	app := &entity.ZohoApp{
		ID:              uuid.New().String()[:32],
		Slug:            req.Slug,
		Name:            req.Name,
		Tagline:         req.Tagline,
		Description:     req.Description,
		UseCases:        entity.StringList(req.UseCases),
		Who:             req.Who,
		Doc:             req.Doc,
		InternalRunbook: req.InternalRunbook,
		CliqChannel:     req.CliqChannel,
		Access:          req.Access,
		Icon:            req.Icon,
		Tags:            req.Tags,
		HelpContact:     entity.JSONB(req.HelpContact),
		Popularity:      req.Popularity,
		Rating:          req.Rating,
		GuideURL:        req.GuideURL,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create app: %w", err)
	}

	s.clearCache(ctx)

	return app, nil
}

// GetApp 应用详情,id或slug均可
func (s *CatalogService) GetApp(ctx context.Context, idOrSlug string) (*entity.ZohoApp, error) {
	app, err := s.appRepo.FindByID(ctx, idOrSlug)
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.appRepo.FindBySlug(ctx, idOrSlug)
}

// UpdateApp 更新应用
func (s *CatalogService) UpdateApp(ctx context.Context, id string, req *AppRequest) (*entity.ZohoApp, error) {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != app.Slug {
		if _, err := s.appRepo.FindBySlug(ctx, req.Slug); err == nil {
			return nil, ErrSlugTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("check slug: %w", err)
		}
	}

	app.Slug = req.Slug
	app.Name = req.Name
	app.Tagline = req.Tagline
	app.Description = req.Description
	app.UseCases = entity.StringList(req.UseCases)
	app.Who = req.Who
	app.Doc = req.Doc
	app.InternalRunbook = req.InternalRunbook
	app.CliqChannel = req.CliqChannel
	app.Access = req.Access
	app.Tags = req.Tags
	app.HelpContact = entity.JSONB(req.HelpContact)
	app.Popularity = req.Popularity
	app.Rating = req.Rating
	app.GuideURL = req.GuideURL
	if req.Icon != "" {
		app.Icon = req.Icon
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("update app: %w", err)
	}

	s.clearCache(ctx)

	return app, nil
}

// DeleteApp 删除应用,附带清理上传对象
func (s *CatalogService) DeleteApp(ctx context.Context, id string) error {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.appRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete app: %w", err)
	}

	if app.HasUploadedIcon() {
		s.media.Remove(ctx, app.Icon)
	}
	if app.GuideFile != "" {
		s.media.Remove(ctx, app.GuideFile)
	}

	s.clearCache(ctx)

	return nil
}

// AttachFunc 上传附件操作的统一签名
type AttachFunc func(ctx context.Context, id, fileName string, reader io.Reader, size int64, contentType string) (*entity.ZohoApp, error)

// AttachIcon 上传图标并挂到应用上
func (s *CatalogService) AttachIcon(ctx context.Context, id, fileName string, reader io.Reader, size int64, contentType string) (*entity.ZohoApp, error) {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	objectName, err := s.media.Upload(ctx, entity.IconUploadPrefix, fileName, reader, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload icon: %w", err)
	}

	old := app.Icon
	app.Icon = objectName
	if err := s.appRepo.Update(ctx, app); err != nil {
		s.media.Remove(ctx, objectName)
		return nil, fmt.Errorf("update app: %w", err)
	}

	if strings.HasPrefix(old, entity.IconUploadPrefix) {
		s.media.Remove(ctx, old)
	}

	s.clearCache(ctx)

	return app, nil
}

// AttachGuide 上传指南视频并挂到应用上
func (s *CatalogService) AttachGuide(ctx context.Context, id, fileName string, reader io.Reader, size int64, contentType string) (*entity.ZohoApp, error) {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	objectName, err := s.media.Upload(ctx, entity.GuideUploadPrefix, fileName, reader, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload guide: %w", err)
	}

	old := app.GuideFile
	app.GuideFile = objectName
	if err := s.appRepo.Update(ctx, app); err != nil {
		s.media.Remove(ctx, objectName)
		return nil, fmt.Errorf("update app: %w", err)
	}

	if old != "" {
		s.media.Remove(ctx, old)
	}

	s.clearCache(ctx)

	return app, nil
}
