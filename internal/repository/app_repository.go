package repository

import (
	"context"
	"errors"

	"github.com/Saikrishivgar/zoho-directory/internal/model/entity"
	"gorm.io/gorm"
)

// AppRepository 应用目录仓库
type AppRepository struct {
	db *gorm.DB
}

// NewAppRepository 创建应用目录仓库
func NewAppRepository(db *gorm.DB) *AppRepository {
	return &AppRepository{db: db}
}

// Search 目录查询:可选关键字匹配名称/标语/描述/标签,按名称升序
func (r *AppRepository) Search(ctx context.Context, q string) ([]entity.ZohoApp, error) {
	var apps []entity.ZohoApp
	query := r.db.WithContext(ctx).Model(&entity.ZohoApp{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"name ILIKE ? OR tagline ILIKE ? OR description ILIKE ? OR tags ILIKE ?",
			like, like, like, like,
		)
	}
	err := query.Order("name ASC").Find(&apps).Error
	return apps, err
}

// SearchAdmin 管理端检索:可选关键字匹配名称/标语/标签,按名称升序
func (r *AppRepository) SearchAdmin(ctx context.Context, q string) ([]entity.ZohoApp, error) {
	var apps []entity.ZohoApp
	query := r.db.WithContext(ctx).Model(&entity.ZohoApp{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"name ILIKE ? OR tagline ILIKE ? OR tags ILIKE ?",
			like, like, like,
		)
	}
	err := query.Order("name ASC").Find(&apps).Error
	return apps, err
}

// FindByID 根据ID查找应用
func (r *AppRepository) FindByID(ctx context.Context, id string) (*entity.ZohoApp, error) {
	var app entity.ZohoApp
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// FindBySlug 根据slug查找应用
func (r *AppRepository) FindBySlug(ctx context.Context, slug string) (*entity.ZohoApp, error) {
	var app entity.ZohoApp
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Create 创建应用
func (r *AppRepository) Create(ctx context.Context, app *entity.ZohoApp) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// Update 更新应用,last_updated自动刷新
func (r *AppRepository) Update(ctx context.Context, app *entity.ZohoApp) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// Delete 删除应用
func (r *AppRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.ZohoApp{}, "id = ?", id).Error
}
