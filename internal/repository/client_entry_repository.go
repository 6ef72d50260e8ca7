package repository

import (
	"context"
	"errors"

	"github.com/Saikrishivgar/zoho-directory/internal/model/entity"
	"gorm.io/gorm"
)

// ClientEntryRepository 客户记录仓库
type ClientEntryRepository struct {
	db *gorm.DB
}

// NewClientEntryRepository 创建客户记录仓库
func NewClientEntryRepository(db *gorm.DB) *ClientEntryRepository {
	return &ClientEntryRepository{db: db}
}

// Create 创建客户记录
func (r *ClientEntryRepository) Create(ctx context.Context, entry *entity.ClientEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByID 根据ID查找客户记录
func (r *ClientEntryRepository) FindByID(ctx context.Context, id string) (*entity.ClientEntry, error) {
	var entry entity.ClientEntry
	err := r.db.WithContext(ctx).
		Preload("Location").
		Preload("Department").
		Where("id = ?", id).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// List 管理端客户记录列表
func (r *ClientEntryRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.ClientEntry, int64, error) {
	var entries []entity.ClientEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ClientEntry{})

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR notes ILIKE ?", like, like, like)
	}
	if locationID, ok := filters["location_id"].(string); ok && locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}
	if departmentID, ok := filters["department_id"].(string); ok && departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Location").
		Preload("Department").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&entries).Error

	return entries, total, err
}

// Delete 删除客户记录
func (r *ClientEntryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.ClientEntry{}, "id = ?", id).Error
}
