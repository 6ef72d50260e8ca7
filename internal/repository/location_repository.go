package repository

import (
	"context"
	"errors"

	"github.com/Saikrishivgar/zoho-directory/internal/model/entity"
	"gorm.io/gorm"
)

// LocationRepository 地点仓库
type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository 创建地点仓库
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// List 获取全部地点
func (r *LocationRepository) List(ctx context.Context, keyword string) ([]entity.Location, error) {
	var locations []entity.Location
	query := r.db.WithContext(ctx).Model(&entity.Location{})
	if keyword != "" {
		query = query.Where("name ILIKE ? OR timezone ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}
	err := query.Order("name ASC").Find(&locations).Error
	return locations, err
}

// FindByID 根据ID查找地点
func (r *LocationRepository) FindByID(ctx context.Context, id string) (*entity.Location, error) {
	var location entity.Location
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// Create 创建地点
func (r *LocationRepository) Create(ctx context.Context, location *entity.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// Update 更新地点
func (r *LocationRepository) Update(ctx context.Context, location *entity.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete 删除地点,引用方外键置空
func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Person{}).Where("location_id = ?", id).Update("location_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.ClientEntry{}).Where("location_id = ?", id).Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Location{}, "id = ?", id).Error
	})
}
