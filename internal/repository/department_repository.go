package repository

import (
	"context"
	"errors"

	"github.com/Saikrishivgar/zoho-directory/internal/model/entity"
	"gorm.io/gorm"
)

// DepartmentRepository 部门仓库
type DepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository 创建部门仓库
func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List 获取全部部门
func (r *DepartmentRepository) List(ctx context.Context, keyword string) ([]entity.Department, error) {
	var departments []entity.Department
	query := r.db.WithContext(ctx).Model(&entity.Department{})
	if keyword != "" {
		query = query.Where("name ILIKE ?", "%"+keyword+"%")
	}
	err := query.Order("name ASC").Find(&departments).Error
	return departments, err
}

// FindByID 根据ID查找部门
func (r *DepartmentRepository) FindByID(ctx context.Context, id string) (*entity.Department, error) {
	var department entity.Department
	err := r.db.WithContext(ctx).
		Preload("Parent").
		Where("id = ?", id).
		First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &department, nil
}

// Create 创建部门
func (r *DepartmentRepository) Create(ctx context.Context, department *entity.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

// Update 更新部门
func (r *DepartmentRepository) Update(ctx context.Context, department *entity.Department) error {
	return r.db.WithContext(ctx).Save(department).Error
}

// Delete 删除部门,子部门与引用方外键置空
func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Department{}).Where("parent_id = ?", id).Update("parent_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Person{}).Where("department_id = ?", id).Update("department_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.ClientEntry{}).Where("department_id = ?", id).Update("department_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Department{}, "id = ?", id).Error
	})
}
