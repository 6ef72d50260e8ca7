package repository

import (
	"context"
	"errors"

	"github.com/Saikrishivgar/zoho-directory/internal/model/entity"
	"gorm.io/gorm"
)

// PersonRepository 人员仓库
type PersonRepository struct {
	db *gorm.DB
}

// NewPersonRepository 创建人员仓库
func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Search 通讯录查询:可选地点过滤,可选关键字匹配姓名/角色/邮箱
func (r *PersonRepository) Search(ctx context.Context, locationID, q string) ([]entity.Person, error) {
	var people []entity.Person
	query := r.db.WithContext(ctx).
		Model(&entity.Person{}).
		Preload("Location").
		Preload("Department")

	if locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}
	if q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR display_name ILIKE ? OR role ILIKE ? OR email ILIKE ?",
			like, like, like, like, like,
		)
	}

	err := query.Order("first_name ASC, last_name ASC").Find(&people).Error
	return people, err
}

// FindByID 根据ID查找人员
func (r *PersonRepository) FindByID(ctx context.Context, id string) (*entity.Person, error) {
	var person entity.Person
	err := r.db.WithContext(ctx).
		Preload("Location").
		Preload("Department").
		Preload("Manager").
		Where("id = ?", id).
		First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

// FindReports 查找直接下属
func (r *PersonRepository) FindReports(ctx context.Context, managerID string) ([]entity.Person, error) {
	var reports []entity.Person
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("first_name ASC").
		Find(&reports).Error
	return reports, err
}

// List 管理端人员列表,支持关键字和过滤
func (r *PersonRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Person, int64, error) {
	var people []entity.Person
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Person{})

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR display_name ILIKE ? OR email ILIKE ? OR role ILIKE ?",
			like, like, like, like, like,
		)
	}
	if locationID, ok := filters["location_id"].(string); ok && locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}
	if departmentID, ok := filters["department_id"].(string); ok && departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}
	if verified, ok := filters["verified"].(bool); ok {
		query = query.Where("verified = ?", verified)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Location").
		Preload("Department").
		Order("first_name ASC, last_name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&people).Error

	return people, total, err
}

// Create 创建人员
func (r *PersonRepository) Create(ctx context.Context, person *entity.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

// Update 更新人员
func (r *PersonRepository) Update(ctx context.Context, person *entity.Person) error {
	return r.db.WithContext(ctx).Save(person).Error
}

// Delete 删除人员,下属的上级外键置空
func (r *PersonRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Person{}).Where("manager_id = ?", id).Update("manager_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Person{}, "id = ?", id).Error
	})
}
