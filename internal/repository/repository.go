package repository

import (
	"errors"

	"gorm.io/gorm"
)

// 错误定义
var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	Location    *LocationRepository
	Department  *DepartmentRepository
	Person      *PersonRepository
	ClientEntry *ClientEntryRepository
	App         *AppRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Location:    NewLocationRepository(db),
		Department:  NewDepartmentRepository(db),
		Person:      NewPersonRepository(db),
		ClientEntry: NewClientEntryRepository(db),
		App:         NewAppRepository(db),
	}
}
