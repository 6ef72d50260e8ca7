package entity

import "time"

// Department 部门,支持自引用的上级部门
type Department struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Name        string    `json:"name" gorm:"size:120;not null"`
	Description string    `json:"description" gorm:"type:text"`
	ParentID    *string   `json:"parent_id" gorm:"size:32"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 关联
	Parent   *Department  `json:"parent,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Children []Department `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

func (Department) TableName() string {
	return "departments"
}
