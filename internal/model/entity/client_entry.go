package entity

import "time"

// ClientEntry 客户联系记录
type ClientEntry struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	LocationID   *string   `json:"location_id" gorm:"size:32"`
	DepartmentID *string   `json:"department_id" gorm:"size:32"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:254;not null"`
	Notes        string    `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`

	// 关联
	Location   *Location   `json:"location,omitempty" gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL"`
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
}

func (ClientEntry) TableName() string {
	return "client_entries"
}
