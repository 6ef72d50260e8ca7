package entity

import "time"

// Location 办公地点
type Location struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Name      string    `json:"name" gorm:"size:120;not null"`
	Address   string    `json:"address" gorm:"type:text"`
	Timezone  string    `json:"timezone" gorm:"size:64"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Location) TableName() string {
	return "locations"
}
