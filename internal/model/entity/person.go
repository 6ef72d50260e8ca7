package entity

import "time"

// Person 员工通讯录条目
type Person struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	FirstName    string    `json:"first_name" gorm:"size:120;not null"`
	LastName     string    `json:"last_name" gorm:"size:120"`
	DisplayName  string    `json:"display_name" gorm:"size:200"`
	LocationID   *string   `json:"location_id" gorm:"size:32"`
	DepartmentID *string   `json:"department_id" gorm:"size:32"`
	ManagerID    *string   `json:"manager_id" gorm:"size:32"`
	Email        string    `json:"email" gorm:"size:254"`
	Phone        string    `json:"phone" gorm:"size:40"`
	CliqHandle   string    `json:"cliq_handle" gorm:"size:150"`
	DeskNumber   string    `json:"desk_number" gorm:"size:40"`
	Role         string    `json:"role" gorm:"size:200"`
	Bio          string    `json:"bio" gorm:"type:text"`
	Verified     bool      `json:"verified" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 关联
	Location   *Location   `json:"location,omitempty" gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL"`
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
	Manager    *Person     `json:"manager,omitempty" gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL"`
	Reports    []Person    `json:"reports,omitempty" gorm:"foreignKey:ManagerID"`
}

func (Person) TableName() string {
	return "people"
}

// DisplayLabel 显示名称,优先display_name,否则"名 姓"
func (p *Person) DisplayLabel() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.FirstName + " " + p.LastName
}
