package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	Base
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Name         string `gorm:"type:varchar(100);not null"`
	Role         string `gorm:"type:varchar(50);not null;index"`
	Phone        string `gorm:"type:varchar(30)"`
	IsActive     bool   `gorm:"not null"`
	LastLogin    *time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// RoleGrant is the stored action set of one resource.
type RoleGrant struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// RoleModel mirrors the 'roles' table.
type RoleModel struct {
	Base
	Name        string                                  `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string                                  `gorm:"type:text"`
	Permissions datatypes.JSONType[map[string]RoleGrant] `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}
