package models

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCompany Role = "company"
	RoleStaff   Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCompany, RoleStaff:
		return true
	}
	return false
}

type User struct {
	Base
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Role         Role   `gorm:"index;default:'staff'" json:"role"`
	Designation  string `json:"designation,omitempty"`

	// Nil for platform admins; required for company and staff roles.
	CompanyID *uuid.UUID `gorm:"type:uuid;index" json:"company_id,omitempty"`

	// Object storage key, see internal/storage.
	ProfilePicture string `json:"profile_picture,omitempty"`

	IsActive bool `gorm:"default:true" json:"active"`

	// Relationships
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (User) TableName() string {
	return "users"
}
