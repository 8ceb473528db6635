package models

import "github.com/google/uuid"

type Company struct {
	Base
	Name        string `gorm:"not null" json:"name"`
	Address     string `json:"address,omitempty"`
	Email       string `gorm:"not null" json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`

	// Object storage key, see internal/storage.
	Logo string `json:"logo,omitempty"`

	IsActive bool `gorm:"default:true" json:"active"`

	// OwnerID references the company-role user created alongside the company.
	OwnerID uuid.UUID `gorm:"type:uuid;not null" json:"owner_id"`

	// Relationships
	Owner *User  `gorm:"foreignKey:OwnerID" json:"-"`
	Users []User `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Company) TableName() string {
	return "companies"
}
