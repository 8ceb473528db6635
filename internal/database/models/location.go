package models

import (
	"time"

	"github.com/google/uuid"
)

type LocationType string

const (
	LocationTypeCheckIn  LocationType = "checkin"
	LocationTypeCheckOut LocationType = "checkout"
	LocationTypeTracking LocationType = "tracking"
)

func (t LocationType) Valid() bool {
	switch t {
	case LocationTypeCheckIn, LocationTypeCheckOut, LocationTypeTracking:
		return true
	}
	return false
}

// Location is an append-only GPS event. UserID and CompanyID are stamped from
// the authenticated caller at write time, never from the request body.
type Location struct {
	Base
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_locations_user_ts,priority:1;uniqueIndex:idx_locations_user_client_req,priority:1" json:"user_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_locations_company_ts,priority:1" json:"company_id"`

	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`

	// Reverse-geocoded label; filled in by the worker when the client omits it.
	Address string `json:"address,omitempty"`

	Timestamp time.Time    `gorm:"not null;index:idx_locations_user_ts,priority:2,sort:desc;index:idx_locations_company_ts,priority:2,sort:desc" json:"timestamp"`
	Type      LocationType `gorm:"index;default:'tracking'" json:"type"`

	// Optional client-generated id so retried requests do not duplicate rows.
	// Unique per user, not globally: one client's ids say nothing about
	// another's.
	ClientRequestID *string `gorm:"uniqueIndex:idx_locations_user_client_req,priority:2" json:"client_request_id,omitempty"`

	// Relationships
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (Location) TableName() string {
	return "locations"
}
