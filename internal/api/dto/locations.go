package dto

import (
	"time"

	"github.com/farhan/hrmtrack/internal/database/models"
)

type Coordinates struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type RecordLocationRequest struct {
	Coordinates     *Coordinates `json:"coordinates"`
	Address         string       `json:"address,omitempty"`
	Type            string       `json:"type,omitempty"`
	ClientRequestID string       `json:"client_request_id,omitempty"`
}

func (r RecordLocationRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Coordinates == nil {
		errors["coordinates"] = "Coordinates are required"
		return errors
	}
	if r.Coordinates.Latitude == nil {
		errors["coordinates.latitude"] = "Latitude is required"
	} else if *r.Coordinates.Latitude < -90 || *r.Coordinates.Latitude > 90 {
		errors["coordinates.latitude"] = "Latitude must be between -90 and 90"
	}
	if r.Coordinates.Longitude == nil {
		errors["coordinates.longitude"] = "Longitude is required"
	} else if *r.Coordinates.Longitude < -180 || *r.Coordinates.Longitude > 180 {
		errors["coordinates.longitude"] = "Longitude must be between -180 and 180"
	}
	if r.Type != "" && !models.LocationType(r.Type).Valid() {
		errors["type"] = "Type must be one of: checkin, checkout, tracking"
	}

	return errors
}

// LocationResponse mirrors the wire shape the clients expect: coordinates
// nested, optional user/company display fields joined in.
type LocationResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	CompanyID   string             `json:"company_id"`
	Coordinates CoordinatesOut     `json:"coordinates"`
	Address     string             `json:"address,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Type        string             `json:"type"`
	User        *LocationUserInfo  `json:"user,omitempty"`
	Company     *LocationCompanyInfo `json:"company,omitempty"`
}

type CoordinatesOut struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type LocationUserInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Designation string `json:"designation,omitempty"`
}

type LocationCompanyInfo struct {
	Name string `json:"name"`
}

func NewLocationResponse(l *models.Location) LocationResponse {
	out := LocationResponse{
		ID:        l.ID.String(),
		UserID:    l.UserID.String(),
		CompanyID: l.CompanyID.String(),
		Coordinates: CoordinatesOut{
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
		},
		Address:   l.Address,
		Timestamp: l.Timestamp,
		Type:      string(l.Type),
	}
	if l.User != nil {
		out.User = &LocationUserInfo{
			Name:        l.User.Name,
			Email:       l.User.Email,
			Designation: l.User.Designation,
		}
	}
	if l.Company != nil {
		out.Company = &LocationCompanyInfo{Name: l.Company.Name}
	}
	return out
}

func NewLocationResponses(locations []models.Location) []LocationResponse {
	out := make([]LocationResponse, len(locations))
	for i := range locations {
		out[i] = NewLocationResponse(&locations[i])
	}
	return out
}

type TodayCounts struct {
	CheckIns  int64 `json:"checkins"`
	CheckOuts int64 `json:"checkouts"`
}

type ActiveCounts struct {
	ActiveStaff   int64 `json:"activeStaff"`
	ActiveCompany int64 `json:"activeCompany"`
}
