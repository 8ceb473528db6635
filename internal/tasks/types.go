package tasks

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeLocationGeocode = "location:geocode"
)

// LocationGeocodePayload identifies a location event whose address should be
// backfilled by reverse geocoding.
type LocationGeocodePayload struct {
	LocationID uuid.UUID `json:"location_id"`
}

func NewLocationGeocodeTask(payload LocationGeocodePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeLocationGeocode, data), nil
}
