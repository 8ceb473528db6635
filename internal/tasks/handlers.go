package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// Geocoder resolves coordinates to a display address.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

type Handler struct {
	db       *gorm.DB
	logger   *slog.Logger
	geocoder Geocoder
}

func NewHandler(db *gorm.DB, logger *slog.Logger, geocoder Geocoder) *Handler {
	return &Handler{db: db, logger: logger, geocoder: geocoder}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeLocationGeocode, h.HandleLocationGeocode)
}

// HandleLocationGeocode backfills the address on a location event that was
// recorded without one. Already-labelled events are left alone.
func (h *Handler) HandleLocationGeocode(ctx context.Context, t *asynq.Task) error {
	var payload LocationGeocodePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	var location models.Location
	if err := h.db.WithContext(ctx).First(&location, payload.LocationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing to do; don't retry.
			return nil
		}
		return fmt.Errorf("loading location %s: %w", payload.LocationID, err)
	}

	if location.Address != "" {
		return nil
	}

	address, err := h.geocoder.Reverse(ctx, location.Latitude, location.Longitude)
	if err != nil {
		return fmt.Errorf("reverse geocoding location %s: %w", payload.LocationID, err)
	}
	if address == "" {
		h.logger.Debug("geocoder returned no address",
			"location_id", payload.LocationID,
			"lat", location.Latitude,
			"lon", location.Longitude,
		)
		return nil
	}

	if err := h.db.WithContext(ctx).Model(&location).Update("address", address).Error; err != nil {
		return fmt.Errorf("updating location %s: %w", payload.LocationID, err)
	}

	h.logger.Info("geocoded location", "location_id", payload.LocationID)
	return nil
}
