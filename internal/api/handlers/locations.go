package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/farhan/hrmtrack/internal/api/dto"
	"github.com/farhan/hrmtrack/internal/api/middleware"
	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/farhan/hrmtrack/internal/tasks"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

type LocationHandler struct {
	db     *gorm.DB
	queue  *asynq.Client
	logger *slog.Logger
}

func NewLocationHandler(db *gorm.DB, queue *asynq.Client, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{db: db, queue: queue, logger: logger}
}

// Record handles POST /api/locations (tracking ping by default).
func (h *LocationHandler) Record(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, "")
}

// CheckIn handles POST /api/locations/checkin
func (h *LocationHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, models.LocationTypeCheckIn)
}

// CheckOut handles POST /api/locations/checkout
func (h *LocationHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, models.LocationTypeCheckOut)
}

// record persists one location event. Identity always comes from the token,
// never from the body, so a client cannot log events for someone else. A
// fixedType of "" lets the body choose (tracking when absent).
func (h *LocationHandler) record(w http.ResponseWriter, r *http.Request, fixedType models.LocationType) {
	p := middleware.GetPrincipal(r.Context())

	var req dto.RecordLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.NewValidationError(errs))
		return
	}

	if p.CompanyID == nil {
		writeError(w, http.StatusBadRequest, "User has no company affiliation")
		return
	}

	locType := fixedType
	if locType == "" {
		locType = models.LocationTypeTracking
		if req.Type != "" {
			locType = models.LocationType(req.Type)
		}
	}

	location := models.Location{
		UserID:    p.UserID,
		CompanyID: *p.CompanyID,
		Latitude:  *req.Coordinates.Latitude,
		Longitude: *req.Coordinates.Longitude,
		Address:   req.Address,
		Timestamp: time.Now(),
		Type:      locType,
	}
	if req.ClientRequestID != "" {
		id := req.ClientRequestID
		location.ClientRequestID = &id
	}

	// Retried requests trip the per-user unique index on client_request_id;
	// the caller then gets their original row back instead of a duplicate.
	// Going through the index rather than a pre-insert lookup keeps two
	// concurrent retries from both inserting.
	if err := h.db.WithContext(r.Context()).Create(&location).Error; err != nil {
		if req.ClientRequestID != "" {
			var existing models.Location
			lookupErr := h.db.WithContext(r.Context()).
				Where("client_request_id = ? AND user_id = ?", req.ClientRequestID, p.UserID).
				First(&existing).Error
			if lookupErr == nil {
				writeJSON(w, http.StatusOK, dto.NewData(dto.NewLocationResponse(&existing)))
				return
			}
		}
		writeError(w, http.StatusInternalServerError, "Failed to record location")
		return
	}

	h.enqueueGeocode(&location)

	writeJSON(w, http.StatusCreated, dto.NewData(dto.NewLocationResponse(&location)))
}

// enqueueGeocode schedules address backfill for events the client submitted
// without one. Best effort: a down queue never fails the write.
func (h *LocationHandler) enqueueGeocode(location *models.Location) {
	if h.queue == nil || location.Address != "" {
		return
	}

	task, err := tasks.NewLocationGeocodeTask(tasks.LocationGeocodePayload{LocationID: location.ID})
	if err != nil {
		h.logger.Warn("failed to build geocode task", "error", err)
		return
	}
	if _, err := h.queue.Enqueue(task, asynq.Queue("low")); err != nil {
		h.logger.Warn("failed to enqueue geocode task", "location_id", location.ID, "error", err)
	}
}
