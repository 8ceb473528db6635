package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/farhan/hrmtrack/internal/api/dto"
	"github.com/farhan/hrmtrack/internal/api/middleware"
	"github.com/farhan/hrmtrack/internal/authz"
	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportHandler serves the dashboard read paths over the location log.
// "Currently checked in" is computed from the log, never stored.
type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

// Today handles GET /api/locations/today: check-in/check-out counts between
// local midnight and the next.
func (h *ReportHandler) Today(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	requested, err := companyIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	scope, err := authz.CompanyScope(p, requested, false)
	if err != nil {
		writeError(w, http.StatusForbidden, "Not authorized")
		return
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	base := h.db.WithContext(r.Context()).Model(&models.Location{}).
		Where("timestamp >= ? AND timestamp < ?", dayStart, dayEnd)
	if scope != nil {
		base = base.Where("company_id = ?", *scope)
	}

	var counts dto.TodayCounts
	if err := base.Session(&gorm.Session{}).Where("type = ?", models.LocationTypeCheckIn).Count(&counts.CheckIns).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count check-ins")
		return
	}
	if err := base.Session(&gorm.Session{}).Where("type = ?", models.LocationTypeCheckOut).Count(&counts.CheckOuts).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count check-outs")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewData(counts))
}

// Recent handles GET /api/locations/recent: the latest events across the
// scoped companies, joined with user and company display fields.
func (h *ReportHandler) Recent(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	requested, err := companyIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	scope, err := authz.CompanyScope(p, requested, false)
	if err != nil {
		writeError(w, http.StatusForbidden, "Not authorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := h.db.WithContext(r.Context()).
		Preload("User").
		Preload("Company").
		Order("timestamp DESC").
		Limit(limit)
	if scope != nil {
		query = query.Where("company_id = ?", *scope)
	}

	var locations []models.Location
	if err := query.Find(&locations).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load recent activity")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse{
		Success: true,
		Count:   len(locations),
		Data:    dto.NewLocationResponses(locations),
	})
}

// CompanyHistory handles GET /api/locations/company: paginated, filterable
// history for one company. Admins must name the company explicitly.
func (h *ReportHandler) CompanyHistory(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	requested, err := companyIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	scope, err := authz.CompanyScope(p, requested, true)
	if err != nil {
		if errors.Is(err, authz.ErrCompanyRequired) {
			writeError(w, http.StatusBadRequest, "Company ID is required")
			return
		}
		writeError(w, http.StatusForbidden, "Not authorized")
		return
	}

	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date filter")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	pagination := dto.PaginationParams{Page: page, Limit: limit}
	pagination.Normalize()

	query := h.db.WithContext(r.Context()).Model(&models.Location{}).Where("company_id = ?", *scope)
	if start != nil {
		query = query.Where("timestamp >= ?", *start)
	}
	if end != nil {
		query = query.Where("timestamp <= ?", *end)
	}
	if t := r.URL.Query().Get("type"); t != "" {
		if !models.LocationType(t).Valid() {
			writeError(w, http.StatusBadRequest, "Invalid location type")
			return
		}
		query = query.Where("type = ?", t)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count locations")
		return
	}

	var locations []models.Location
	if err := query.
		Preload("User").
		Order("timestamp DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&locations).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load locations")
		return
	}

	writeJSON(w, http.StatusOK, dto.PaginatedResponse{
		Success: true,
		Count:   len(locations),
		Total:   total,
		Pagination: dto.Pagination{
			Page:  pagination.Page,
			Limit: pagination.Limit,
			Pages: pagination.Pages(total),
		},
		Data: dto.NewLocationResponses(locations),
	})
}

// StaffHistory handles GET /api/locations/staff/:userId. Allowed for admins,
// the owning company, or the staff member themself.
func (h *ReportHandler) StaffHistory(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var user models.User
	if err := h.db.WithContext(r.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	if !authz.CanViewUserLocations(p, &user) {
		writeError(w, http.StatusForbidden, "Not authorized to view this user's locations")
		return
	}

	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date filter")
		return
	}

	query := h.db.WithContext(r.Context()).Where("user_id = ?", userID)
	if start != nil {
		query = query.Where("timestamp >= ?", *start)
	}
	if end != nil {
		query = query.Where("timestamp <= ?", *end)
	}

	var locations []models.Location
	if err := query.Order("timestamp DESC").Find(&locations).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load locations")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse{
		Success: true,
		Count:   len(locations),
		Data:    dto.NewLocationResponses(locations),
	})
}
