package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/farhan/hrmtrack/internal/api/dto"
	"github.com/farhan/hrmtrack/internal/api/middleware"
	"github.com/farhan/hrmtrack/internal/authz"
	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/farhan/hrmtrack/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Presigner is the slice of the object store the upload endpoints need.
type Presigner interface {
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
}

// UploadHandler hands out presigned URLs for avatar and logo uploads. The
// returned key is what the client writes back into the profile or company
// record once the upload succeeds.
type UploadHandler struct {
	db    *gorm.DB
	store Presigner
}

func NewUploadHandler(db *gorm.DB, store Presigner) *UploadHandler {
	return &UploadHandler{db: db, store: store}
}

type uploadURLRequest struct {
	ContentType string `json:"content_type"`
}

// AvatarURL handles POST /api/users/:id/avatar-url
func (h *UploadHandler) AvatarURL(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "Object storage not configured")
		return
	}

	p := middleware.GetPrincipal(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var user models.User
	if err := h.db.WithContext(r.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	if !authz.CanUpdateUser(p, &user) {
		writeError(w, http.StatusForbidden, "Not authorized to update this user")
		return
	}

	h.presign(w, r, storage.AvatarKey(user.ID))
}

// LogoURL handles POST /api/companies/:id/logo-url
func (h *UploadHandler) LogoURL(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "Object storage not configured")
		return
	}

	p := middleware.GetPrincipal(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	var company models.Company
	if err := h.db.WithContext(r.Context()).First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Company not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load company")
		return
	}

	// Only the platform admin or the company's own admin may change the logo.
	if p.Role != models.RoleAdmin && !(p.Role == models.RoleCompany && p.CompanyID != nil && *p.CompanyID == company.ID) {
		writeError(w, http.StatusForbidden, "Not authorized to update this company")
		return
	}

	h.presign(w, r, storage.LogoKey(company.ID))
}

func (h *UploadHandler) presign(w http.ResponseWriter, r *http.Request, key string) {
	var req uploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ContentType == "" {
		writeError(w, http.StatusBadRequest, "content_type is required")
		return
	}

	url, err := h.store.PresignUpload(r.Context(), key, req.ContentType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to presign upload")
		return
	}

	writeJSON(w, http.StatusOK, dto.UploadURLResponse{
		Success:   true,
		UploadURL: url,
		Key:       key,
	})
}
