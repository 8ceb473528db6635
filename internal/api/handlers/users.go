package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/farhan/hrmtrack/internal/api/dto"
	"github.com/farhan/hrmtrack/internal/api/middleware"
	"github.com/farhan/hrmtrack/internal/authz"
	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// List handles GET /api/users. Admins see every user, company admins only
// their own company.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	scope, err := authz.CompanyScope(p, nil, false)
	if err != nil {
		writeError(w, http.StatusForbidden, "Not authorized to list users")
		return
	}

	query := h.db.WithContext(r.Context()).Model(&models.User{})
	if scope != nil {
		query = query.Where("company_id = ?", *scope)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse{
		Success: true,
		Count:   len(users),
		Data:    userDTOs(users),
	})
}

// ListStaff handles GET /api/users/staff (company role only).
func (h *UserHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	if p.CompanyID == nil {
		writeError(w, http.StatusForbidden, "Not authorized to list staff")
		return
	}

	var users []models.User
	if err := h.db.WithContext(r.Context()).
		Where("company_id = ? AND role = ?", *p.CompanyID, models.RoleStaff).
		Order("name ASC").
		Find(&users).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list staff")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse{
		Success: true,
		Count:   len(users),
		Data:    userDTOs(users),
	})
}

// ActiveCounts handles GET /api/users/active
func (h *UserHandler) ActiveCounts(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	scope, err := authz.CompanyScope(p, nil, false)
	if err != nil {
		writeError(w, http.StatusForbidden, "Not authorized")
		return
	}

	base := h.db.WithContext(r.Context()).Model(&models.User{}).Where("is_active = ?", true)
	if scope != nil {
		base = base.Where("company_id = ?", *scope)
	}

	var counts dto.ActiveCounts
	if err := base.Session(&gorm.Session{}).Where("role = ?", models.RoleStaff).Count(&counts.ActiveStaff).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}
	if err := base.Session(&gorm.Session{}).Where("role = ?", models.RoleCompany).Count(&counts.ActiveCompany).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewData(counts))
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	if !authz.CanViewUser(p, user) {
		writeError(w, http.StatusForbidden, "Not authorized to access this user")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewData(dto.NewUserDTO(user)))
}

// Update handles PUT /api/users/:id. Self, admin, or owning company may
// update; role changes are admin-only and password changes are ignored.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	if !authz.CanUpdateUser(p, user) {
		writeError(w, http.StatusForbidden, "Not authorized to update this user")
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.NewValidationError(errs))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			var existing models.User
			if err := h.db.WithContext(r.Context()).Where("email = ?", email).First(&existing).Error; err == nil {
				writeError(w, http.StatusConflict, "Email already in use")
				return
			}
			updates["email"] = email
		}
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Designation != nil {
		updates["designation"] = *req.Designation
	}
	if req.ProfilePicture != nil {
		updates["profile_picture"] = *req.ProfilePicture
	}
	if req.Role != nil && p.Role == models.RoleAdmin {
		role := models.Role(*req.Role)
		if !role.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		updates["role"] = role
	}
	// req.Password is deliberately dropped.

	if len(updates) > 0 {
		if err := h.db.WithContext(r.Context()).Model(user).Updates(updates).Error; err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update user")
			return
		}
	}

	var updated models.User
	if err := h.db.WithContext(r.Context()).First(&updated, user.ID).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewData(dto.NewUserDTO(&updated)))
}

// Delete handles DELETE /api/users/:id. Users are deactivated, never
// removed: their location history keeps referencing them.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	if !authz.CanDeleteUser(p, user) {
		writeError(w, http.StatusForbidden, "Not authorized to delete this user")
		return
	}

	if err := h.db.WithContext(r.Context()).Model(user).Update("is_active", false).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "User deactivated"})
}

func (h *UserHandler) loadUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return nil, false
	}

	var user models.User
	if err := h.db.WithContext(r.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "Failed to load user")
		return nil, false
	}
	return &user, true
}

func userDTOs(users []models.User) []dto.UserDTO {
	out := make([]dto.UserDTO, len(users))
	for i := range users {
		out[i] = dto.NewUserDTO(&users[i])
	}
	return out
}
