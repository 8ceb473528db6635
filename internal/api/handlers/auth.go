package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/farhan/hrmtrack/internal/api/dto"
	"github.com/farhan/hrmtrack/internal/api/middleware"
	"github.com/farhan/hrmtrack/internal/auth"
	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService *auth.Service
}

func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.NewValidationError(errs))
		return
	}

	input := auth.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        models.Role(req.Role),
		PhoneNumber: req.PhoneNumber,
		Designation: req.Designation,
	}
	if req.CompanyID != "" {
		id, err := uuid.Parse(req.CompanyID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid company ID")
			return
		}
		input.CompanyID = &id
	}

	resp, err := h.authService.Register(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			writeError(w, http.StatusConflict, "User already exists")
		case errors.Is(err, auth.ErrCompanyNotFound):
			writeError(w, http.StatusBadRequest, "Company not found")
		default:
			writeError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Success: true,
		Token:   resp.Token,
		User:    dto.NewUserDTO(resp.User),
	})
}

// RegisterCompany handles POST /api/auth/register-company
func (h *AuthHandler) RegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.NewValidationError(errs))
		return
	}

	resp, err := h.authService.RegisterCompany(r.Context(), auth.RegisterCompanyInput{
		CompanyName:   req.CompanyName,
		Address:       req.Address,
		CompanyEmail:  req.Email,
		PhoneNumber:   req.PhoneNumber,
		OwnerName:     req.AdminName,
		OwnerEmail:    req.AdminEmail,
		OwnerPassword: req.AdminPassword,
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			writeError(w, http.StatusConflict, "Admin user already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Company registration failed")
		return
	}

	company := dto.NewCompanyDTO(resp.Company)
	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Success: true,
		Token:   resp.Token,
		User:    dto.NewUserDTO(resp.User),
		Company: &company,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.NewValidationError(errs))
		return
	}

	resp, err := h.authService.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInactiveUser):
			// Deactivated accounts get the same answer as bad credentials.
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			writeError(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Success: true,
		Token:   resp.Token,
		User:    dto.NewUserDTO(resp.User),
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewData(dto.NewUserDTO(user)))
}
