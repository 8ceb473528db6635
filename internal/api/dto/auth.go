package dto

import (
	"github.com/farhan/hrmtrack/internal/api/validation"
	"github.com/farhan/hrmtrack/internal/database/models"
)

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role,omitempty"`
	CompanyID   string `json:"company_id,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Designation string `json:"designation,omitempty"`
}

func (r RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Email is invalid"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	} else if len(r.Password) < 6 {
		errors["password"] = "Password must be at least 6 characters"
	}
	if r.Role != "" {
		// Admin accounts are provisioned out of band; registration never
		// hands out that role.
		role := models.Role(r.Role)
		if !role.Valid() || role == models.RoleAdmin {
			errors["role"] = "Role must be one of: company, staff"
		}
	}
	if r.CompanyID != "" && !validation.IsValidUUID(r.CompanyID) {
		errors["company_id"] = "Company ID is invalid"
	}

	return errors
}

type RegisterCompanyRequest struct {
	CompanyName   string `json:"company_name"`
	Address       string `json:"address,omitempty"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	AdminName     string `json:"admin_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

func (r RegisterCompanyRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.CompanyName == "" {
		errors["company_name"] = "Company name is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Email is invalid"
	}
	if r.AdminName == "" {
		errors["admin_name"] = "Admin name is required"
	}
	if r.AdminEmail == "" {
		errors["admin_email"] = "Admin email is required"
	} else if !validation.IsValidEmail(r.AdminEmail) {
		errors["admin_email"] = "Admin email is invalid"
	}
	if r.AdminPassword == "" {
		errors["admin_password"] = "Admin password is required"
	} else if len(r.AdminPassword) < 6 {
		errors["admin_password"] = "Admin password must be at least 6 characters"
	}

	return errors
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

type UserDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	Designation    string `json:"designation,omitempty"`
	CompanyID      string `json:"company_id,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	Active         bool   `json:"active"`
}

func NewUserDTO(u *models.User) UserDTO {
	out := UserDTO{
		ID:             u.ID.String(),
		Name:           u.Name,
		Email:          u.Email,
		Role:           string(u.Role),
		PhoneNumber:    u.PhoneNumber,
		Designation:    u.Designation,
		ProfilePicture: u.ProfilePicture,
		Active:         u.IsActive,
	}
	if u.CompanyID != nil {
		out.CompanyID = u.CompanyID.String()
	}
	return out
}

type CompanyDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email"`
}

func NewCompanyDTO(c *models.Company) CompanyDTO {
	return CompanyDTO{
		ID:      c.ID.String(),
		Name:    c.Name,
		Address: c.Address,
		Email:   c.Email,
	}
}

type AuthResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    UserDTO     `json:"user"`
	Company *CompanyDTO `json:"company,omitempty"`
}
