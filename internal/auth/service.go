package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrCompanyNotFound    = errors.New("company not found")
)

type Service struct {
	db  *gorm.DB
	jwt *JWTService
}

func NewService(db *gorm.DB, jwt *JWTService) *Service {
	return &Service{db: db, jwt: jwt}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        models.Role // defaults to staff
	CompanyID   *uuid.UUID
	PhoneNumber string
	Designation string
}

type RegisterCompanyInput struct {
	CompanyName   string
	Address       string
	CompanyEmail  string
	PhoneNumber   string
	OwnerName     string
	OwnerEmail    string
	OwnerPassword string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	Token   string
	User    *models.User
	Company *models.Company
}

// Register creates a staff or company user. Staff and company roles must
// reference an existing company; admins carry no affiliation.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	email := normalizeEmail(input.Email)

	role := input.Role
	if role == "" {
		role = models.RoleStaff
	}

	if role != models.RoleAdmin {
		if input.CompanyID == nil {
			return nil, ErrCompanyNotFound
		}
		var company models.Company
		if err := s.db.WithContext(ctx).First(&company, *input.CompanyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompanyNotFound
			}
			return nil, err
		}
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  input.PhoneNumber,
		Role:         role,
		Designation:  input.Designation,
		CompanyID:    input.CompanyID,
		IsActive:     true,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.CompanyID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: &user}, nil
}

// RegisterCompany creates the owning company-role user, the company, and the
// back-reference between them in a single transaction.
func (s *Service) RegisterCompany(ctx context.Context, input RegisterCompanyInput) (*AuthResponse, error) {
	email := normalizeEmail(input.OwnerEmail)

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(input.OwnerPassword)
	if err != nil {
		return nil, err
	}

	var user models.User
	var company models.Company
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Name:         input.OwnerName,
			Email:        email,
			PasswordHash: hash,
			PhoneNumber:  input.PhoneNumber,
			Role:         models.RoleCompany,
			IsActive:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		company = models.Company{
			Name:        input.CompanyName,
			Address:     input.Address,
			Email:       normalizeEmail(input.CompanyEmail),
			PhoneNumber: input.PhoneNumber,
			IsActive:    true,
			OwnerID:     user.ID,
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		return tx.Model(&user).Update("company_id", company.ID).Error
	})
	if err != nil {
		return nil, err
	}

	user.CompanyID = &company.ID
	user.Company = &company

	token, err := s.jwt.GenerateToken(user.ID, user.CompanyID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: &user, Company: &company}, nil
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("Company").
		Where("email = ?", normalizeEmail(input.Email)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	if !CheckPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.CompanyID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: &user}, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("Company").
		First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
