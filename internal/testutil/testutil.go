package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/farhan/hrmtrack/internal/auth"
	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Location{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestCompany creates a company together with its owning company-role
// user, mirroring the registration flow.
func CreateTestCompany(t *testing.T, db *gorm.DB, name string) (*models.Company, *models.User) {
	t.Helper()

	hash, err := auth.HashPassword("testpassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	owner := &models.User{
		Name:         name + " Owner",
		Email:        "owner-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash: hash,
		Role:         models.RoleCompany,
		IsActive:     true,
	}
	owner.ID = uuid.New()
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("failed to create test owner: %v", err)
	}

	company := &models.Company{
		Name:     name,
		Email:    "company-" + uuid.New().String()[:8] + "@example.com",
		IsActive: true,
		OwnerID:  owner.ID,
	}
	company.ID = uuid.New()
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("failed to create test company: %v", err)
	}

	if err := db.Model(owner).Update("company_id", company.ID).Error; err != nil {
		t.Fatalf("failed to link owner to company: %v", err)
	}
	owner.CompanyID = &company.ID

	return company, owner
}

// CreateTestStaff creates an active staff user in the given company.
func CreateTestStaff(t *testing.T, db *gorm.DB, company *models.Company) *models.User {
	t.Helper()
	return CreateTestUser(t, db, models.RoleStaff, &company.ID)
}

// CreateTestAdmin creates a platform admin with no company affiliation.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUser(t, db, models.RoleAdmin, nil)
}

// CreateTestUser creates a user with the given role and company.
func CreateTestUser(t *testing.T, db *gorm.DB, role models.Role, companyID *uuid.UUID) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("testpassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:         "Test User",
		Email:        "test-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash: hash,
		Role:         role,
		CompanyID:    companyID,
		IsActive:     true,
	}
	user.ID = uuid.New()

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateTestLocation creates a location event for the given user.
func CreateTestLocation(t *testing.T, db *gorm.DB, user *models.User, locType models.LocationType, ts time.Time) *models.Location {
	t.Helper()

	if user.CompanyID == nil {
		t.Fatalf("test location requires a user with a company")
	}

	location := &models.Location{
		UserID:    user.ID,
		CompanyID: *user.CompanyID,
		Latitude:  24.8607,
		Longitude: 67.0011,
		Timestamp: ts,
		Type:      locType,
	}
	location.ID = uuid.New()

	if err := db.Create(location).Error; err != nil {
		t.Fatalf("failed to create test location: %v", err)
	}

	return location
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 24*time.Hour)
}

// GenerateTestToken generates a valid JWT token for the given user
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()

	token, err := jwtService.GenerateToken(user.ID, user.CompanyID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request with authentication
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestSetup holds the common fixtures: one company with an owner and a staff
// member, plus a platform admin, with a token for each.
type TestSetup struct {
	DB         *gorm.DB
	JWTService *auth.JWTService

	Company *models.Company
	Owner   *models.User
	Staff   *models.User
	Admin   *models.User

	OwnerToken string
	StaffToken string
	AdminToken string
}

// NewTestContext creates a complete test setup.
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	jwtService := CreateTestJWTService()

	company, owner := CreateTestCompany(t, db, "Test Company")
	staff := CreateTestStaff(t, db, company)
	admin := CreateTestAdmin(t, db)

	return &TestSetup{
		DB:         db,
		JWTService: jwtService,
		Company:    company,
		Owner:      owner,
		Staff:      staff,
		Admin:      admin,
		OwnerToken: GenerateTestToken(t, jwtService, owner),
		StaffToken: GenerateTestToken(t, jwtService, staff),
		AdminToken: GenerateTestToken(t, jwtService, admin),
	}
}

// Cleanup closes the test database
func (ts *TestSetup) Cleanup() {
	if ts.DB != nil {
		sqlDB, err := ts.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

// DiscardLogger returns a logger that swallows everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
