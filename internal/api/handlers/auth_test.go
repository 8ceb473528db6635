package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farhan/hrmtrack/internal/api/dto"
	"github.com/farhan/hrmtrack/internal/api/handlers"
	"github.com/farhan/hrmtrack/internal/api/middleware"
	"github.com/farhan/hrmtrack/internal/auth"
	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/farhan/hrmtrack/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	authService := auth.NewService(tc.DB, tc.JWTService)
	handler := handlers.NewAuthHandler(authService)

	r := chi.NewRouter()
	r.Post("/api/auth/register", handler.Register)
	r.Post("/api/auth/register-company", handler.RegisterCompany)
	r.Post("/api/auth/login", handler.Login)
	r.With(middleware.Auth(tc.JWTService)).Get("/api/auth/me", handler.Me)

	return r, tc
}

func TestAuthHandler_Register(t *testing.T) {
	router, tc := setupAuthTestRouter(t)
	defer tc.Cleanup()

	t.Run("successful staff registration", func(t *testing.T) {
		body := map[string]string{
			"name":       "New Staff",
			"email":      "newstaff@example.com",
			"password":   "securepassword",
			"company_id": tc.Company.ID.String(),
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp dto.AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "newstaff@example.com", resp.User.Email)
		assert.Equal(t, "staff", resp.User.Role)
		assert.Equal(t, tc.Company.ID.String(), resp.User.CompanyID)
	})

	t.Run("duplicate email returns conflict", func(t *testing.T) {
		body := map[string]string{
			"name":       "Copycat",
			"email":      "newstaff@example.com",
			"password":   "securepassword",
			"company_id": tc.Company.ID.String(),
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		body := map[string]string{
			"name":       "Shorty",
			"email":      "shorty@example.com",
			"password":   "abc",
			"company_id": tc.Company.ID.String(),
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("admin role cannot be self-assigned", func(t *testing.T) {
		body := map[string]string{
			"name":       "Wannabe Admin",
			"email":      "wannabe@example.com",
			"password":   "securepassword",
			"role":       "admin",
			"company_id": tc.Company.ID.String(),
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Contains(t, resp.Details, "role")

		// No account, no token.
		var count int64
		require.NoError(t, tc.DB.Model(&models.User{}).Where("email = ?", "wannabe@example.com").Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("unknown company rejected", func(t *testing.T) {
		body := map[string]string{
			"name":       "Lost",
			"email":      "lost@example.com",
			"password":   "securepassword",
			"company_id": "00000000-0000-0000-0000-000000000001",
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_RegisterCompany(t *testing.T) {
	router, tc := setupAuthTestRouter(t)
	defer tc.Cleanup()

	t.Run("creates company and owner account", func(t *testing.T) {
		body := map[string]string{
			"company_name":   "Fresh Logistics",
			"address":        "8 Harbor Lane",
			"email":          "info@fresh.example.com",
			"admin_name":     "Fresh Owner",
			"admin_email":    "owner@fresh.example.com",
			"admin_password": "securepassword",
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register-company", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp dto.AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "company", resp.User.Role)
		require.NotNil(t, resp.Company)
		assert.Equal(t, "Fresh Logistics", resp.Company.Name)
		assert.Equal(t, resp.Company.ID, resp.User.CompanyID)
	})

	t.Run("missing company name rejected", func(t *testing.T) {
		body := map[string]string{
			"email":          "info@nameless.example.com",
			"admin_name":     "Nameless",
			"admin_email":    "owner@nameless.example.com",
			"admin_password": "securepassword",
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register-company", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("existing admin email conflicts", func(t *testing.T) {
		body := map[string]string{
			"company_name":   "Echo Corp",
			"email":          "info@echo.example.com",
			"admin_name":     "Echo Owner",
			"admin_email":    tc.Owner.Email,
			"admin_password": "securepassword",
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/register-company", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	router, tc := setupAuthTestRouter(t)
	defer tc.Cleanup()

	t.Run("successful login", func(t *testing.T) {
		body := map[string]string{
			"email":    tc.Staff.Email,
			"password": "testpassword123",
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/login", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, tc.Staff.ID.String(), resp.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		body := map[string]string{
			"email":    tc.Staff.Email,
			"password": "wrong-password",
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/login", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("deactivated account gets the same error as bad credentials", func(t *testing.T) {
		require.NoError(t, tc.DB.Model(tc.Staff).Update("is_active", false).Error)
		defer func() {
			require.NoError(t, tc.DB.Model(tc.Staff).Update("is_active", true).Error)
		}()

		body := map[string]string{
			"email":    tc.Staff.Email,
			"password": "testpassword123",
		}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/auth/login", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid credentials", resp.Message)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	router, tc := setupAuthTestRouter(t)
	defer tc.Cleanup()

	t.Run("returns the authenticated user", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/auth/me", nil, tc.StaffToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Success bool        `json:"success"`
			Data    dto.UserDTO `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, tc.Staff.ID.String(), resp.Data.ID)
		assert.Equal(t, tc.Staff.Email, resp.Data.Email)
	})

	t.Run("requires authentication", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/api/auth/me", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
