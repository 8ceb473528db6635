package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/farhan/hrmtrack/internal/api/dto"
	"github.com/farhan/hrmtrack/internal/api/handlers"
	"github.com/farhan/hrmtrack/internal/api/middleware"
	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/farhan/hrmtrack/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	lastKey         string
	lastContentType string
}

func (f *fakePresigner) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	f.lastKey = key
	f.lastContentType = contentType
	return "https://uploads.example.com/" + key + "?signed", nil
}

func setupUploadTestRouter(t *testing.T, store handlers.Presigner) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	handler := handlers.NewUploadHandler(tc.DB, store)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tc.JWTService))
		r.Post("/api/users/{id}/avatar-url", handler.AvatarURL)
		r.With(middleware.RequireRole(models.RoleAdmin, models.RoleCompany)).
			Post("/api/companies/{id}/logo-url", handler.LogoURL)
	})

	return r, tc
}

func TestUploadHandler_AvatarURL(t *testing.T) {
	store := &fakePresigner{}
	router, tc := setupUploadTestRouter(t, store)
	defer tc.Cleanup()

	body := map[string]string{"content_type": "image/png"}

	t.Run("user gets a presigned url for their own avatar", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/users/"+tc.Staff.ID.String()+"/avatar-url", body, tc.StaffToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.UploadURLResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.Key, "avatars/"+tc.Staff.ID.String()+"/"))
		assert.Contains(t, resp.UploadURL, resp.Key)
		assert.Equal(t, "image/png", store.lastContentType)
	})

	t.Run("staff cannot request urls for someone else", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/users/"+tc.Owner.ID.String()+"/avatar-url", body, tc.StaffToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("content type is mandatory", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/users/"+tc.Staff.ID.String()+"/avatar-url", map[string]string{}, tc.StaffToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUploadHandler_LogoURL(t *testing.T) {
	store := &fakePresigner{}
	router, tc := setupUploadTestRouter(t, store)
	defer tc.Cleanup()

	body := map[string]string{"content_type": "image/jpeg"}

	t.Run("company admin updates their own logo", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/companies/"+tc.Company.ID.String()+"/logo-url", body, tc.OwnerToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.UploadURLResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.Key, "logos/"+tc.Company.ID.String()+"/"))
	})

	t.Run("another company's logo is off limits", func(t *testing.T) {
		otherCompany, _ := testutil.CreateTestCompany(t, tc.DB, "Other Brand")

		req := testutil.AuthenticatedRequest(t, "POST", "/api/companies/"+otherCompany.ID.String()+"/logo-url", body, tc.OwnerToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("platform admin may update any logo", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/companies/"+tc.Company.ID.String()+"/logo-url", body, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestUploadHandler_StorageDisabled(t *testing.T) {
	router, tc := setupUploadTestRouter(t, nil)
	defer tc.Cleanup()

	body := map[string]string{"content_type": "image/png"}

	req := testutil.AuthenticatedRequest(t, "POST", "/api/users/"+tc.Staff.ID.String()+"/avatar-url", body, tc.StaffToken)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
