package auth_test

import (
	"context"
	"testing"

	"github.com/farhan/hrmtrack/internal/auth"
	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/farhan/hrmtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*auth.Service, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)
	return auth.NewService(tc.DB, tc.JWTService), tc
}

func TestService_Register(t *testing.T) {
	svc, tc := setupService(t)
	defer tc.Cleanup()

	ctx := context.Background()

	t.Run("registers staff for an existing company", func(t *testing.T) {
		resp, err := svc.Register(ctx, auth.RegisterInput{
			Name:      "New Staff",
			Email:     "Staff@Example.com",
			Password:  "password123",
			CompanyID: &tc.Company.ID,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, models.RoleStaff, resp.User.Role)
		// Emails are stored lowercase.
		assert.Equal(t, "staff@example.com", resp.User.Email)
	})

	t.Run("duplicate email conflicts case-insensitively", func(t *testing.T) {
		_, err := svc.Register(ctx, auth.RegisterInput{
			Name:      "Duplicate",
			Email:     "STAFF@EXAMPLE.COM",
			Password:  "password123",
			CompanyID: &tc.Company.ID,
		})
		assert.ErrorIs(t, err, auth.ErrUserExists)
	})

	t.Run("staff registration requires an existing company", func(t *testing.T) {
		_, err := svc.Register(ctx, auth.RegisterInput{
			Name:     "Orphan",
			Email:    "orphan@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, auth.ErrCompanyNotFound)
	})

	t.Run("admin registration needs no company", func(t *testing.T) {
		resp, err := svc.Register(ctx, auth.RegisterInput{
			Name:     "Platform Admin",
			Email:    "platform@example.com",
			Password: "password123",
			Role:     models.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Nil(t, resp.User.CompanyID)
	})
}

func TestService_RegisterCompany(t *testing.T) {
	svc, tc := setupService(t)
	defer tc.Cleanup()

	ctx := context.Background()

	t.Run("creates company, owner and back-reference together", func(t *testing.T) {
		resp, err := svc.RegisterCompany(ctx, auth.RegisterCompanyInput{
			CompanyName:   "Acme Logistics",
			Address:       "12 Dock Road",
			CompanyEmail:  "info@acme.example.com",
			OwnerName:     "Acme Admin",
			OwnerEmail:    "admin@acme.example.com",
			OwnerPassword: "password123",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Company)

		assert.Equal(t, models.RoleCompany, resp.User.Role)
		require.NotNil(t, resp.User.CompanyID)
		assert.Equal(t, resp.Company.ID, *resp.User.CompanyID)
		assert.Equal(t, resp.User.ID, resp.Company.OwnerID)

		// The persisted user carries the back-patched company id.
		stored, err := svc.GetUserByID(ctx, resp.User.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.CompanyID)
		assert.Equal(t, resp.Company.ID, *stored.CompanyID)
	})

	t.Run("conflicts on existing owner email", func(t *testing.T) {
		_, err := svc.RegisterCompany(ctx, auth.RegisterCompanyInput{
			CompanyName:   "Second Co",
			CompanyEmail:  "info@second.example.com",
			OwnerName:     "Second Admin",
			OwnerEmail:    tc.Owner.Email,
			OwnerPassword: "password123",
		})
		assert.ErrorIs(t, err, auth.ErrUserExists)
	})
}

func TestService_Login(t *testing.T) {
	svc, tc := setupService(t)
	defer tc.Cleanup()

	ctx := context.Background()

	t.Run("issues a token resolving back to the same user", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginInput{
			Email:    tc.Staff.Email,
			Password: "testpassword123",
		})
		require.NoError(t, err)

		claims, err := tc.JWTService.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, tc.Staff.ID, claims.UserID)

		user, err := svc.GetUserByID(ctx, claims.UserID)
		require.NoError(t, err)
		assert.Equal(t, tc.Staff.ID, user.ID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginInput{
			Email:    tc.Staff.Email,
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginInput{
			Email:    "nobody@example.com",
			Password: "testpassword123",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("rejects deactivated user despite correct password", func(t *testing.T) {
		require.NoError(t, tc.DB.Model(tc.Staff).Update("is_active", false).Error)

		_, err := svc.Login(ctx, auth.LoginInput{
			Email:    tc.Staff.Email,
			Password: "testpassword123",
		})
		assert.ErrorIs(t, err, auth.ErrInactiveUser)

		require.NoError(t, tc.DB.Model(tc.Staff).Update("is_active", true).Error)
	})
}
