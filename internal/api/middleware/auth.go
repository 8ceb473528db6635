package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/farhan/hrmtrack/internal/auth"
	"github.com/farhan/hrmtrack/internal/authz"
	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	CompanyIDKey contextKey = "company_id"
	UserEmailKey contextKey = "user_email"
	UserRoleKey  contextKey = "user_role"
)

func Auth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}

			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, CompanyIDKey, claims.CompanyID)
			ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)

			// Surface the caller to the request logger upstream.
			if capture, ok := ctx.Value(principalCaptureKey).(*principalCapture); ok {
				capture.p = &authz.Principal{
					UserID:    claims.UserID,
					CompanyID: claims.CompanyID,
					Role:      claims.Role,
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole ensures the authenticated user has one of the given roles.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole := GetUserRole(r.Context())

			for _, role := range roles {
				if userRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeAuthError(w, http.StatusForbidden, "Not authorized to access this route")
		})
	}
}

// Helper functions to extract values from context
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func GetCompanyID(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(CompanyIDKey).(*uuid.UUID); ok {
		return id
	}
	return nil
}

func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

func GetUserRole(ctx context.Context) models.Role {
	if role, ok := ctx.Value(UserRoleKey).(models.Role); ok {
		return role
	}
	return ""
}

// GetPrincipal assembles the policy-layer view of the caller.
func GetPrincipal(ctx context.Context) authz.Principal {
	return authz.Principal{
		UserID:    GetUserID(ctx),
		CompanyID: GetCompanyID(ctx),
		Role:      GetUserRole(ctx),
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
