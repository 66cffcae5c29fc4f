package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vairleon/ai-web-core/domain"
	"github.com/vairleon/ai-web-core/internal/config"
	"github.com/vairleon/ai-web-core/internal/mocks"
)

var guardRules = []config.AccessRule{
	{Method: "GET", Path: "/public", Policy: config.PolicyPublic},
	{Method: "GET", Path: "/profile", Policy: config.PolicySelfOrAdmin},
	{Method: "GET", Path: "/admin/users", Policy: config.PolicyAdmin},
}

func newGuardRouter(tokenSvc domain.TokenService, userRepo domain.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	guard := NewAuthGuard(tokenSvc, userRepo, guardRules)
	r := gin.New()
	r.Use(guard.Intercept())
	handler := func(c *gin.Context) {
		if user, ok := CurrentUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"userName": user.UserName})
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	}
	r.GET("/public", handler)
	r.GET("/profile", handler)
	r.GET("/admin/users", handler)
	r.GET("/undeclared", handler)
	return r
}

func guardRequest(t *testing.T, r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthGuard_PublicRouteSkipsAuth(t *testing.T) {
	r := newGuardRouter(mocks.NewMockTokenService(), mocks.NewMockUserRepository())

	w := guardRequest(t, r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthGuard_MissingOrMalformedHeader(t *testing.T) {
	r := newGuardRouter(mocks.NewMockTokenService(), mocks.NewMockUserRepository())

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwdw=="},
		{"bare token", "some-token"},
		{"empty bearer", "Bearer "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := guardRequest(t, r, "/profile", tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "authorization header required")
		})
	}
}

func TestAuthGuard_InvalidToken(t *testing.T) {
	// The default mock rejects every token.
	r := newGuardRouter(mocks.NewMockTokenService(), mocks.NewMockUserRepository())

	w := guardRequest(t, r, "/profile", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestAuthGuard_ValidTokenUnknownUser(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 42}, nil
	}
	// The default repository finds nobody.
	r := newGuardRouter(tokenSvc, mocks.NewMockUserRepository())

	w := guardRequest(t, r, "/profile", "Bearer valid")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "access denied")
}

func TestAuthGuard_StoreFailure(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 42}, nil
	}
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return nil, errors.New("database down")
	}
	r := newGuardRouter(tokenSvc, userRepo)

	w := guardRequest(t, r, "/profile", "Bearer valid")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthGuard_AttachesIdentity(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 42, UserName: "jane"}, nil
	}
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		require.Equal(t, uint(42), id)
		return &domain.User{ID: 42, UserName: "jane", Role: domain.RoleNormal}, nil
	}
	r := newGuardRouter(tokenSvc, userRepo)

	w := guardRequest(t, r, "/profile", "Bearer valid")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jane")
}

func TestAuthGuard_AdminCeiling(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		expected int
	}{
		{"normal user denied", domain.RoleNormal, http.StatusForbidden},
		{"member denied", domain.RoleMember, http.StatusForbidden},
		{"admin allowed", domain.RoleAdmin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mocks.NewMockTokenService()
			tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
				return &domain.TokenClaims{UserID: 42}, nil
			}
			userRepo := mocks.NewMockUserRepository()
			userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
				return &domain.User{ID: 42, UserName: "jane", Role: tt.role}, nil
			}
			r := newGuardRouter(tokenSvc, userRepo)

			w := guardRequest(t, r, "/admin/users", "Bearer valid")
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestAuthGuard_UndeclaredRouteRequiresAuth(t *testing.T) {
	r := newGuardRouter(mocks.NewMockTokenService(), mocks.NewMockUserRepository())

	w := guardRequest(t, r, "/undeclared", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGuard_UnmatchedRouteFallsThroughTo404(t *testing.T) {
	r := newGuardRouter(mocks.NewMockTokenService(), mocks.NewMockUserRepository())

	w := guardRequest(t, r, "/no/such/route", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
