package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vairleon/ai-web-core/domain"
	"github.com/vairleon/ai-web-core/internal/http/middleware"
	"github.com/vairleon/ai-web-core/internal/mocks"
)

// identityAs stands in for the auth guard and attaches a fixed requester.
func identityAs(user *domain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CtxUserIDKey, user.ID)
			c.Set(middleware.CtxUserKey, user)
		}
		c.Next()
	}
}

func newUserRouter(authSvc domain.AuthService, requester *domain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandlers(authSvc)
	r := gin.New()
	r.Use(identityAs(requester))
	r.POST("/api/user/register", h.Register)
	r.GET("/api/user/profile", h.GetProfile)
	r.GET("/api/user/public-profile", h.GetPublicProfile)
	r.PUT("/api/user/update-name", h.UpdateName)
	r.PUT("/api/user/update-profile", h.UpdateProfile)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserHandlers_Register(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.RegisterFunc = func(ctx context.Context, params domain.RegisterParams, sourceAddr string) (*domain.User, error) {
		require.NotEmpty(t, sourceAddr)
		return &domain.User{
			ID:        1,
			Email:     params.Email,
			UserName:  params.UserName,
			FirstName: params.FirstName,
			LastName:  params.LastName,
			Role:      domain.RoleNormal,
		}, nil
	}
	r := newUserRouter(authSvc, nil)

	w := doJSON(t, r, http.MethodPost, "/api/user/register", gin.H{
		"email":    "jane@example.com",
		"userName": "jane",
		"password": "sturdy-passw0rd",
		"lastName": "Doe",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "token_jane", resp["accessToken"])
	assert.Equal(t, "Doe", resp["lastName"])
	// The public shape never carries credentials or the email.
	assert.NotContains(t, resp, "email")
	assert.NotContains(t, resp, "password")
}

func TestUserHandlers_RegisterMissingFields(t *testing.T) {
	r := newUserRouter(mocks.NewMockAuthService(), nil)

	tests := []struct {
		name string
		body gin.H
	}{
		{"no email", gin.H{"userName": "jane", "password": "pw", "lastName": "Doe"}},
		{"no user name", gin.H{"email": "jane@example.com", "password": "pw", "lastName": "Doe"}},
		{"no password", gin.H{"email": "jane@example.com", "userName": "jane", "lastName": "Doe"}},
		{"no last name", gin.H{"email": "jane@example.com", "userName": "jane", "password": "pw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/user/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUserHandlers_RegisterErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"rate limited", domain.ErrRateLimited, http.StatusBadRequest},
		{"conflict", domain.Conflict("the email is already registered"), http.StatusBadRequest},
		{"weak password", domain.WeakPassword("password must be at least 8 characters long"), http.StatusBadRequest},
		{"store failure", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.RegisterFunc = func(ctx context.Context, params domain.RegisterParams, sourceAddr string) (*domain.User, error) {
				return nil, tt.err
			}
			r := newUserRouter(authSvc, nil)

			w := doJSON(t, r, http.MethodPost, "/api/user/register", gin.H{
				"email":    "jane@example.com",
				"userName": "jane",
				"password": "sturdy-passw0rd",
				"lastName": "Doe",
			})
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestUserHandlers_GetProfile(t *testing.T) {
	self := &domain.User{ID: 1, UserName: "jane", Role: domain.RoleNormal}
	other := &domain.User{ID: 2, Email: "bob@example.com", UserName: "bob", Role: domain.RoleNormal, Credit: 3}
	admin := &domain.User{ID: 9, UserName: "root", Role: domain.RoleAdmin}

	authSvc := mocks.NewMockAuthService()
	authSvc.GetByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		switch id {
		case 1:
			return self, nil
		case 2:
			return other, nil
		}
		return nil, nil
	}

	t.Run("defaults to the requester", func(t *testing.T) {
		r := newUserRouter(authSvc, self)
		w := doJSON(t, r, http.MethodGet, "/api/user/profile", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userName":"jane"`)
	})

	t.Run("normal user cannot read another profile", func(t *testing.T) {
		r := newUserRouter(authSvc, self)
		w := doJSON(t, r, http.MethodGet, "/api/user/profile?id=2", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin reads any profile", func(t *testing.T) {
		r := newUserRouter(authSvc, admin)
		w := doJSON(t, r, http.MethodGet, "/api/user/profile?id=2", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"email":"bob@example.com"`)
	})

	t.Run("admin reading an absent user gets 404", func(t *testing.T) {
		r := newUserRouter(authSvc, admin)
		w := doJSON(t, r, http.MethodGet, "/api/user/profile?id=404", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id is rejected", func(t *testing.T) {
		r := newUserRouter(authSvc, admin)
		w := doJSON(t, r, http.MethodGet, "/api/user/profile?id=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandlers_GetPublicProfile(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.GetByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		if id == 2 {
			return &domain.User{
				ID:        2,
				Email:     "bob@example.com",
				UserName:  "bob",
				FirstName: "Bob",
				LastName:  "Roe",
				ExtraInfo: &domain.ExtraInfo{Description: "hi", Country: "France"},
			}, nil
		}
		return nil, nil
	}
	r := newUserRouter(authSvc, nil)

	t.Run("returns the public shape", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/user/public-profile?id=2", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"firstName":"Bob"`)
		assert.Contains(t, w.Body.String(), `"description":"hi"`)
		// Private fields never appear on the public shape.
		assert.NotContains(t, w.Body.String(), "bob@example.com")
		assert.NotContains(t, w.Body.String(), "France")
	})

	t.Run("missing id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/user/public-profile", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("absent user", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/user/public-profile?id=404", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandlers_UpdateName(t *testing.T) {
	self := &domain.User{ID: 1, UserName: "jane", Role: domain.RoleNormal}

	authSvc := mocks.NewMockAuthService()
	var updatedID uint
	authSvc.UpdateLastNameFunc = func(ctx context.Context, id uint, lastName string) (*domain.User, error) {
		updatedID = id
		return &domain.User{ID: id, LastName: lastName}, nil
	}

	r := newUserRouter(authSvc, self)

	w := doJSON(t, r, http.MethodPut, "/api/user/update-name", gin.H{"lastName": "Smith"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), updatedID)
	assert.Contains(t, w.Body.String(), `"lastName":"Smith"`)

	t.Run("missing last name", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/user/update-name", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("another user's profile is off limits", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/user/update-name?id=2", gin.H{"lastName": "Smith"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUserHandlers_UpdateProfile(t *testing.T) {
	self := &domain.User{ID: 1, UserName: "jane", Role: domain.RoleNormal}

	authSvc := mocks.NewMockAuthService()
	var patched domain.ExtraInfo
	authSvc.UpdateExtraInfoFunc = func(ctx context.Context, id uint, patch domain.ExtraInfo) (*domain.User, error) {
		patched = patch
		return &domain.User{ID: id, ExtraInfo: &patch}, nil
	}
	r := newUserRouter(authSvc, self)

	w := doJSON(t, r, http.MethodPut, "/api/user/update-profile", gin.H{
		"extraInfo": gin.H{"description": "hello", "city": "Lyon"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", patched.Description)
	assert.Equal(t, "Lyon", patched.City)
}
