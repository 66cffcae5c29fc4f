package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vairleon/ai-web-core/domain"
	"github.com/vairleon/ai-web-core/internal/http/middleware"
)

// UserHandlers handles profile and registration HTTP requests
type UserHandlers struct {
	authSvc domain.AuthService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(authSvc domain.AuthService) *UserHandlers {
	return &UserHandlers{authSvc: authSvc}
}

// RegisterRequest represents the registration payload.
type RegisterRequest struct {
	Email     string            `json:"email" binding:"required"`
	UserName  string            `json:"userName" binding:"required"`
	Password  string            `json:"password" binding:"required"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName" binding:"required"`
	Phone     string            `json:"phone"`
	ExtraInfo *domain.ExtraInfo `json:"extraInfo"`
}

// Register handles POST /api/user/register
func (h *UserHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), domain.RegisterParams{
		Email:     req.Email,
		UserName:  req.UserName,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		ExtraInfo: req.ExtraInfo,
	}, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authSvc.IssueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	profile := user.Public()
	c.JSON(http.StatusOK, gin.H{
		"id":          profile.ID,
		"firstName":   profile.FirstName,
		"lastName":    profile.LastName,
		"extraInfo":   profile.ExtraInfo,
		"accessToken": token,
	})
}

// targetUserID resolves the user the request acts on: the id query
// parameter when present (an admin acting on another account), the
// requester otherwise.
func targetUserID(c *gin.Context, requester *domain.User) (uint, error) {
	raw := c.Query("id")
	if raw == "" {
		return requester.ID, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, domain.InvalidInput("the id [%s] is not a valid user id", raw)
	}
	return uint(id), nil
}

// GetProfile handles GET /api/user/profile (self-or-admin).
func (h *UserHandlers) GetProfile(c *gin.Context) {
	requester, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	targetID, err := targetUserID(c, requester)
	if err != nil {
		respondError(c, err)
		return
	}
	if !domain.CanActOn(requester, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	user, err := h.authSvc.GetByID(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user.Private())
}

// GetPublicProfile handles GET /api/user/public-profile (public).
func (h *UserHandlers) GetPublicProfile(c *gin.Context) {
	raw := c.Query("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "the id query parameter is required"})
		return
	}

	user, err := h.authSvc.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// UpdateNameRequest carries the new last name.
type UpdateNameRequest struct {
	LastName string `json:"lastName" binding:"required"`
}

// UpdateName handles PUT /api/user/update-name (self-or-admin).
func (h *UserHandlers) UpdateName(c *gin.Context) {
	requester, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	targetID, err := targetUserID(c, requester)
	if err != nil {
		respondError(c, err)
		return
	}
	if !domain.CanActOn(requester, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	user, err := h.authSvc.UpdateLastName(c.Request.Context(), targetID, req.LastName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// UpdateProfileRequest carries the extra-info patch.
type UpdateProfileRequest struct {
	ExtraInfo domain.ExtraInfo `json:"extraInfo" binding:"required"`
}

// UpdateProfile handles PUT /api/user/update-profile (self-or-admin). The
// supplied fields are merged over the stored extra info.
func (h *UserHandlers) UpdateProfile(c *gin.Context) {
	requester, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	targetID, err := targetUserID(c, requester)
	if err != nil {
		respondError(c, err)
		return
	}
	if !domain.CanActOn(requester, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	user, err := h.authSvc.UpdateExtraInfo(c.Request.Context(), targetID, req.ExtraInfo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}
