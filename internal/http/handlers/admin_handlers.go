package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vairleon/ai-web-core/domain"
)

// AdminHandlers handles the administrative user management surface.
type AdminHandlers struct {
	authSvc domain.AuthService
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(authSvc domain.AuthService) *AdminHandlers {
	return &AdminHandlers{authSvc: authSvc}
}

// ListUsers handles GET /api/admin/users. Returns up to 1000 active users.
func (h *AdminHandlers) ListUsers(c *gin.Context) {
	users, err := h.authSvc.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	profiles := make([]domain.PrivateProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Private())
	}
	c.JSON(http.StatusOK, gin.H{"users": profiles})
}

// GrantAuthorityRequest carries the feature key to grant.
type GrantAuthorityRequest struct {
	FeatureKey string `json:"featureKey" binding:"required"`
}

// GrantAuthority handles POST /api/admin/users/:id/authority.
func (h *AdminHandlers) GrantAuthority(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req GrantAuthorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.GrantAuthority(c.Request.Context(), uint(id), req.FeatureKey)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Private())
}

// UpdateRoleRequest carries the new role.
type UpdateRoleRequest struct {
	Role domain.Role `json:"role" binding:"required"`
}

// UpdateUserRole handles PUT /api/admin/users/:id/role.
func (h *AdminHandlers) UpdateUserRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.UpdateUserRole(c.Request.Context(), uint(id), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Private())
}
