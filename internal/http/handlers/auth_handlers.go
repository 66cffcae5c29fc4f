package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vairleon/ai-web-core/domain"
	"github.com/vairleon/ai-web-core/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginRequest carries exactly one of email, userName or phone.
type LoginRequest struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authSvc.Login(c.Request.Context(), domain.LoginParams{
		Email:    req.Email,
		UserName: req.UserName,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// RefreshToken handles POST /api/auth/refresh-token. Only task slaves may
// refresh: their tokens expire mid-task and they cannot re-run the login
// flow.
func (h *AuthHandlers) RefreshToken(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if user.Role != domain.RoleTaskSlave {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "only task slaves can refresh tokens"})
		return
	}

	token, err := h.authSvc.IssueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}
