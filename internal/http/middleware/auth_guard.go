package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vairleon/ai-web-core/domain"
	"github.com/vairleon/ai-web-core/internal/config"
)

// Context keys set by the guard for downstream handlers.
const (
	CtxUserIDKey = "user_id"
	CtxUserKey   = "user"
)

// AuthGuard intercepts every inbound request. It resolves the declared
// policy for the route, verifies the bearer token on non-public routes,
// attaches the resolved identity to the request context and enforces the
// admin role ceiling.
type AuthGuard struct {
	tokenSvc domain.TokenService
	userRepo domain.UserRepository
	rules    map[string]config.AccessPolicy
}

// NewAuthGuard creates the guard from the declared per-operation policies.
func NewAuthGuard(tokenSvc domain.TokenService, userRepo domain.UserRepository, rules []config.AccessRule) *AuthGuard {
	index := make(map[string]config.AccessPolicy, len(rules))
	for _, r := range rules {
		index[r.Method+" "+r.Path] = r.Policy
	}
	return &AuthGuard{tokenSvc: tokenSvc, userRepo: userRepo, rules: index}
}

// policyFor returns the declared policy for the route. Routes without a
// declaration require authentication; unmatched requests pass through so
// the router can answer 404.
func (g *AuthGuard) policyFor(method, fullPath string) config.AccessPolicy {
	if fullPath == "" {
		return config.PolicyPublic
	}
	if p, ok := g.rules[method+" "+fullPath]; ok {
		return p
	}
	return config.PolicyAuthenticated
}

// Intercept returns the guard middleware.
func (g *AuthGuard) Intercept() gin.HandlerFunc {
	return func(c *gin.Context) {
		policy := g.policyFor(c.Request.Method, c.FullPath())
		if policy == config.PolicyPublic {
			c.Next()
			return
		}

		token, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		claims, err := g.tokenSvc.Validate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		user, err := g.userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
			c.Abort()
			return
		}
		if user == nil {
			// Valid signature but no such account: a deny, not a token error.
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, user.ID)
		c.Set(CtxUserKey, user)

		if policy == config.PolicyAdmin && user.Role != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractBearerToken parses an Authorization header in the Bearer scheme.
func extractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// CurrentUser returns the identity attached by the guard.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
