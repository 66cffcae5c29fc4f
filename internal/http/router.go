package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/vairleon/ai-web-core/internal/http/handlers"
	"github.com/vairleon/ai-web-core/internal/http/middleware"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Auth  *handlers.AuthHandlers
	User  *handlers.UserHandlers
	Admin *handlers.AdminHandlers
	File  *handlers.FileHandlers

	Guard         *middleware.AuthGuard
	Casbin        *middleware.CasbinMW
	UploadLimiter gin.HandlerFunc
	CORSOrigin    string
	UploadRoot    string
}

// BuildRouter assembles the HTTP surface. The auth guard intercepts every
// request; route policies declared in the access rules file decide whether
// a token is required.
func BuildRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(deps.CORSOrigin))
	r.Use(deps.Guard.Intercept())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.Static("/uploads", deps.UploadRoot)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", deps.Auth.Login)
	auth.POST("/refresh-token", deps.Auth.RefreshToken)

	user := api.Group("/user")
	user.POST("/register", deps.User.Register)
	user.GET("/profile", deps.User.GetProfile)
	user.GET("/public-profile", deps.User.GetPublicProfile)
	user.PUT("/update-name", deps.User.UpdateName)
	user.PUT("/update-profile", deps.User.UpdateProfile)

	file := api.Group("/file")
	file.POST("/upload", deps.UploadLimiter, deps.File.Upload)

	adm := api.Group("/admin").Use(deps.Casbin.Enforce())
	adm.GET("/users", deps.Admin.ListUsers)
	adm.PUT("/users/:id/role", deps.Admin.UpdateUserRole)
	adm.POST("/users/:id/authority", deps.Admin.GrantAuthority)

	return r
}
