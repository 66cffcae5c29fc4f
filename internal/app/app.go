package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vairleon/ai-web-core/internal/config"
	httpx "github.com/vairleon/ai-web-core/internal/http"
	"github.com/vairleon/ai-web-core/internal/http/handlers"
	"github.com/vairleon/ai-web-core/internal/http/middleware"
	"github.com/vairleon/ai-web-core/internal/infrastructure/auth"
	"github.com/vairleon/ai-web-core/internal/infrastructure/database"
	"github.com/vairleon/ai-web-core/internal/infrastructure/repositories"
	"github.com/vairleon/ai-web-core/internal/services"
)

// Run wires the application together and serves until interrupted.
func Run(cfg *config.Config, logger *zap.Logger) error {
	gin.SetMode(cfg.GinMode)

	gdb, err := database.Open(cfg.DSN())
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	if err := cas.SeedDefaultPolicies(); err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := database.Ping(context.Background(), rdb); err != nil {
		return err
	}
	defer rdb.Close()

	passwordSvc := auth.NewPasswordService(cfg.BcryptCost)
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTTL)
	userRepo := repositories.NewUserRepository(gdb)
	authorityRepo := repositories.NewAuthorityRepository(gdb)

	throttle := services.NewRegisterThrottle(cfg.RegisterLimit, cfg.RegisterWindow)
	defer throttle.Stop()

	authSvc, err := services.NewAuthService(context.Background(), userRepo, authorityRepo, passwordSvc, tokenSvc, throttle,
		services.BootstrapConfig{
			UserName: cfg.SuperUserName,
			Email:    cfg.SuperUserMail,
			Password: cfg.SuperUserPassword,
		}, logger)
	if err != nil {
		return err
	}

	fileSvc, err := services.NewFileService(cfg.UploadDir, cfg.APIBaseURL, logger)
	if err != nil {
		return err
	}

	uploadLimiter := middleware.NewRedisRateLimiter(rdb, "upload", cfg.UploadLimit, cfg.UploadWindow)

	r := httpx.BuildRouter(httpx.RouterDeps{
		Auth:          handlers.NewAuthHandlers(authSvc),
		User:          handlers.NewUserHandlers(authSvc),
		Admin:         handlers.NewAdminHandlers(authSvc),
		File:          handlers.NewFileHandlers(fileSvc),
		Guard:         middleware.NewAuthGuard(tokenSvc, userRepo, cfg.AccessRules),
		Casbin:        middleware.NewCasbinMW(cas.E),
		UploadLimiter: middleware.RateLimit(uploadLimiter),
		CORSOrigin:    cfg.CORSOrigin,
		UploadRoot:    fileSvc.UploadRoot(),
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
