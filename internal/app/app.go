package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/CoolVinz/village-shop-sub001/internal/config"
	"github.com/CoolVinz/village-shop-sub001/internal/domain"
	"github.com/CoolVinz/village-shop-sub001/internal/handler"
	"github.com/CoolVinz/village-shop-sub001/internal/repository"
	"github.com/CoolVinz/village-shop-sub001/internal/service"
	"github.com/CoolVinz/village-shop-sub001/internal/utils"
	"github.com/CoolVinz/village-shop-sub001/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	tokens := utils.NewSessionTokenManager(
		cfg.Session.Secret,
		cfg.Session.TokenExpiry.Duration,
	)

	rateLimiter := service.NewRateLimiter(infra.Redis())
	stateStore := service.NewOAuthStateStore(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(
		repos.User,
		tokens,
		cfg.Security.BCryptCost,
		infra.Logger(),
	)
	lineService := service.NewLineService(
		cfg.Line,
		repos.User,
		tokens,
		stateStore,
		infra.Logger(),
	)
	shopService := service.NewShopService(repos.Shop, repos.Product)
	adminService := service.NewAdminService(repos.User)

	cookies := handler.NewCookieWriter(cfg.Session.CookieName, cfg.Env == "production")

	authHandler := handler.NewAuthHandler(authService, cookies)
	lineHandler := handler.NewLineHandler(lineService, cookies, cfg.Frontend.BaseURL, infra.Logger())
	shopHandler := handler.NewShopHandler(shopService)
	adminHandler := handler.NewAdminHandler(adminService)

	router := gin.Default()
	router.Use(otelgin.Middleware("village-shop"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, authService, authHandler, lineHandler, shopHandler, adminHandler, rateLimiter, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	lineHandler *handler.LineHandler,
	shopHandler *handler.ShopHandler,
	adminHandler *handler.AdminHandler,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	session := handler.SessionMiddleware(authService, cfg.Session.CookieName)
	limited := handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", limited, authHandler.Register)
			auth.POST("/login", limited, authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", session, authHandler.Me)
			auth.POST("/complete-profile", session, authHandler.CompleteProfile)

			auth.GET("/line/login", lineHandler.Login)
			auth.GET("/line/callback", lineHandler.Callback)
		}

		shops := api.Group("/shops")
		{
			shops.GET("", shopHandler.ListShops)
			shops.GET("/:id", shopHandler.GetShop)
			shops.GET("/:id/products", shopHandler.ListProducts)

			shops.POST("", session, handler.RequireRoles(domain.RoleVendor, domain.RoleAdmin), shopHandler.CreateShop)
			shops.PUT("/:id", session, shopHandler.UpdateShop)
			shops.DELETE("/:id", session, shopHandler.DeleteShop)
			shops.POST("/:id/products", session, shopHandler.CreateProduct)
		}

		products := api.Group("/products")
		{
			products.GET("/:id", shopHandler.GetProduct)
			products.PUT("/:id", session, shopHandler.UpdateProduct)
			products.DELETE("/:id", session, shopHandler.DeleteProduct)
		}

		admin := api.Group("/admin", session, handler.RequireRoles(domain.RoleAdmin))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:id/role", adminHandler.UpdateRole)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
