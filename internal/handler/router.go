package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/grad-konnect/showcase-api/internal/middleware"
	"github.com/grad-konnect/showcase-api/internal/models"
	"github.com/grad-konnect/showcase-api/internal/service"
	"github.com/grad-konnect/showcase-api/pkg/config"
	"github.com/grad-konnect/showcase-api/pkg/logger"
	corsmiddleware "github.com/grad-konnect/showcase-api/pkg/middleware/cors"
	reqidmiddleware "github.com/grad-konnect/showcase-api/pkg/middleware/requestid"
	"go.uber.org/zap"
)

// Registry bundles the handlers mounted by BuildRouter.
type Registry struct {
	Auth        *AuthHandler
	Posts       *PostHandler
	Users       *UserHandler
	Leaderboard *LeaderboardHandler
	Feed        *FeedHandler
	Metrics     *MetricsHandler
	AuthService *service.AuthService
}

// BuildRouter assembles the gin engine with middleware and all routes.
func BuildRouter(cfg *config.Config, logr *zap.Logger, metricsSvc *service.MetricsService, reg Registry) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", reg.Metrics.Health)
	r.GET("/ready", reg.Metrics.Ready)
	r.GET("/metrics", reg.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", reg.Auth.Login)
		auth.POST("/register", reg.Auth.Register)
		auth.POST("/refresh", reg.Auth.Refresh)
		auth.POST("/logout", middleware.JWT(reg.AuthService), reg.Auth.Logout)
		auth.GET("/me", middleware.JWT(reg.AuthService), reg.Auth.Me)
	}

	api.GET("/feed", middleware.OptionalJWT(reg.AuthService), reg.Feed.Feed)

	posts := api.Group("/posts")
	{
		posts.GET("", middleware.OptionalJWT(reg.AuthService), reg.Posts.List)
		posts.GET("/:id", middleware.OptionalJWT(reg.AuthService), reg.Posts.Get)
		posts.POST("", middleware.JWT(reg.AuthService), middleware.RequireRoles(string(models.RoleStudent)), reg.Posts.Create)
		posts.POST("/:id/review", middleware.JWT(reg.AuthService), middleware.RequireRoles(string(models.RoleMentor)), reg.Posts.Review)
		posts.POST("/:id/like", middleware.JWT(reg.AuthService), reg.Posts.Like)
		posts.POST("/:id/share", middleware.JWT(reg.AuthService), reg.Posts.Share)
		posts.POST("/:id/comments", middleware.JWT(reg.AuthService), reg.Posts.Comment)
	}

	api.GET("/review/queue", middleware.JWT(reg.AuthService), middleware.RequireRoles(string(models.RoleMentor)), reg.Posts.ReviewQueue)

	users := api.Group("/users")
	{
		users.GET("/:handle", reg.Users.GetProfile)
		users.PUT("/:handle", middleware.JWT(reg.AuthService), middleware.RequireRoles("SELF"), reg.Users.UpdateProfile)
	}

	leaderboards := api.Group("/leaderboards")
	{
		leaderboards.GET("", reg.Leaderboard.Snapshot)
		leaderboards.GET("/export", reg.Leaderboard.Export)
	}

	return r
}
