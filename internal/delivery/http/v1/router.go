package v1

import (
	"net/http"

	"jobflix-backend/config"
	"jobflix-backend/internal/delivery/http/middleware"
	"jobflix-backend/internal/delivery/http/response"
	"jobflix-backend/internal/domain"
	"jobflix-backend/internal/usecase"
	"jobflix-backend/pkg/audit"
	"jobflix-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	JobUC         domain.JobUsecase
	CompanyUC     domain.CompanyUsecase
	CatalogUC     domain.CatalogUsecase
	ApplicationUC domain.ApplicationUsecase
	BookmarkUC    domain.BookmarkUsecase
	UserUC        domain.UserUsecase
	HealthUC      usecase.HealthUsecase
	Audit         *audit.Logger
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	cfg := deps.Config
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.GinMode == gin.ReleaseMode)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	global := middleware.DefaultRateLimitConfig(cfg.RateLimitGlobalThreshold, secondsOf(cfg.RateLimitWindowSeconds))
	global.Audit = deps.Audit
	uploads := middleware.UploadRateLimitConfig()
	uploads.Audit = deps.Audit

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(global))

	api.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		if status["status"] != "ok" {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewJobHandler(api, deps.JobUC)
	NewCompanyHandler(api, deps.CompanyUC, deps.CatalogUC)
	NewApplicationHandler(api, deps.ApplicationUC)
	NewBookmarkHandler(api, deps.BookmarkUC)
	NewUserHandler(api, deps.UserUC, middleware.RateLimitMiddleware(uploads))

	// Local uploads; with S3 the stored URLs point at the bucket instead.
	if cfg.S3Bucket == "" && cfg.UploadDir != "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found", nil)
	})

	return r
}
