package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-recommender/internal/api/handlers/catalog"
	"recipe-recommender/internal/api/handlers/health"
	"recipe-recommender/internal/api/handlers/recommend"
	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 單一請求的處理時限
const timeoutDuration = 10 * time.Second

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc *recipe.Service) (*gin.Engine, error) {
	if svc == nil {
		return nil, fmt.Errorf("recipe service is required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	tmpl, err := recommend.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("recipe_service", svc)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	recommendHandler := recommend.NewHandler(svc, cfg)
	catalogHandler := catalog.NewHandler(svc, cfg)

	// 表單頁面
	router.GET("/", recommendHandler.ShowForm)
	router.POST("/", recommendHandler.SubmitForm)

	// API 路由組
	api := router.Group("/api/v1")
	{
		// dedup_window <= 0 時停用重複請求拒絕
		recommendChain := []gin.HandlerFunc{recommendHandler.HandleRecommend}
		if cfg.DedupWindow > 0 {
			recommendChain = append([]gin.HandlerFunc{
				middleware.Deduplication(middleware.NewDeduplicator(cfg.DedupWindow)),
			}, recommendChain...)
		}
		api.POST("/recommendations", recommendChain...)
		api.GET("/recipes", catalogHandler.ListRecipes)
		api.GET("/shelf-life/:ingredient", catalogHandler.GetShelfLife)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrNotFound.Response(false))
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, common.ErrMethodNotAllowed.Response(false))
	})

	common.LogInfo("Router setup completed successfully",
		zap.Int("recipes", len(svc.Recipes())),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
