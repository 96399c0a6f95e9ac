package api

import (
	"context"
	"fmt"
	"time"

	"recipe-ingest/internal/api/handlers/health"
	recipeHandler "recipe-ingest/internal/api/handlers/recipe"
	"recipe-ingest/internal/api/middleware"
	"recipe-ingest/internal/core/ai/cache"
	"recipe-ingest/internal/core/ai/openrouter"
	aiservice "recipe-ingest/internal/core/ai/service"
	"recipe-ingest/internal/core/media"
	recipecore "recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 整體請求超時：涵蓋下載、轉錄與生成的完整管線
const timeoutDuration = 300 * time.Second

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體上限：媒體數量上限乘單檔上限，再留一點表單空間
	maxBodySize := cfg.Media.MaxUploadSizeBytes*int64(cfg.Media.MaxUploadCount) + (1 << 20)
	router.Use(middleware.BodySizeLimit(maxBodySize))
	router.Use(middleware.Deduplication(cfg))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 初始化服務
	responseCache, err := buildResponseCache(cfg)
	if err != nil {
		common.LogError("Failed to initialize response cache", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize response cache: %w", err)
	}

	provider := openrouter.NewClient(cfg)
	aiSvc := aiservice.NewService(cfg, provider, responseCache)
	mediaSvc := media.NewService(cfg)
	frameSelector := media.NewFrameSelector(cfg)
	pipeline := recipecore.NewService(cfg, aiSvc, mediaSvc, frameSelector)

	common.LogInfo("Services initialized",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.String("model", cfg.OpenRouter.Model),
	)

	// 全局中間件：設置超時與注入配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		importHandler := recipeHandler.NewHandler(pipeline)

		recipeGroup := api.Group("/recipes")
		{
			// 由媒體、文字或網址匯入食譜
			recipeGroup.POST("/import", importHandler.HandleImport)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}

// buildResponseCache 依設定選擇緩存後端
// 關閉時回傳 nil，AI 服務會直接略過快取
func buildResponseCache(cfg *config.Config) (aiservice.ResponseCache, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewService(&cfg.Cache)
	default:
		return cache.NewManager(cfg), nil
	}
}
