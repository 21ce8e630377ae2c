package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   *CatalogStatus         `json:"catalog,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// CatalogStatus 已載入資料的狀態
type CatalogStatus struct {
	Recipes          int       `json:"recipes"`
	ShelfLifeEntries int       `json:"shelf_life_entries"`
	SkippedRows      int       `json:"skipped_rows"`
	LoadedAt         time.Time `json:"loaded_at"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	cfg, ok := configFrom(c)
	if !ok {
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if svc, ok := serviceFrom(c); ok {
		cat := svc.Catalog()
		response.Catalog = &CatalogStatus{
			Recipes:          len(cat.Recipes),
			ShelfLifeEntries: cat.ShelfLife.Len(),
			SkippedRows:      cat.Skipped,
			LoadedAt:         cat.LoadedAt,
		}
		response.Cache = svc.CacheStats()
	} else {
		response.Status = "degraded"
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器：資料已載入才算就緒
func ReadinessCheck(c *gin.Context) {
	if _, ok := serviceFrom(c); !ok {
		c.JSON(http.StatusServiceUnavailable, common.ErrCatalogNotLoaded.Response(false))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func configFrom(c *gin.Context) (*config.Config, bool) {
	v, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return nil, false
	}
	cfg, ok := v.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return nil, false
	}
	return cfg, true
}

func serviceFrom(c *gin.Context) (*recipe.Service, bool) {
	v, exists := c.Get("recipe_service")
	if !exists {
		return nil, false
	}
	svc, ok := v.(*recipe.Service)
	if !ok || svc == nil || svc.Catalog() == nil {
		return nil, false
	}
	return svc, true
}
