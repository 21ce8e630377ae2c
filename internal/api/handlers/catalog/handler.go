// Package catalog 提供食譜目錄與保存期限查詢 API。
package catalog

import (
	"net/http"

	"recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler 目錄處理器
type Handler struct {
	svc            *recipe.Service
	nearExpiryDays float64
	debug          bool
}

// NewHandler 創建目錄處理器
func NewHandler(svc *recipe.Service, cfg *config.Config) *Handler {
	return &Handler{
		svc:            svc,
		nearExpiryDays: cfg.Recommend.NearExpiryDays,
		debug:          cfg.App.Debug,
	}
}

// ShelfLifeResponse 單一食材的保存期限
type ShelfLifeResponse struct {
	Ingredient string  `json:"ingredient"`
	Days       float64 `json:"days"`
	NearExpiry bool    `json:"near_expiry"`
}

// ListRecipes 處理 GET /api/v1/recipes
func (h *Handler) ListRecipes(c *gin.Context) {
	recipes := h.svc.Recipes()
	c.JSON(http.StatusOK, gin.H{
		"count":   len(recipes),
		"recipes": recipes,
	})
}

// GetShelfLife 處理 GET /api/v1/shelf-life/:ingredient
func (h *Handler) GetShelfLife(c *gin.Context) {
	name := c.Param("ingredient")
	life := h.svc.ShelfLife(name)
	if !life.Known {
		c.AbortWithStatusJSON(http.StatusNotFound, common.ErrIngredientUnknown.Response(h.debug))
		return
	}

	c.JSON(http.StatusOK, ShelfLifeResponse{
		Ingredient: name,
		Days:       life.Days,
		NearExpiry: life.NearExpiry(h.nearExpiryDays),
	})
}
