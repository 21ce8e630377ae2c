// Package recommend 提供推薦表單頁面與 JSON 推薦 API。
package recommend

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 推薦處理器
type Handler struct {
	svc   *recipe.Service
	form  config.RecommendConfig
	debug bool
}

// NewHandler 創建推薦處理器
func NewHandler(svc *recipe.Service, cfg *config.Config) *Handler {
	return &Handler{
		svc:   svc,
		form:  cfg.Recommend,
		debug: cfg.App.Debug,
	}
}

// RecommendRequest JSON 推薦請求；ingredients 與 ingredient_list 會合併
type RecommendRequest struct {
	Ingredients    string   `json:"ingredients"`
	IngredientList []string `json:"ingredient_list"`
	CookTimeLimit  *float64 `json:"cook_time_limit" binding:"required,gte=0"`
}

// RecommendResponse JSON 推薦回應
type RecommendResponse struct {
	RequestID string `json:"request_id"`
	*recipe.Result
}

// HandleRecommend 處理 POST /api/v1/recommendations
func (h *Handler) HandleRecommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("推薦請求格式錯誤", zap.Error(err), zap.String("request_id", requestid.Get(c)))
		h.abort(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	result, err := h.svc.Recommend(c.Request.Context(), recipe.Query{
		Ingredients:    req.Ingredients,
		IngredientList: req.IngredientList,
		CookTimeLimit:  *req.CookTimeLimit,
	})
	if err != nil {
		h.abort(c, err)
		return
	}

	c.Set(middleware.RecommendationCountKey, len(result.Recommendations))
	c.JSON(http.StatusOK, RecommendResponse{
		RequestID: requestid.Get(c),
		Result:    result,
	})
}

// ShowForm 處理 GET /，顯示預設值的表單
func (h *Handler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, TemplateName, h.newPage(h.form.DefaultIngredients, h.form.DefaultMinutes))
}

// SubmitForm 處理 POST /，時間必須落在表單範圍內
func (h *Handler) SubmitForm(c *gin.Context) {
	raw := c.PostForm("ingredients")

	minutes, err := h.parseMinutes(c.PostForm("cook_time"))
	if err != nil {
		h.renderError(c, h.newPage(raw, h.form.DefaultMinutes), err)
		return
	}

	page := h.newPage(raw, minutes)
	result, err := h.svc.Recommend(c.Request.Context(), recipe.Query{
		Ingredients:   raw,
		CookTimeLimit: float64(minutes),
	})
	if err != nil {
		h.renderError(c, page, err)
		return
	}

	page.Result = result
	c.Set(middleware.RecommendationCountKey, len(result.Recommendations))
	c.HTML(http.StatusOK, TemplateName, page)
}

func (h *Handler) parseMinutes(text string) (int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || minutes < h.form.FormMinMinutes || minutes > h.form.FormMaxMinutes {
		return 0, common.NewValidationError(fmt.Sprintf(
			"조리 가능 시간은 %d~%d분 사이여야 합니다.", h.form.FormMinMinutes, h.form.FormMaxMinutes))
	}
	return minutes, nil
}

func (h *Handler) renderError(c *gin.Context, page *Page, err error) {
	if common.IsValidationError(err) {
		page.Error = err.Error()
		c.HTML(http.StatusBadRequest, TemplateName, page)
		return
	}
	ce := common.AsCustomError(err)
	common.LogError("表單推薦失敗", zap.Error(err))
	page.Error = ce.Message
	c.HTML(ce.Status, TemplateName, page)
}

func (h *Handler) newPage(ingredients string, minutes int) *Page {
	return &Page{
		Ingredients: ingredients,
		Minutes:     minutes,
		MinMinutes:  h.form.FormMinMinutes,
		MaxMinutes:  h.form.FormMaxMinutes,
	}
}

func (h *Handler) abort(c *gin.Context, err error) {
	ce := common.AsCustomError(err)
	if ce.Status >= http.StatusInternalServerError {
		common.LogError("推薦失敗", zap.Error(err))
	}
	c.AbortWithStatusJSON(ce.Status, ce.Response(h.debug))
}
