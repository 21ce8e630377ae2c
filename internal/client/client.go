// Package client 本機推薦服務的 HTTP 用戶端。
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// APIError 服務回傳的錯誤
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d (%s): %s", e.Status, e.Code, e.Message)
}

// HealthStatus /health 回應中用戶端關心的欄位
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Catalog struct {
		Recipes          int       `json:"recipes"`
		ShelfLifeEntries int       `json:"shelf_life_entries"`
		SkippedRows      int       `json:"skipped_rows"`
		LoadedAt         time.Time `json:"loaded_at"`
	} `json:"catalog"`
}

// Client 推薦服務用戶端
type Client struct {
	client *resty.Client
}

// NewClient 創建用戶端
func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "recipe-recommender-cli")

	return &Client{client: client}
}

type recommendRequest struct {
	IngredientList []string `json:"ingredient_list"`
	CookTimeLimit  float64  `json:"cook_time_limit"`
}

// Recommend 以食材清單與可用分鐘數請求推薦
func (c *Client) Recommend(ctx context.Context, ingredients []string, cookTimeLimit float64) (*recipe.Result, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", common.GenerateUUID()).
		SetBody(recommendRequest{IngredientList: ingredients, CookTimeLimit: cookTimeLimit}).
		Post("/api/v1/recommendations")
	if err != nil {
		return nil, fmt.Errorf("failed to send recommendation request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, parseError(resp)
	}

	var result recipe.Result
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse recommendation response: %w", err)
	}

	common.LogDebug("收到推薦結果",
		zap.Int("count", len(result.Recommendations)),
		zap.String("request_id", resp.Header().Get("X-Request-ID")),
	)
	return &result, nil
}

// Health 查詢服務健康狀態
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, parseError(resp)
	}

	var status HealthStatus
	if err := json.Unmarshal(resp.Body(), &status); err != nil {
		return nil, fmt.Errorf("failed to parse health response: %w", err)
	}
	return &status, nil
}

func parseError(resp *resty.Response) error {
	var body common.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil || body.Message == "" {
		return &APIError{Status: resp.StatusCode(), Message: resp.String()}
	}
	return &APIError{Status: resp.StatusCode(), Code: body.Code, Message: body.Message}
}
