package recipe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"recipe-recommender/internal/core/cache"
	"recipe-recommender/internal/core/catalog"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Options 推薦服務設定
type Options struct {
	TopN  int
	Match MatchOptions
}

// DefaultOptions 預設取前 5 筆
func DefaultOptions() Options {
	return Options{TopN: 5, Match: DefaultMatchOptions()}
}

// Service 食譜推薦服務；catalog 唯讀，可被多個請求同時使用
type Service struct {
	catalog     *catalog.Catalog
	fingerprint string
	cache       cache.Store
	opts        Options
}

// NewService 創建新的推薦服務；store 為 nil 時不使用快取
func NewService(cat *catalog.Catalog, store cache.Store, opts Options) *Service {
	var fingerprint string
	if cat != nil {
		fingerprint = cat.Fingerprint
	}
	if cat != nil && fingerprint == "" {
		fingerprint = catalog.ComputeFingerprint(cat.Recipes, cat.ShelfLife)
	}
	return &Service{
		catalog:     cat,
		fingerprint: fingerprint,
		cache:       store,
		opts:        opts,
	}
}

// Recommend 正規化輸入 → 比對評分 → 去重 → 排序取前 N 筆
func (s *Service) Recommend(ctx context.Context, q Query) (*Result, error) {
	if math.IsNaN(q.CookTimeLimit) {
		return nil, common.ErrInvalidTimeLimit
	}

	have := normalizeQuery(q, s.catalog.ShelfLife)
	key := s.cacheKey(have, q.CookTimeLimit)

	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	start := time.Now()
	candidates := Match(s.catalog.Recipes, have, q.CookTimeLimit, s.opts.Match)
	unique := Dedupe(candidates)
	ranked := Rank(unique, s.opts.TopN)

	result := &Result{
		Recommendations: ranked,
		Ingredients:     have,
		CookTimeLimit:   q.CookTimeLimit,
	}
	if len(ranked) == 0 {
		result.NoResults = true
		result.Message = NoResultsMessage
	}

	common.LogDebug("推薦完成",
		zap.Int("ingredients", len(have)),
		zap.Float64("cook_time_limit", q.CookTimeLimit),
		zap.Int("candidates", len(candidates)),
		zap.Int("unique", len(unique)),
		zap.Int("returned", len(ranked)),
		zap.Duration("elapsed", time.Since(start)),
	)

	s.toCache(ctx, key, result)
	return result, nil
}

// Recipes 目錄中的所有食譜
func (s *Service) Recipes() []catalog.Recipe {
	return s.catalog.Recipes
}

// ShelfLife 查詢單一食材的保存期限
func (s *Service) ShelfLife(name string) catalog.ShelfLife {
	return s.catalog.ShelfLife.Lookup(strings.TrimSpace(name))
}

// Catalog 目前使用的目錄
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// CacheStats 快取統計，未啟用時回傳 nil
func (s *Service) CacheStats() map[string]interface{} {
	if s.cache == nil {
		return nil
	}
	return s.cache.Stats()
}

func (s *Service) cacheKey(have []UserIngredient, limit float64) string {
	var b strings.Builder
	// 快取可能跨程序共用（Redis），鍵必須包含資料內容
	b.WriteString(s.catalog.Source.String())
	b.WriteString("|")
	b.WriteString(s.fingerprint)
	b.WriteString("|")
	b.WriteString(strconv.FormatFloat(limit, 'g', -1, 64))
	fmt.Fprintf(&b, "|%d|%g|%g", s.opts.TopN, s.opts.Match.MinMatchRatio, s.opts.Match.NearExpiryDays)
	for _, ing := range have {
		b.WriteString("|")
		b.WriteString(ing.Name)
	}
	hash := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(hash[:])
}

// fromCache 快取錯誤只記錄，不影響推薦
func (s *Service) fromCache(ctx context.Context, key string) (*Result, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			common.LogWarn("讀取推薦快取失敗", zap.Error(err))
		}
		return nil, false
	}
	var result Result
	if err := common.ParseJSON(raw, &result); err != nil {
		common.LogWarn("推薦快取內容無法解析", zap.Error(err))
		return nil, false
	}
	return &result, true
}

func (s *Service) toCache(ctx context.Context, key string, result *Result) {
	if s.cache == nil {
		return
	}
	raw, err := common.ToJSON(result)
	if err != nil {
		common.LogWarn("推薦結果序列化失敗", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, raw); err != nil {
		common.LogWarn("寫入推薦快取失敗", zap.Error(err))
	}
}
