// Package cache 提供推薦結果快取：程序內記憶體或 Redis。
package cache

import (
	"context"
	"errors"
	"fmt"

	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrCacheMiss 快取中沒有該鍵（或已過期）
var ErrCacheMiss = errors.New("cache miss")

// Store 推薦結果快取介面
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Stats() map[string]interface{}
	Close() error
}

// New 依設定建立快取
func New(cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewManager(cfg), nil
	case "redis":
		return NewRedisStore(cfg)
	case "none", "":
		common.LogInfo("Cache disabled")
		return noopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// noopStore 停用快取時使用
type noopStore struct{}

func (noopStore) Get(ctx context.Context, key string) (string, error) { return "", ErrCacheMiss }
func (noopStore) Set(ctx context.Context, key, value string) error    { return nil }
func (noopStore) Close() error                                        { return nil }

func (noopStore) Stats() map[string]interface{} {
	return map[string]interface{}{"backend": "none"}
}

func logSetFailure(backend string, err error) {
	common.LogWarn("快取寫入失敗", zap.String("backend", backend), zap.Error(err))
}
