package catalog

import (
	"path/filepath"
	"sync"
	"time"

	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Options 讀取選項
type Options struct {
	RecipesSheet   string
	ShelfLifeSheet string
}

// Load 讀取兩份來源並建立 Catalog；任何來源無法讀取或缺欄位時回傳 *LoadError
func Load(recipeSource, shelfLifeSource string, opts Options) (*Catalog, error) {
	recipeTable, err := readTable(recipeSource, opts.RecipesSheet)
	if err != nil {
		return nil, err
	}
	recipes, skippedRecipes, err := parseRecipes(recipeTable)
	if err != nil {
		return nil, err
	}

	shelfTable, err := readTable(shelfLifeSource, opts.ShelfLifeSheet)
	if err != nil {
		return nil, err
	}
	shelf, skippedShelf, err := parseShelfLife(shelfTable)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		Recipes:     recipes,
		ShelfLife:   shelf,
		Source:      SourceKey{Recipes: recipeSource, ShelfLife: shelfLifeSource},
		LoadedAt:    time.Now(),
		Skipped:     skippedRecipes + skippedShelf,
		Fingerprint: ComputeFingerprint(recipes, shelf),
	}, nil
}

// Loader 以來源路徑為鍵快取 Catalog，程序存活期間不失效
type Loader struct {
	opts   Options
	mu     sync.RWMutex
	loaded map[SourceKey]*Catalog
	group  singleflight.Group
}

// NewLoader 創建新的載入器
func NewLoader(opts Options) *Loader {
	return &Loader{
		opts:   opts,
		loaded: make(map[SourceKey]*Catalog),
	}
}

// Load 第一次呼叫時讀檔，之後回傳同一個 *Catalog；同時間的首次呼叫只會讀一次
func (l *Loader) Load(recipeSource, shelfLifeSource string) (*Catalog, error) {
	key := SourceKey{Recipes: absPath(recipeSource), ShelfLife: absPath(shelfLifeSource)}

	if cat := l.cached(key); cat != nil {
		common.LogDebug("使用已載入的食譜資料", zap.String("source", key.String()))
		return cat, nil
	}

	v, err, _ := l.group.Do(key.String(), func() (interface{}, error) {
		if cat := l.cached(key); cat != nil {
			return cat, nil
		}

		start := time.Now()
		cat, err := Load(key.Recipes, key.ShelfLife, l.opts)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.loaded[key] = cat
		l.mu.Unlock()

		common.LogInfo("食譜資料載入完成",
			zap.Int("recipes", len(cat.Recipes)),
			zap.Int("shelf_life_entries", cat.ShelfLife.Len()),
			zap.Int("skipped_rows", cat.Skipped),
			zap.Duration("elapsed", time.Since(start)),
		)
		return cat, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

func (l *Loader) cached(key SourceKey) *Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded[key]
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
