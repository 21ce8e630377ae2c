package recipe

import "recipe-recommender/internal/core/catalog"

// NoResultsMessage 沒有任何食譜通過篩選時顯示的訊息
const NoResultsMessage = "조건에 맞는 레시피가 없습니다."

// UserIngredient 使用者持有的一項食材
type UserIngredient struct {
	Name      string            `json:"name"`
	ShelfLife catalog.ShelfLife `json:"shelf_life"`
}

// Candidate 通過時間與比對率篩選的食譜
type Candidate struct {
	Name            string   `json:"name"`
	CookTimeMinutes float64  `json:"cook_time_minutes"`
	MatchRatio      float64  `json:"match_ratio"`
	MatchPercent    int      `json:"match_percent"`
	Matched         []string `json:"matched_ingredients"`
	Missing         []string `json:"missing_ingredients"`
	Description     string   `json:"description"`
	NearExpiryCount int      `json:"near_expiry_count"`
}

// Recommendation 排序後的推薦結果，Rank 從 1 開始
type Recommendation struct {
	Rank int `json:"rank"`
	Candidate
}

// Result 一次推薦的輸出；NoResults 為 true 時 Recommendations 為空
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	NoResults       bool             `json:"no_results"`
	Message         string           `json:"message,omitempty"`
	Ingredients     []UserIngredient `json:"ingredients"`
	CookTimeLimit   float64          `json:"cook_time_limit"`
}

// Query 推薦查詢；Ingredients 為逗號分隔字串，IngredientList 為已切分的清單，兩者合併
type Query struct {
	Ingredients    string
	IngredientList []string
	CookTimeLimit  float64
}
