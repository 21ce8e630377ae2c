package recipe

import (
	"math"

	"recipe-recommender/internal/core/catalog"
)

// MatchOptions 篩選門檻
type MatchOptions struct {
	MinMatchRatio  float64 // 低於此比例的食譜被排除（等於時保留）
	NearExpiryDays float64 // 保存天數不超過此值視為即將過期
}

// DefaultMatchOptions 預設門檻：至少一半食材、3 天內到期
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{MinMatchRatio: 0.5, NearExpiryDays: 3}
}

// Match 依序檢查每道食譜，回傳通過篩選的候選（保持目錄順序）
func Match(recipes []catalog.Recipe, have []UserIngredient, cookTimeLimit float64, opts MatchOptions) []Candidate {
	owned := make(map[string]catalog.ShelfLife, len(have))
	for _, ing := range have {
		owned[ing.Name] = ing.ShelfLife
	}

	var out []Candidate
	for _, r := range recipes {
		if c, ok := matchOne(r, owned, cookTimeLimit, opts); ok {
			out = append(out, c)
		}
	}
	return out
}

func matchOne(r catalog.Recipe, owned map[string]catalog.ShelfLife, cookTimeLimit float64, opts MatchOptions) (Candidate, bool) {
	if r.CookTimeMinutes > cookTimeLimit {
		return Candidate{}, false
	}
	// 沒有食材的食譜無法計算比例，一律排除
	if len(r.Ingredients) == 0 {
		return Candidate{}, false
	}

	matched := make([]string, 0, len(r.Ingredients))
	missing := make([]string, 0, len(r.Ingredients))
	nearExpiry := 0
	for _, ing := range r.Ingredients {
		shelf, ok := owned[ing]
		if !ok {
			missing = append(missing, ing)
			continue
		}
		matched = append(matched, ing)
		if shelf.NearExpiry(opts.NearExpiryDays) {
			nearExpiry++
		}
	}

	ratio := float64(len(matched)) / float64(len(r.Ingredients))
	if ratio < opts.MinMatchRatio {
		return Candidate{}, false
	}

	return Candidate{
		Name:            r.Name,
		CookTimeMinutes: r.CookTimeMinutes,
		MatchRatio:      ratio,
		MatchPercent:    MatchPercent(ratio),
		Matched:         matched,
		Missing:         missing,
		Description:     r.Description,
		NearExpiryCount: nearExpiry,
	}, true
}

// MatchPercent 比例轉百分比，.5 取最接近的偶數
func MatchPercent(ratio float64) int {
	return int(math.RoundToEven(ratio * 100))
}
