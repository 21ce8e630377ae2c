package recipe

import (
	"strings"

	"recipe-recommender/internal/core/catalog"
)

// Normalize 將逗號分隔的輸入切成食材清單：去除空白、丟棄空項目、同名只保留第一次出現的位置，
// 並附上保存期限（查不到時保留 unknown，不視為即將過期）
func Normalize(raw string, table catalog.ShelfLifeTable) []UserIngredient {
	return NormalizeList(strings.Split(raw, ","), table)
}

// NormalizeList 與 Normalize 相同規則，但輸入已經切分
func NormalizeList(names []string, table catalog.ShelfLifeTable) []UserIngredient {
	out := make([]UserIngredient, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, UserIngredient{Name: n, ShelfLife: table.Lookup(n)})
	}
	return out
}

// normalizeQuery 合併字串與清單兩種輸入
func normalizeQuery(q Query, table catalog.ShelfLifeTable) []UserIngredient {
	names := strings.Split(q.Ingredients, ",")
	names = append(names, q.IngredientList...)
	return NormalizeList(names, table)
}
