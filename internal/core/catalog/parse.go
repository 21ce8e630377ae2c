package catalog

import (
	"math"
	"strconv"
	"strings"

	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// 欄位別名：原始資料使用韓文標題，也接受英文標題
var (
	recipeNameColumns        = []string{"이름", "name", "recipe_name"}
	recipeIngredientsColumns = []string{"재료", "ingredients"}
	recipeTimeColumns        = []string{"조리시간(분)", "cook_time_minutes", "cook_time"}
	recipeDescColumns        = []string{"설명", "description", "steps"}

	shelfNameColumns = []string{"재료명", "ingredient", "name"}
	shelfDaysColumns = []string{"권장유통기한(일)", "shelf_life_days", "days"}
)

// parseRecipes 將表格轉為 Recipe；格式錯誤的列略過並記錄警告
func parseRecipes(t *table) ([]Recipe, int, error) {
	nameIdx, err := t.column(recipeNameColumns...)
	if err != nil {
		return nil, 0, err
	}
	ingIdx, err := t.column(recipeIngredientsColumns...)
	if err != nil {
		return nil, 0, err
	}
	timeIdx, err := t.column(recipeTimeColumns...)
	if err != nil {
		return nil, 0, err
	}
	descIdx, err := t.column(recipeDescColumns...)
	if err != nil {
		return nil, 0, err
	}

	recipes := make([]Recipe, 0, len(t.rows))
	skipped := 0
	for i, row := range t.rows {
		if isBlankRow(row) {
			continue
		}
		line := i + 2

		name := cell(row, nameIdx)
		if name == "" {
			skipRow(t.source, line, "blank recipe name")
			skipped++
			continue
		}

		minutes, ok := parseNonNegative(cell(row, timeIdx))
		if !ok {
			skipRow(t.source, line, "invalid cooking time", zap.String("recipe", name), zap.String("value", cell(row, timeIdx)))
			skipped++
			continue
		}

		recipes = append(recipes, Recipe{
			Name:            name,
			Ingredients:     SplitIngredients(cell(row, ingIdx)),
			CookTimeMinutes: minutes,
			Description:     cell(row, descIdx),
		})
	}
	return recipes, skipped, nil
}

// parseShelfLife 將保存期限表轉為對照表；同名食材以後出現者為準
func parseShelfLife(t *table) (ShelfLifeTable, int, error) {
	nameIdx, err := t.column(shelfNameColumns...)
	if err != nil {
		return ShelfLifeTable{}, 0, err
	}
	daysIdx, err := t.column(shelfDaysColumns...)
	if err != nil {
		return ShelfLifeTable{}, 0, err
	}

	days := make(map[string]float64, len(t.rows))
	skipped := 0
	for i, row := range t.rows {
		if isBlankRow(row) {
			continue
		}
		line := i + 2

		name := cell(row, nameIdx)
		if name == "" {
			skipRow(t.source, line, "blank ingredient name")
			skipped++
			continue
		}
		d, ok := parseNonNegative(cell(row, daysIdx))
		if !ok {
			skipRow(t.source, line, "invalid shelf-life days", zap.String("ingredient", name), zap.String("value", cell(row, daysIdx)))
			skipped++
			continue
		}
		days[name] = d
	}
	return ShelfLifeTable{days: days}, skipped, nil
}

// SplitIngredients 以逗號切分食材欄位，去除空白並丟棄空項目；保留順序與重複
func SplitIngredients(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseNonNegative(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

func skipRow(source string, line int, reason string, fields ...zap.Field) {
	common.LogWarn("略過格式錯誤的資料列",
		append([]zap.Field{
			zap.String("source", source),
			zap.Int("line", line),
			zap.String("reason", reason),
		}, fields...)...,
	)
}
