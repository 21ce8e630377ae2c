// Package catalog 載入食譜表與食材保存期限表，並以來源為鍵快取載入結果。
package catalog

import "time"

// Recipe 一道料理；載入後不可變
type Recipe struct {
	Name            string   `json:"name"`
	Ingredients     []string `json:"ingredients"`
	CookTimeMinutes float64  `json:"cook_time_minutes"`
	Description     string   `json:"description"`
}

// ShelfLife 食材建議保存天數；Known 為 false 表示表中沒有該食材
type ShelfLife struct {
	Days  float64 `json:"days"`
	Known bool    `json:"known"`
}

// NearExpiry 保存天數已知且不超過 thresholdDays 時回傳 true
func (s ShelfLife) NearExpiry(thresholdDays float64) bool {
	return s.Known && s.Days <= thresholdDays
}

// ShelfLifeTable 食材名稱到建議保存天數的對照表，建立後唯讀
type ShelfLifeTable struct {
	days map[string]float64
}

// NewShelfLifeTable 以 map 建立對照表（會複製一份）
func NewShelfLifeTable(days map[string]float64) ShelfLifeTable {
	cp := make(map[string]float64, len(days))
	for k, v := range days {
		cp[k] = v
	}
	return ShelfLifeTable{days: cp}
}

// Lookup 查詢食材保存天數，找不到時回傳 Known=false
func (t ShelfLifeTable) Lookup(name string) ShelfLife {
	d, ok := t.days[name]
	if !ok {
		return ShelfLife{}
	}
	return ShelfLife{Days: d, Known: true}
}

// Len 對照表筆數
func (t ShelfLifeTable) Len() int {
	return len(t.days)
}

// SourceKey 識別一組資料來源
type SourceKey struct {
	Recipes   string
	ShelfLife string
}

func (k SourceKey) String() string {
	return k.Recipes + "|" + k.ShelfLife
}

// Catalog 載入完成的食譜與保存期限資料
type Catalog struct {
	Recipes     []Recipe
	ShelfLife   ShelfLifeTable
	Source      SourceKey
	LoadedAt    time.Time
	Skipped     int    // 因格式錯誤而略過的列數
	Fingerprint string // 內容雜湊，資料內容改變時跟著改變
}
