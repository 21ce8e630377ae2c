package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
)

// ComputeFingerprint 以食譜與保存期限內容計算雜湊；內容相同時結果相同
func ComputeFingerprint(recipes []Recipe, shelf ShelfLifeTable) string {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	write(strconv.Itoa(len(recipes)))
	for _, r := range recipes {
		write(r.Name)
		write(strconv.Itoa(len(r.Ingredients)))
		for _, ing := range r.Ingredients {
			write(ing)
		}
		write(strconv.FormatFloat(r.CookTimeMinutes, 'g', -1, 64))
		write(r.Description)
	}

	names := make([]string, 0, len(shelf.days))
	for n := range shelf.days {
		names = append(names, n)
	}
	sort.Strings(names)
	write(strconv.Itoa(len(names)))
	for _, n := range names {
		write(n)
		write(strconv.FormatFloat(shelf.days[n], 'g', -1, 64))
	}

	return hex.EncodeToString(h.Sum(nil))
}
