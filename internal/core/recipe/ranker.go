package recipe

import (
	"sort"
	"strings"
)

// Dedupe 以（名稱, 食材集合）去除重複候選，保留第一次出現者
func Dedupe(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := dedupeKey(c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func dedupeKey(c Candidate) string {
	set := make(map[string]struct{}, len(c.Matched)+len(c.Missing))
	for _, n := range c.Matched {
		set[n] = struct{}{}
	}
	for _, n := range c.Missing {
		set[n] = struct{}{}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return c.Name + "\x00" + strings.Join(names, "\x1f")
}

// Rank 依（即將過期數 多→少、比對百分比 高→低、烹調時間 短→長）穩定排序，取前 topN 筆
func Rank(candidates []Candidate, topN int) []Recommendation {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.NearExpiryCount != b.NearExpiryCount {
			return a.NearExpiryCount > b.NearExpiryCount
		}
		if a.MatchPercent != b.MatchPercent {
			return a.MatchPercent > b.MatchPercent
		}
		return a.CookTimeMinutes < b.CookTimeMinutes
	})

	if topN >= 0 && len(sorted) > topN {
		sorted = sorted[:topN]
	}

	out := make([]Recommendation, len(sorted))
	for i, c := range sorted {
		out[i] = Recommendation{Rank: i + 1, Candidate: c}
	}
	return out
}
