package fuzzy

import (
	"github.com/agext/levenshtein"
)

// Ratio 两个字符串的整体相似度，0（完全不同）~ 100（相同）
func Ratio(a, b string) int {
	if a == "" && b == "" {
		return 100
	}
	return round(levenshtein.Similarity(a, b, nil))
}

// PartialRatio 最佳对齐子串相似度，0 ~ 100
// 将较短串作为窗口在较长串上滑动，取相似度最高的一段，
// 因此短串是长串子串时得分为 100
func PartialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		if len(ra) == len(rb) {
			return 100
		}
		return 0
	}

	short, long := ra, rb
	if len(short) > len(long) {
		short, long = long, short
	}

	shortStr := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		sim := levenshtein.Similarity(shortStr, string(long[i:i+len(short)]), nil)
		if sim > best {
			best = sim
		}
		if best >= 1.0 {
			break
		}
	}
	return round(best)
}

func round(sim float64) int {
	return int(sim*100 + 0.5)
}
