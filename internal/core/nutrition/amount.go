package nutrition

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"recipe-ingest/internal/core/units"
)

// 數量字串解析
// 輸入是任意語系格式的自由文字，輸出為單一正數或「無值」

var vulgarFractions = []struct {
	glyph string
	value string
}{
	{"½", " 0.5 "},
	{"¼", " 0.25 "},
	{"¾", " 0.75 "},
	{"⅓", " 0.333 "},
	{"⅔", " 0.667 "},
	{"⅛", " 0.125 "},
	{"⅜", " 0.375 "},
	{"⅝", " 0.625 "},
	{"⅞", " 0.875 "},
}

var (
	// A <sep> B 形式的範圍，分隔符可為連字號、en-dash、a、à、to
	rangePattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(?:-|–|a|à|to)\s*(\d+(?:\.\d+)?)$`)
	// 簡單分數 N/D
	fractionPattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	// 十進位或整數 token
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// negligibleMarkers 表示「適量」的慣用語，命中即視為零貢獻
var negligibleMarkers = []string{
	"to taste",
	"as needed",
	"q.b",
	"a gosto",
	"al gusto",
	"au gout",
}

// ParseAmount 解析自由格式數量字串
// 回傳 (數值, true)，或無法解析時 (0, false)
// 規則依序：unicode 分數字符展開、逗號小數點、範圍取平均、
// 分數轉十進位、取前兩個數字 token 相加
func ParseAmount(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	// 展開 unicode 分數字符（前後補空白，讓 "1½" 變成兩個 token）
	for _, vf := range vulgarFractions {
		s = strings.ReplaceAll(s, vf.glyph, vf.value)
	}

	// 逗號小數點換成句點
	s = strings.ReplaceAll(s, ",", ".")

	// 範圍取算術平均
	if m := rangePattern.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			if v := (lo + hi) / 2; isUsable(v) {
				return v, true
			}
		}
	}

	// 分數轉十進位（"1 1/2" -> "1 0.5"）
	s = fractionPattern.ReplaceAllStringFunc(s, func(frac string) string {
		m := fractionPattern.FindStringSubmatch(frac)
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return frac
		}
		return fmt.Sprintf("%g", num/den)
	})

	// 取前兩個數字 token 相加，多餘 token 視為雜訊
	tokens := numberPattern.FindAllString(s, 2)
	if len(tokens) == 0 {
		return 0, false
	}
	var sum float64
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		sum += v
	}

	if !isUsable(sum) {
		return 0, false
	}
	return sum, true
}

func isUsable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// IsNegligible 判斷數量加單位的合併文字是否表示「適量」
// 命中時無論其他解析結果為何，貢獻一律為零
func IsNegligible(text string) bool {
	cleaned := units.StripDiacritics(strings.ToLower(text))
	for _, marker := range negligibleMarkers {
		if strings.Contains(cleaned, marker) {
			return true
		}
	}
	return false
}
