package units

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Class 度量類別
type Class string

const (
	// ClassWeight 重量類（基準單位：公克）
	ClassWeight Class = "weight"
	// ClassVolume 容積類（基準單位：毫升）
	ClassVolume Class = "volume"
	// ClassCount 計數類（顆、罐等離散單位，換算交由熱量檔案處理）
	ClassCount Class = "count"
)

// Definition 單位定義
// Factor 為換算到該類別基準單位（g 或 mL）的倍率；計數類為 0
type Definition struct {
	Canonical string
	Class     Class
	Factor    float64
	Aliases   []string
}

// Definitions 依宣告順序排列的單位表
// 順序是契約的一部分：別名以「先宣告者優先」解析衝突
// 注意 ml 必須在 l 之前（litro 是 mililitro 的子字串）
// fl oz 必須在 oz 之前，重量與容積必須在 unit 之前（un 是 pound/ounce 的子字串）
var Definitions = []Definition{
	{Canonical: "g", Class: ClassWeight, Factor: 1, Aliases: []string{"g", "gr", "grama", "gram"}},
	{Canonical: "kg", Class: ClassWeight, Factor: 1000, Aliases: []string{"kg", "quilo", "kilo", "kilogram"}},
	{Canonical: "mg", Class: ClassWeight, Factor: 0.001, Aliases: []string{"mg", "miligrama", "milligram"}},
	{Canonical: "floz", Class: ClassVolume, Factor: 30, Aliases: []string{"fl oz", "floz", "fluid ounce", "onca fluida"}},
	{Canonical: "oz", Class: ClassWeight, Factor: 28.35, Aliases: []string{"oz", "ounce", "onca"}},
	{Canonical: "lb", Class: ClassWeight, Factor: 453.6, Aliases: []string{"lb", "libra", "pound"}},
	{Canonical: "ml", Class: ClassVolume, Factor: 1, Aliases: []string{"ml", "mililitro", "milliliter", "millilitre", "cc"}},
	{Canonical: "l", Class: ClassVolume, Factor: 1000, Aliases: []string{"l", "litro", "liter", "litre"}},
	{Canonical: "tsp", Class: ClassVolume, Factor: 5, Aliases: []string{"colher de cha", "colheres de cha", "colher cha", "cdta", "cucharadita", "tsp", "teaspoon", "cuillere a cafe"}},
	{Canonical: "tbsp", Class: ClassVolume, Factor: 15, Aliases: []string{"colher de sopa", "colheres de sopa", "colher sopa", "cda", "cucharada", "tbsp", "tablespoon", "cuillere a soupe"}},
	{Canonical: "cup", Class: ClassVolume, Factor: 240, Aliases: []string{"xicara", "chavena", "taza", "cup", "copo"}},
	{Canonical: "unit", Class: ClassCount, Factor: 0, Aliases: []string{"unidade", "unidad", "unit", "piece", "pedaco", "pieza", "pc", "un"}},
	{Canonical: "can", Class: ClassCount, Factor: 0, Aliases: []string{"lata", "can", "boite", "tin"}},
}

var definitionIndex = buildIndex()

func buildIndex() map[string]Definition {
	idx := make(map[string]Definition, len(Definitions))
	for _, def := range Definitions {
		idx[def.Canonical] = def
	}
	return idx
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics 移除變音符號（Colher de Açúcar -> Colher de Acucar）
func StripDiacritics(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return stripped
}

// Normalize 將自由格式單位字串映射到正規鍵
// 任何語言別名、任何大小寫、帶或不帶變音符號皆可
// 無別名命中時原樣回傳（小寫、去空白）
func Normalize(unit string) string {
	cleaned := strings.ToLower(strings.TrimSpace(unit))
	if cleaned == "" {
		return ""
	}
	stripped := StripDiacritics(cleaned)

	for _, def := range Definitions {
		for _, alias := range def.Aliases {
			a := StripDiacritics(strings.ToLower(alias))
			if a == stripped {
				return def.Canonical
			}
			// 長度 1 的別名只允許完全相等，避免 g/l 命中一切
			if len(a) > 1 && strings.Contains(stripped, a) {
				return def.Canonical
			}
		}
	}

	return cleaned
}

// Lookup 以正規鍵查詢單位定義
func Lookup(canonical string) (Definition, bool) {
	def, ok := definitionIndex[canonical]
	return def, ok
}
