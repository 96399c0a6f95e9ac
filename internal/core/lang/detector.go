package lang

import (
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
)

// AutoLanguage 表示交由下游生成協作者自行判斷
const AutoLanguage = "auto"

// 統計偵測需要的最少字數，太短的文字不可靠
const minTextRunes = 20

// iso3ToBCP47 偵測器的 ISO 639-3 碼對應到 BCP-47 區域標籤
var iso3ToBCP47 = map[string]string{
	"por": "pt-BR",
	"spa": "es-ES",
	"eng": "en-US",
	"fra": "fr-FR",
	"deu": "de-DE",
	"ita": "it-IT",
	"jpn": "ja-JP",
	"cmn": "zh-TW",
	"kor": "ko-KR",
}

// Detect 將文字映射到語言碼
// 明確的使用者提示（非 "auto"）原樣回傳；否則做統計偵測，
// 偵測不到或未在對應表內回傳 "auto"
func Detect(text, hint string) string {
	if h := strings.TrimSpace(hint); h != "" && h != AutoLanguage {
		return h
	}

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minTextRunes {
		return AutoLanguage
	}

	info := whatlanggo.Detect(trimmed)
	if !info.IsReliable() {
		return AutoLanguage
	}

	if tag, ok := iso3ToBCP47[whatlanggo.LangToString(info.Lang)]; ok {
		return tag
	}
	return AutoLanguage
}
