package common

import (
	"strings"
)

// Ingredient 食材
// Amount 為自由格式字串，空字串代表「適量」
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Notes  string `json:"notes,omitempty"`
}

// InstructionStep 食譜步驟
// TimerSeconds 僅在 0 < 值 <= 14400 時保留
type InstructionStep struct {
	StepNumber   int    `json:"step_number"`
	Description  string `json:"description"`
	TimerSeconds *int   `json:"timer_seconds,omitempty"`
}

// Nutrition 營養資訊，兩個欄位皆為推導出的本地化標籤
type Nutrition struct {
	CaloriesPerServing string `json:"calories_per_serving"`
	TotalCalories      string `json:"total_calories"`
}

// Recipe 食譜
// 最終輸出保證 Ingredients 與 Instructions 非空（由修復流程補齊佔位內容）
type Recipe struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Cuisine      string            `json:"cuisine"`
	PrepTime     string            `json:"prep_time"`
	CookTime     string            `json:"cook_time"`
	Servings     string            `json:"servings"`
	Ingredients  []Ingredient      `json:"ingredients"`
	Instructions []InstructionStep `json:"instructions"`
	Nutrition    Nutrition         `json:"nutrition"`
	Tags         []string          `json:"tags"`
	SourceURL    string            `json:"source_url,omitempty"`
	Language     string            `json:"language,omitempty"`
	Transcript   string            `json:"transcript,omitempty"`
	CoverImage   string            `json:"cover_image,omitempty"`
}

// MediaFile 一份媒體內容（上傳或遠端下載取得）
type MediaFile struct {
	Data     []byte
	MimeType string
	Filename string
}

// IsVideo 是否為影片
func (m MediaFile) IsVideo() bool {
	return strings.HasPrefix(m.MimeType, "video/")
}

// IsAudio 是否為音訊
func (m MediaFile) IsAudio() bool {
	return strings.HasPrefix(m.MimeType, "audio/")
}

// IsImage 是否為圖片
func (m MediaFile) IsImage() bool {
	return strings.HasPrefix(m.MimeType, "image/")
}

// NutritionEstimate 外部營養估算協作者回傳的建議值（僅供參考，可能整份缺席）
type NutritionEstimate struct {
	PortionCount       float64 `json:"portion_count"`
	PortionDescription string  `json:"portion_description,omitempty"`
	TotalCalories      float64 `json:"total_calories"`
	CaloriesPerPortion float64 `json:"calories_per_portion"`
	Reasoning          string  `json:"reasoning,omitempty"`
}

// HasPortionCount 是否提供可用的份數
func (e *NutritionEstimate) HasPortionCount() bool {
	return e != nil && e.PortionCount > 0
}
